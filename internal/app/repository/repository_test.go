package repository_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/repository/repotest"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newRequest(t *testing.T, repo *repository.Repository, status ds.RequestStatus) *ds.Request {
	t.Helper()

	req := &ds.Request{
		ClientID:   1,
		Amount:     decimal.NewFromInt(100),
		Status:     status,
		Visibility: ds.VisibilityAdmin,
	}
	if err := repo.CreateRequest(req); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	return req
}

func TestNextCounterSeedsAndIncrements(t *testing.T) {
	repo := repotest.Open(t)

	for want := uint64(1); want <= 3; want++ {
		got, err := repo.NextCounter("things")
		if err != nil {
			t.Fatalf("NextCounter: %v", err)
		}
		if got != want {
			t.Fatalf("NextCounter = %d, want %d", got, want)
		}
	}

	if err := repo.SeedCounter("things"); err != nil {
		t.Fatalf("SeedCounter on existing row: %v", err)
	}
	if got, _ := repo.NextCounter("things"); got != 4 {
		t.Fatalf("NextCounter after reseed = %d, want 4", got)
	}
}

func TestUpdateRequestGuarded(t *testing.T) {
	repo := repotest.Open(t)
	req := newRequest(t, repo, ds.StatusNew)
	expert := uint(7)

	tests := []struct {
		name  string
		guard repository.Guard
		want  bool
	}{
		{"wrong status", repository.Guard{Statuses: []ds.RequestStatus{ds.StatusMatched}}, false},
		{"wrong visibility", repository.Guard{Statuses: []ds.RequestStatus{ds.StatusNew}, Visibility: ds.VisibilityOpen}, false},
		{"wrong expert", repository.Guard{AssignedExpertID: &expert}, false},
		{"match", repository.Guard{Statuses: []ds.RequestStatus{ds.StatusNew}, Unassigned: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.UpdateRequestGuarded(req.ID, tt.guard, map[string]interface{}{"status": ds.StatusNew})
			if err != nil {
				t.Fatalf("UpdateRequestGuarded: %v", err)
			}
			if ok != tt.want {
				t.Errorf("ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestAttachPayoutClaimsOnlyUnsettled(t *testing.T) {
	repo := repotest.Open(t)
	expert := uint(7)

	var ids []uuid.UUID
	for range 3 {
		req := newRequest(t, repo, ds.StatusCompleted)
		if _, err := repo.UpdateRequestGuarded(req.ID, repository.Guard{},
			map[string]interface{}{"assigned_expert_id": expert}); err != nil {
			t.Fatalf("assign: %v", err)
		}
		ids = append(ids, req.ID)
	}

	n, err := repo.AttachPayout(1, expert, ids[:2])
	if err != nil || n != 2 {
		t.Fatalf("AttachPayout = %d, %v; want 2, nil", n, err)
	}
	n, err = repo.AttachPayout(2, expert, ids)
	if err != nil || n != 1 {
		t.Fatalf("second AttachPayout = %d, %v; want 1, nil", n, err)
	}

	released, err := repo.ReleasePayout(1)
	if err != nil || released != 2 {
		t.Fatalf("ReleasePayout = %d, %v; want 2, nil", released, err)
	}
	unsettled, err := repo.ListUnsettled(expert, nil)
	if err != nil {
		t.Fatalf("ListUnsettled: %v", err)
	}
	if len(unsettled) != 2 {
		t.Fatalf("unsettled = %d, want 2", len(unsettled))
	}
}

func TestRequiredSkillsStoredAsJSON(t *testing.T) {
	repo := repotest.Open(t)
	req := newRequest(t, repo, ds.StatusNew)

	if got, _ := repo.GetRequest(req.ID); len(got.RequiredSkills) != 0 {
		t.Fatalf("fresh request skills = %v, want none", got.RequiredSkills)
	}

	if _, err := repo.UpdateRequestGuarded(req.ID, repository.Guard{},
		map[string]interface{}{"required_skills": datatypes.JSONSlice[string]{"tax", "audit"}}); err != nil {
		t.Fatalf("set skills: %v", err)
	}
	got, err := repo.GetRequest(req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if strings.Join(got.RequiredSkills, ",") != "tax,audit" {
		t.Fatalf("skills = %v, want [tax audit]", got.RequiredSkills)
	}
}

func TestDecidePayoutStampsApprovalsOnly(t *testing.T) {
	repo := repotest.Open(t)
	now := time.Now()

	tests := []struct {
		status        ds.PayoutStatus
		wantProcessed bool
	}{
		{ds.PayoutApproved, true},
		{ds.PayoutRejected, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			payout := &ds.PayoutRequest{ExpertID: 7, Amount: decimal.NewFromInt(80), Status: ds.PayoutPending, RequestDate: now}
			if err := repo.CreatePayout(payout); err != nil {
				t.Fatalf("CreatePayout: %v", err)
			}
			ok, err := repo.DecidePayout(payout.ID, tt.status, &now, 1)
			if err != nil || !ok {
				t.Fatalf("DecidePayout = %v, %v; want true, nil", ok, err)
			}
			got, err := repo.GetPayout(payout.ID)
			if err != nil {
				t.Fatalf("GetPayout: %v", err)
			}
			if (got.ProcessedDate != nil) != tt.wantProcessed {
				t.Errorf("processed date = %v, want set %v", got.ProcessedDate, tt.wantProcessed)
			}
		})
	}
}

func TestInvoicePerRequestIsUnique(t *testing.T) {
	repo := repotest.Open(t)
	req := newRequest(t, repo, ds.StatusNew)

	first := &ds.Invoice{RequestID: req.ID, ClientID: 1, Status: ds.InvoiceIssued}
	if err := repo.CreateInvoice(first); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	second := &ds.Invoice{RequestID: req.ID, ClientID: 1, Status: ds.InvoiceIssued}
	if err := repo.CreateInvoice(second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second CreateInvoice: err = %v, want ErrDuplicatedKey", err)
	}
}

func TestEligibleExperts(t *testing.T) {
	repo := repotest.Open(t)

	users := []struct {
		login  string
		role   role.Role
		status ds.UserStatus
		skills []string
	}{
		{"tax", role.Expert, ds.UserActive, []string{"tax"}},
		{"law", role.Expert, ds.UserActive, []string{"law"}},
		{"gone", role.Expert, ds.UserSuspended, []string{"tax"}},
		{"client", role.Client, ds.UserActive, []string{"tax"}},
	}
	for _, u := range users {
		user := &ds.User{Login: u.login, Password: "x", Role: u.role, Status: u.status}
		if err := repo.CreateUser(user); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if err := repo.SetExpertSkills(user.ID, u.skills); err != nil {
			t.Fatalf("SetExpertSkills: %v", err)
		}
	}

	all, err := repo.EligibleExperts(nil)
	if err != nil {
		t.Fatalf("EligibleExperts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("eligible = %d, want 2", len(all))
	}

	taxOnly, err := repo.EligibleExperts([]string{"tax"})
	if err != nil {
		t.Fatalf("EligibleExperts: %v", err)
	}
	if len(taxOnly) != 1 || taxOnly[0].Login != "tax" {
		t.Errorf("tax experts = %+v", taxOnly)
	}
}
