package lifecycle

import (
	"context"
	"fmt"
	"testing"

	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/repository/repotest"
	"marketplace/internal/app/role"

	"github.com/shopspring/decimal"
)

type harness struct {
	t      *testing.T
	ctx    context.Context
	repo   *repository.Repository
	engine *Engine
	admin  Actor
	client Actor
	seq    int
}

func newHarness(t *testing.T, deps Deps) *harness {
	t.Helper()
	return newHarnessOn(t, repotest.Open(t), Config{}, deps)
}

func newHarnessOn(t *testing.T, repo *repository.Repository, cfg Config, deps Deps) *harness {
	t.Helper()

	h := &harness{
		t:      t,
		ctx:    context.Background(),
		repo:   repo,
		engine: New(repo, cfg, deps),
	}
	h.admin = h.user("admin", role.Admin)
	h.client = h.user("client", role.Client)
	return h
}

func (h *harness) user(login string, r role.Role, skills ...string) Actor {
	h.t.Helper()

	u := &ds.User{Login: login, Password: "x", Role: r, Phone: "+10000000000"}
	if err := h.repo.CreateUser(u); err != nil {
		h.t.Fatalf("create user %s: %v", login, err)
	}
	if err := h.repo.SetExpertSkills(u.ID, skills); err != nil {
		h.t.Fatalf("skills of %s: %v", login, err)
	}
	return Actor{ID: u.ID, Role: r}
}

// service creates a catalog entry paying the expert sharePercent of price.
func (h *harness) service(price, sharePercent string) ds.Service {
	h.t.Helper()

	h.seq++
	svc := ds.Service{
		Name:             fmt.Sprintf("Service %d", h.seq),
		Price:            decimal.RequireFromString(price),
		ExpertShareType:  ds.SharePercentage,
		ExpertShareValue: decimal.RequireFromString(sharePercent),
	}
	if err := h.repo.CreateService(&svc); err != nil {
		h.t.Fatalf("create service: %v", err)
	}
	return svc
}

func (h *harness) checkout(svc ds.Service) *ds.Request {
	h.t.Helper()

	req, err := h.engine.Machine.CreateRequest(h.ctx, h.client, Checkout{ServiceID: &svc.ID})
	if err != nil {
		h.t.Fatalf("CreateRequest: %v", err)
	}
	return req
}

func (h *harness) paid(svc ds.Service) *ds.Request {
	h.t.Helper()

	req := h.checkout(svc)
	paid, _, err := h.engine.Machine.ConfirmPayment(h.ctx, req.ID)
	if err != nil {
		h.t.Fatalf("ConfirmPayment: %v", err)
	}
	return paid
}

// completed drives a paid request through the direct-assignment path to COMPLETED.
func (h *harness) completed(svc ds.Service, expert Actor) *ds.Request {
	h.t.Helper()

	req := h.paid(svc)
	m := h.engine.Machine
	steps := []struct {
		name string
		do   func() (*ds.Request, error)
	}{
		{"AssignDirect", func() (*ds.Request, error) { return m.AssignDirect(h.ctx, req.ID, h.admin, expert.ID) }},
		{"StartWork", func() (*ds.Request, error) { return m.StartWork(h.ctx, req.ID, expert) }},
		{"SubmitForReview", func() (*ds.Request, error) { return m.SubmitForReview(h.ctx, req.ID, expert) }},
		{"ClientApprove", func() (*ds.Request, error) { return m.ClientApprove(h.ctx, req.ID, h.client) }},
		{"AdminFinalize", func() (*ds.Request, error) { return m.AdminFinalize(h.ctx, req.ID, h.admin) }},
	}

	var err error
	for _, step := range steps {
		if req, err = step.do(); err != nil {
			h.t.Fatalf("%s: %v", step.name, err)
		}
	}
	if req.Status != ds.StatusCompleted {
		h.t.Fatalf("status = %s, want COMPLETED", req.Status)
	}
	return req
}

func (h *harness) reload(req *ds.Request) *ds.Request {
	h.t.Helper()

	got, err := h.repo.GetRequest(req.ID)
	if err != nil {
		h.t.Fatalf("GetRequest: %v", err)
	}
	return got
}

func repoGuard(statuses ...ds.RequestStatus) repository.Guard {
	return repository.Guard{Statuses: statuses}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
