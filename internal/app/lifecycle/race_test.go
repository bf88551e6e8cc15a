package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/repository/repotest"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// holdWritesUntil registers an update callback on table that parks each
// writer until n of them are waiting. Every caller has finished its reads by
// then, so all n write against the same stale view.
func holdWritesUntil(t *testing.T, db *gorm.DB, table string, n int) {
	t.Helper()

	var (
		mu      sync.Mutex
		waiting int
		release = make(chan struct{})
	)
	err := db.Callback().Update().Before("gorm:update").Register("test:hold_writes", func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		mu.Lock()
		waiting++
		if waiting == n {
			close(release)
		}
		mu.Unlock()

		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func TestInterleavedAcceptHasOneWinner(t *testing.T) {
	repo, db := repotest.OpenPostgres(t)
	h := newHarnessOn(t, repo, Config{}, Deps{})
	experts := []Actor{h.user("e1", role.Expert), h.user("e2", role.Expert)}

	req := h.paid(h.service("500", "80"))
	if _, _, err := h.engine.Machine.OpenPool(h.ctx, req.ID, h.admin, nil); err != nil {
		t.Fatalf("OpenPool: %v", err)
	}
	holdWritesUntil(t, db, "requests", len(experts))

	var wg sync.WaitGroup
	errs := make([]error, len(experts))
	for i, e := range experts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.engine.Machine.AcceptFromPool(h.ctx, req.ID, e)
		}()
	}
	wg.Wait()

	var winner uint
	for i, err := range errs {
		switch {
		case err == nil:
			if winner != 0 {
				t.Fatalf("experts %d and %d both won", winner, experts[i].ID)
			}
			winner = experts[i].ID
		case !errors.Is(err, apperr.ErrAlreadyAssigned):
			t.Errorf("loser err = %v, want AlreadyAssigned", err)
		}
	}
	if winner == 0 {
		t.Fatal("no expert won")
	}
	if got := h.reload(req); got.AssignedExpertID == nil || *got.AssignedExpertID != winner {
		t.Fatalf("assigned expert = %v, want %d", got.AssignedExpertID, winner)
	}
}

func TestIssueForLosingInsertReturnsWinner(t *testing.T) {
	repo, db := repotest.OpenPostgres(t)
	h := newHarnessOn(t, repo, Config{}, Deps{})

	// paid, but the invoice was never written
	req := h.checkout(h.service("500", "80"))
	if _, err := h.repo.UpdateRequestGuarded(req.ID, repository.Guard{},
		map[string]interface{}{"status": ds.StatusNew, "paid_at": time.Now()}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	// once the caller has seen no invoice, a rival issues one and commits
	var (
		fired     atomic.Bool
		rival     *ds.Invoice
		rivalErr  error
		requestID = req.ID
	)
	err := db.Callback().Query().After("gorm:query").Register("test:rival_invoice", func(tx *gorm.DB) {
		if tx.Statement.Table != "invoices" || !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return
		}
		if !fired.CompareAndSwap(false, true) {
			return
		}
		rival, rivalErr = h.engine.Issuer.IssueFor(context.Background(), requestID)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	invoice, err := h.engine.Issuer.IssueFor(h.ctx, req.ID)
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	if !fired.Load() {
		t.Fatal("rival never ran")
	}
	if rivalErr != nil {
		t.Fatalf("rival IssueFor: %v", rivalErr)
	}
	if invoice.ID != rival.ID || invoice.DisplayID == nil || *invoice.DisplayID != *rival.DisplayID {
		t.Fatalf("invoice %d %v, want the rival's %d %v", invoice.ID, invoice.DisplayID, rival.ID, rival.DisplayID)
	}
	if n, _ := h.repo.CountInvoices(req.ID); n != 1 {
		t.Fatalf("invoices = %d, want 1", n)
	}
}

// gatedPolicy parks the first n pricing calls until all n have arrived, so
// every payout caller holds a candidate list read before anyone commits.
type gatedPolicy struct {
	FixedPercentPolicy
	mu      sync.Mutex
	n       int
	calls   int
	release chan struct{}
}

func (p *gatedPolicy) TermsFor(ctx context.Context, req ds.Request) (ShareTerms, error) {
	p.mu.Lock()
	p.calls++
	call := p.calls
	if call == p.n {
		close(p.release)
	}
	p.mu.Unlock()

	if call <= p.n {
		select {
		case <-p.release:
		case <-time.After(5 * time.Second):
		}
	}
	return p.FixedPercentPolicy.TermsFor(ctx, req)
}

func TestPayoutsFromStaleCandidatesDoNotOverlap(t *testing.T) {
	const callers = 2
	policy := &gatedPolicy{
		FixedPercentPolicy: FixedPercentPolicy{Percent: dec("80")},
		n:                  callers,
		release:            make(chan struct{}),
	}
	h := newHarness(t, Deps{Policy: policy})
	expert := h.user("expert", role.Expert)
	for _, price := range []string{"100", "150"} {
		h.completed(h.service(price, "80"), expert)
	}

	var wg sync.WaitGroup
	payouts := make([]*ds.PayoutRequest, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payouts[i], errs[i] = h.engine.Settlement.RequestPayout(h.ctx, expert, nil)
		}()
	}
	wg.Wait()

	settled := map[uuid.UUID]uint{}
	won := 0
	for i, err := range errs {
		if err != nil {
			if !errors.Is(err, apperr.ErrNoFundsAvailable) && !errors.Is(err, apperr.ErrConflict) {
				t.Errorf("loser err = %v, want NoFundsAvailable or Conflict", err)
			}
			continue
		}
		won++
		for _, item := range payouts[i].Items {
			if prev, ok := settled[item.RequestID]; ok {
				t.Fatalf("request %s in payouts %d and %d", item.RequestID, prev, payouts[i].ID)
			}
			settled[item.RequestID] = payouts[i].ID
		}
	}
	if won != 1 || len(settled) != 2 {
		t.Fatalf("%d payouts settling %d requests, want 1 payout of 2", won, len(settled))
	}
}
