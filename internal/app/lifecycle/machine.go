package lifecycle

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Machine owns Request.Status and its legal transitions.
type Machine struct {
	base
	pool   *Pool
	issuer *Issuer
}

// Checkout describes what a client buys. Exactly one of the ids is set.
type Checkout struct {
	ServiceID     *uint
	PricingPlanID *uint
}

type DisputeOutcome string

const (
	OutcomeResume   DisputeOutcome = "resume"
	OutcomeReview   DisputeOutcome = "review"
	OutcomeComplete DisputeOutcome = "complete"
	OutcomeCancel   DisputeOutcome = "cancel"
)

// rule describes one actor-driven edge. target, when set, picks the
// destination from the request as read inside the transaction.
type rule struct {
	op        string
	from      []ds.RequestStatus
	to        ds.RequestStatus
	target    func(req *ds.Request) (ds.RequestStatus, error)
	authorize func(a Actor, req *ds.Request) bool
	check     func(req *ds.Request) error
	guard     func(a Actor, req *ds.Request, g *repository.Guard)
	apply     func(req *ds.Request, now time.Time) map[string]interface{}
}

// run reads the request, checks actor then status, and writes with a guard on
// the status it read. A guard miss means someone else moved the request first.
func (m *Machine) run(ctx context.Context, id uuid.UUID, a Actor, r rule) (*ds.Request, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var out *ds.Request
	err := m.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.GetRequest(id)
		if err != nil {
			return err
		}
		if r.authorize != nil && !r.authorize(a, req) {
			return apperr.Newf(apperr.Forbidden, r.op, "%s may not act on %s", a, req.DisplayID)
		}
		if !statusIn(req.Status, r.from) {
			return apperr.Newf(apperr.InvalidTransition, r.op, "%s is %s", req.DisplayID, req.Status)
		}
		if r.check != nil {
			if err := r.check(req); err != nil {
				return err
			}
		}
		to := r.to
		if r.target != nil {
			if to, err = r.target(req); err != nil {
				return err
			}
		}
		if !CanTransition(req.Status, to) {
			return apperr.Newf(apperr.InvalidTransition, r.op, "%s cannot move from %s to %s", req.DisplayID, req.Status, to)
		}

		g := repository.Guard{Statuses: []ds.RequestStatus{req.Status}}
		if r.guard != nil {
			r.guard(a, req, &g)
		}
		updates := map[string]interface{}{"status": to}
		if r.apply != nil {
			for k, v := range r.apply(req, m.now()) {
				updates[k] = v
			}
		}

		ok, err := tx.UpdateRequestGuarded(id, g, updates)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Newf(apperr.Conflict, r.op, "%s changed concurrently", req.DisplayID)
		}

		out, err = tx.GetRequest(id)
		return err
	})
	if err != nil {
		return nil, m.fail(r.op, err, logrus.Fields{"request_id": id, "actor": a.String()})
	}
	return out, nil
}

func (m *Machine) Get(ctx context.Context, id uuid.UUID) (*ds.Request, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	req, err := m.repo.WithContext(ctx).GetRequest(id)
	if err != nil {
		return nil, m.fail("getRequest", err, logrus.Fields{"request_id": id})
	}
	return req, nil
}

// View returns the request if the actor may see it: admins, the owning client,
// the assigned expert, and experts still invited to its open pool.
func (m *Machine) View(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	req, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsAdmin() || a.isClientOf(req) || a.isExpertOf(req) {
		return req, nil
	}

	if a.Role == role.Expert && req.Visibility == ds.VisibilityOpen {
		tctx, cancel := m.withTimeout(ctx)
		defer cancel()

		invite, err := m.repo.WithContext(tctx).GetInvite(id, a.ID)
		if err == nil && invite.Status == ds.InviteInvited {
			return req, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, m.fail("viewRequest", err, logrus.Fields{"request_id": id})
		}
	}
	return nil, apperr.Newf(apperr.Forbidden, "viewRequest", "%s may not see %s", a, req.DisplayID)
}

// CreateRequest is checkout: a new request awaiting payment, priced from the catalog.
func (m *Machine) CreateRequest(ctx context.Context, a Actor, c Checkout) (*ds.Request, error) {
	const op = "createRequest"
	if a.Role != role.Client {
		return nil, apperr.New(apperr.Forbidden, op, "only clients check out")
	}
	if (c.ServiceID == nil) == (c.PricingPlanID == nil) {
		return nil, apperr.New(apperr.BadInput, op, "exactly one of service or pricing plan is required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var out *ds.Request
	err := m.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req := &ds.Request{
			ClientID:      a.ID,
			ServiceID:     c.ServiceID,
			PricingPlanID: c.PricingPlanID,
			Status:        ds.StatusPendingPayment,
			Visibility:    ds.VisibilityAdmin,
			CreatedAt:     m.now(),
		}

		if c.ServiceID != nil {
			service, err := tx.GetService(*c.ServiceID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.BadInput, op, "unknown service")
			} else if err != nil {
				return err
			}
			req.Amount = service.Price
		} else {
			plan, err := tx.GetPlan(*c.PricingPlanID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.BadInput, op, "unknown pricing plan")
			} else if err != nil {
				return err
			}
			req.Amount = plan.Price
		}

		if err := tx.CreateRequest(req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, m.fail(op, err, logrus.Fields{"client_id": a.ID})
	}
	return out, nil
}

// ConfirmPayment moves PENDING_PAYMENT to NEW and then issues the invoice.
// It is idempotent: on an already paid request it only retries a missing
// invoice. A failed issuance is returned as DependencyFailure together with
// the committed request; the status change is never rolled back for it.
func (m *Machine) ConfirmPayment(ctx context.Context, id uuid.UUID) (*ds.Request, *ds.Invoice, error) {
	const op = "confirmPayment"
	fields := logrus.Fields{"request_id": id}

	tctx, cancel := m.withTimeout(ctx)
	now := m.now()
	_, err := m.repo.WithContext(tctx).UpdateRequestGuarded(id,
		repository.Guard{Statuses: []ds.RequestStatus{ds.StatusPendingPayment}},
		map[string]interface{}{"status": ds.StatusNew, "paid_at": now},
	)
	if err != nil {
		cancel()
		return nil, nil, m.fail(op, err, fields)
	}
	req, err := m.repo.WithContext(tctx).GetRequest(id)
	cancel()
	if err != nil {
		return nil, nil, m.fail(op, err, fields)
	}
	if req.PaidAt == nil {
		return nil, nil, apperr.Newf(apperr.InvalidTransition, op, "%s is %s", req.DisplayID, req.Status)
	}

	invoice, err := m.issuer.IssueFor(ctx, id)
	if err != nil {
		logrus.WithFields(fields).Warnf("request %s paid but not invoiced: %v", req.DisplayID, err)
		if apperr.KindOf(err) != apperr.DependencyFailure {
			err = apperr.Wrap(apperr.DependencyFailure, op, err)
		}
		return req, nil, err
	}
	if req.InvoiceDisplayID == nil {
		req.InvoiceDisplayID = invoice.DisplayID
	}
	return req, invoice, nil
}

// OpenPool publishes a NEW request to every eligible expert. Status stays NEW.
func (m *Machine) OpenPool(ctx context.Context, id uuid.UUID, a Actor, requiredSkills []string) (*ds.Request, []ds.User, error) {
	const op = "openPool"
	if !a.IsAdmin() {
		return nil, nil, apperr.New(apperr.Forbidden, op, "only admins open pools")
	}
	return m.pool.open(ctx, id, requiredSkills)
}

// ClosePool withdraws an unclaimed pool back to admin-only visibility.
func (m *Machine) ClosePool(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:        "closePool",
		from:      []ds.RequestStatus{ds.StatusNew},
		to:        ds.StatusNew,
		authorize: func(a Actor, _ *ds.Request) bool { return a.IsAdmin() },
		check: func(req *ds.Request) error {
			if req.Visibility != ds.VisibilityOpen {
				return apperr.Newf(apperr.InvalidTransition, "closePool", "%s has no open pool", req.DisplayID)
			}
			return nil
		},
		guard: func(_ Actor, _ *ds.Request, g *repository.Guard) {
			g.Visibility = ds.VisibilityOpen
			g.Unassigned = true
		},
		apply: func(*ds.Request, time.Time) map[string]interface{} {
			return map[string]interface{}{"visibility": ds.VisibilityAdmin}
		},
	})
}

// AssignDirect binds an expert without a pool. Not allowed while a pool is open.
func (m *Machine) AssignDirect(ctx context.Context, id uuid.UUID, a Actor, expertID uint) (*ds.Request, error) {
	const op = "assignDirect"
	if !a.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, op, "only admins assign")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	expert, err := m.repo.WithContext(ctx).GetUserByID(expertID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.BadInput, op, "unknown expert")
	} else if err != nil {
		return nil, m.fail(op, err, logrus.Fields{"request_id": id, "expert_id": expertID})
	}
	if expert.Role != role.Expert || expert.Status != ds.UserActive {
		return nil, apperr.Newf(apperr.BadInput, op, "user %d is not an active expert", expertID)
	}

	return m.run(ctx, id, a, rule{
		op:   op,
		from: []ds.RequestStatus{ds.StatusNew, ds.StatusMatched},
		to:   ds.StatusMatched,
		check: func(req *ds.Request) error {
			if req.Visibility == ds.VisibilityOpen {
				return apperr.Newf(apperr.InvalidTransition, op, "%s is open in a pool", req.DisplayID)
			}
			return nil
		},
		guard: func(_ Actor, _ *ds.Request, g *repository.Guard) {
			g.NotVisibility = ds.VisibilityOpen
		},
		apply: func(*ds.Request, time.Time) map[string]interface{} {
			return map[string]interface{}{
				"assigned_expert_id": expertID,
				"visibility":         ds.VisibilityAssigned,
			}
		},
	})
}

// AcceptFromPool is an expert claiming an open request. See Pool.Accept.
func (m *Machine) AcceptFromPool(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	if a.Role != role.Expert {
		return nil, apperr.New(apperr.Forbidden, "acceptFromPool", "only experts accept")
	}
	return m.pool.Accept(ctx, id, a.ID)
}

func (m *Machine) StartWork(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:        "startWork",
		from:      []ds.RequestStatus{ds.StatusMatched},
		to:        ds.StatusInProgress,
		authorize: Actor.isExpertOf,
		guard:     guardAssignedExpert,
		apply: func(_ *ds.Request, now time.Time) map[string]interface{} {
			return map[string]interface{}{"work_started_at": now}
		},
	})
}

func (m *Machine) SubmitForReview(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:        "submitForReview",
		from:      []ds.RequestStatus{ds.StatusInProgress},
		to:        ds.StatusReviewClient,
		authorize: Actor.isExpertOf,
		guard:     guardAssignedExpert,
		apply: func(_ *ds.Request, now time.Time) map[string]interface{} {
			return map[string]interface{}{"completed_at": now}
		},
	})
}

func (m *Machine) ClientApprove(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:        "clientApprove",
		from:      []ds.RequestStatus{ds.StatusReviewClient},
		to:        ds.StatusReviewAdmin,
		authorize: Actor.isClientOf,
	})
}

func (m *Machine) AdminFinalize(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:        "adminFinalize",
		from:      []ds.RequestStatus{ds.StatusReviewAdmin},
		to:        ds.StatusCompleted,
		authorize: func(a Actor, _ *ds.Request) bool { return a.IsAdmin() },
		apply: func(_ *ds.Request, now time.Time) map[string]interface{} {
			return map[string]interface{}{"completed_at": now}
		},
	})
}

// Cancel is open to the owning client and to admins. An existing invoice is left intact.
func (m *Machine) Cancel(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	return m.run(ctx, id, a, rule{
		op:   "cancel",
		from: nonTerminal,
		to:   ds.StatusCancelled,
		authorize: func(a Actor, req *ds.Request) bool {
			return a.IsAdmin() || a.isClientOf(req)
		},
		apply: func(req *ds.Request, _ time.Time) map[string]interface{} {
			if req.Visibility == ds.VisibilityOpen {
				return map[string]interface{}{"visibility": ds.VisibilityAdmin}
			}
			return nil
		},
	})
}

// Dispute parks the request in DISPUTED and remembers where it came from.
func (m *Machine) Dispute(ctx context.Context, id uuid.UUID, a Actor) (*ds.Request, error) {
	from := make([]ds.RequestStatus, 0, len(nonTerminal))
	for _, s := range nonTerminal {
		if s != ds.StatusDisputed {
			from = append(from, s)
		}
	}

	return m.run(ctx, id, a, rule{
		op:   "dispute",
		from: from,
		to:   ds.StatusDisputed,
		authorize: func(a Actor, req *ds.Request) bool {
			return a.IsAdmin() || a.isClientOf(req) || a.isExpertOf(req)
		},
		apply: func(req *ds.Request, _ time.Time) map[string]interface{} {
			return map[string]interface{}{"disputed_from": req.Status}
		},
	})
}

// ResolveDispute is the admin decision that ends a dispute.
func (m *Machine) ResolveDispute(ctx context.Context, id uuid.UUID, a Actor, outcome DisputeOutcome) (*ds.Request, error) {
	const op = "resolveDispute"
	if !a.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, op, "only admins resolve disputes")
	}

	var to ds.RequestStatus
	switch outcome {
	case OutcomeReview:
		to = ds.StatusReviewAdmin
	case OutcomeComplete:
		to = ds.StatusCompleted
	case OutcomeCancel:
		to = ds.StatusCancelled
	case OutcomeResume:
	default:
		return nil, apperr.Newf(apperr.BadInput, op, "unknown outcome %q", outcome)
	}

	return m.run(ctx, id, a, rule{
		op:   op,
		from: []ds.RequestStatus{ds.StatusDisputed},
		target: func(req *ds.Request) (ds.RequestStatus, error) {
			if outcome != OutcomeResume {
				return to, nil
			}
			if req.DisputedFrom == nil {
				return "", apperr.Newf(apperr.InvalidTransition, op, "%s has no status to resume", req.DisplayID)
			}
			return *req.DisputedFrom, nil
		},
		apply: func(req *ds.Request, now time.Time) map[string]interface{} {
			updates := map[string]interface{}{"disputed_from": nil}
			if outcome == OutcomeComplete {
				updates["completed_at"] = now
			}
			// only a resumed request may go back to its open pool
			if outcome != OutcomeResume && req.Visibility == ds.VisibilityOpen {
				updates["visibility"] = ds.VisibilityAdmin
			}
			return updates
		},
	})
}

// List returns the requests visible to the actor.
func (m *Machine) List(ctx context.Context, a Actor, status string) ([]ds.Request, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	f := repository.RequestFilter{Status: status}
	switch a.Role {
	case role.Client:
		f.ClientID = &a.ID
	case role.Expert:
		f.ExpertID = &a.ID
	}

	requests, err := m.repo.WithContext(ctx).ListRequests(f)
	if err != nil {
		return nil, m.fail("listRequests", err, logrus.Fields{"actor": a.String()})
	}
	return requests, nil
}

func guardAssignedExpert(a Actor, _ *ds.Request, g *repository.Guard) {
	id := a.ID
	g.AssignedExpertID = &id
}

// DeclineInvite lets an invited expert step out of a pool.
func (m *Machine) DeclineInvite(ctx context.Context, id uuid.UUID, a Actor) (*ds.PoolInvite, error) {
	if a.Role != role.Expert {
		return nil, apperr.New(apperr.Forbidden, "declineInvite", "only experts decline")
	}
	return m.pool.Decline(ctx, id, a.ID)
}
