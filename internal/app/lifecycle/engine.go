// Package lifecycle moves a Request from payment through assignment, work,
// review and completion, issues its invoice, and settles completed work into
// expert payouts.
//
// All cross-row guarantees (single invoice per request, single winner of a
// pool, single payout per completed request) are enforced by the store:
// every write is a conditional update whose WHERE clause re-checks the state
// the caller read. Nothing here relies on in-process locks, so any number of
// server instances may share one database.
package lifecycle

import (
	"context"
	"time"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultStoreTimeout = 5 * time.Second

var DefaultVATRate = decimal.RequireFromString("0.15")

type Config struct {
	StoreTimeout time.Duration
	// VATRate is used as given when Valid, zero included; unset means DefaultVATRate.
	VATRate decimal.NullDecimal
	// FixedSharePercent > 0 replaces the per-service share policy with a flat percentage.
	FixedSharePercent decimal.Decimal
}

// Deps are the external collaborators. Nil fields get working defaults,
// except Store: without it invoices are not archived.
type Deps struct {
	Notifier Notifier
	Store    ObjectStore
	Renderer InvoiceRenderer
	Experts  ExpertDirectory
	Policy   SharePolicy
	Now      func() time.Time
}

// Engine bundles the four components over one store.
type Engine struct {
	Machine    *Machine
	Pool       *Pool
	Issuer     *Issuer
	Settlement *Settlement
}

func New(repo *repository.Repository, cfg Config, deps Deps) *Engine {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	if !cfg.VATRate.Valid {
		cfg.VATRate = decimal.NewNullDecimal(DefaultVATRate)
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Renderer == nil {
		deps.Renderer = JSONRenderer{}
	}
	if deps.Experts == nil {
		deps.Experts = storeDirectory{repo: repo}
	}
	if deps.Policy == nil {
		if cfg.FixedSharePercent.IsPositive() {
			deps.Policy = FixedPercentPolicy{Percent: cfg.FixedSharePercent}
		} else {
			deps.Policy = NewCatalogPolicy(repo)
		}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	b := base{repo: repo, timeout: cfg.StoreTimeout, now: deps.Now}

	issuer := &Issuer{base: b, vat: cfg.VATRate.Decimal, store: deps.Store, renderer: deps.Renderer}
	pool := &Pool{base: b, experts: deps.Experts, notifier: deps.Notifier}
	return &Engine{
		Machine:    &Machine{base: b, pool: pool, issuer: issuer},
		Pool:       pool,
		Issuer:     issuer,
		Settlement: &Settlement{base: b, policy: deps.Policy, notifier: deps.Notifier},
	}
}

// base is shared plumbing: store handle, call timeout, clock.
type base struct {
	repo    *repository.Repository
	timeout time.Duration
	now     func() time.Time
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// fail classifies err and logs the ones an operator has to follow up on.
func (b base) fail(op string, err error, fields logrus.Fields) error {
	if err == nil {
		return nil
	}
	err = apperr.FromStore(op, err)

	switch apperr.KindOf(err) {
	case apperr.Unavailable, apperr.DependencyFailure, apperr.Internal:
		logrus.WithFields(fields).WithField("op", op).Error(err)
	}
	return err
}
