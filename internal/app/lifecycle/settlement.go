package lifecycle

import (
	"context"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Settlement aggregates completed, unsettled work into payouts.
type Settlement struct {
	base
	policy   SharePolicy
	notifier Notifier
}

// Earning is one unsettled request and the share it is worth.
type Earning struct {
	Request ds.Request
	Share   decimal.Decimal
}

// Earnings lists the expert's unsettled completed requests with their shares.
func (s *Settlement) Earnings(ctx context.Context, expertID uint) ([]Earning, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	requests, err := s.repo.WithContext(ctx).ListUnsettled(expertID, nil)
	if err != nil {
		return nil, s.fail("earnings", err, logrus.Fields{"expert_id": expertID})
	}
	return s.price(ctx, requests)
}

// UnsettledBalance is the sum of shares over the expert's unsettled completed
// requests. Zero when there are none.
func (s *Settlement) UnsettledBalance(ctx context.Context, expertID uint) (decimal.Decimal, error) {
	earnings, err := s.Earnings(ctx, expertID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumShares(earnings), nil
}

// RequestPayout settles the selected requests (all unsettled ones when
// selection is empty) into one PENDING payout. Ids that are not unsettled
// completed requests of the expert are left out. Membership is claimed with a
// conditional update inside the payout transaction; if any member was taken
// by a concurrent payout, the whole payout rolls back with Conflict.
func (s *Settlement) RequestPayout(ctx context.Context, a Actor, selection []uuid.UUID) (*ds.PayoutRequest, error) {
	const op = "requestPayout"
	if a.Role != role.Expert {
		return nil, apperr.New(apperr.Forbidden, op, "only experts request payouts")
	}
	fields := logrus.Fields{"expert_id": a.ID}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// shares are priced before the transaction; the policy may be remote
	candidates, err := s.repo.WithContext(ctx).ListUnsettled(a.ID, selection)
	if err != nil {
		return nil, s.fail(op, err, fields)
	}
	earnings, err := s.price(ctx, candidates)
	if err != nil {
		return nil, err
	}
	shares := make(map[uuid.UUID]decimal.Decimal, len(earnings))
	for _, e := range earnings {
		shares[e.Request.ID] = e.Share
	}

	var out *ds.PayoutRequest
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ids := make([]uuid.UUID, 0, len(shares))
		for id := range shares {
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return apperr.New(apperr.NoFundsAvailable, op, "nothing to settle")
		}

		// re-validate at commit time
		valid, err := tx.ListUnsettled(a.ID, ids)
		if err != nil {
			return err
		}

		payout := &ds.PayoutRequest{
			ExpertID:    a.ID,
			Status:      ds.PayoutPending,
			RequestDate: s.now(),
			Amount:      decimal.Zero,
		}
		members := make([]uuid.UUID, 0, len(valid))
		for _, req := range valid {
			share := shares[req.ID]
			payout.Amount = payout.Amount.Add(share)
			payout.Items = append(payout.Items, ds.PayoutItem{RequestID: req.ID, Share: share})
			members = append(members, req.ID)
		}
		if len(members) == 0 || !payout.Amount.IsPositive() {
			return apperr.New(apperr.NoFundsAvailable, op, "nothing to settle")
		}

		if err := tx.CreatePayout(payout); err != nil {
			return apperr.Wrap(apperr.DependencyFailure, op, err)
		}
		claimed, err := tx.AttachPayout(payout.ID, a.ID, members)
		if err != nil {
			return err
		}
		if claimed != int64(len(members)) {
			return apperr.Newf(apperr.Conflict, op, "%d of %d requests were settled concurrently",
				int64(len(members))-claimed, len(members))
		}

		out = payout
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err, fields)
	}
	return out, nil
}

// Decide is the admin approval or rejection of a PENDING payout. Rejection
// releases the member requests back to the unsettled pool.
func (s *Settlement) Decide(ctx context.Context, a Actor, payoutID uint, status ds.PayoutStatus) (*ds.PayoutRequest, error) {
	const op = "adminDecide"
	if !a.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, op, "only admins decide payouts")
	}
	if status != ds.PayoutApproved && status != ds.PayoutRejected {
		return nil, apperr.Newf(apperr.BadInput, op, "cannot decide to %q", status)
	}
	fields := logrus.Fields{"payout_id": payoutID}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *ds.PayoutRequest
	err := s.repo.Transaction(tctx, func(tx *repository.Repository) error {
		now := s.now()
		ok, err := tx.DecidePayout(payoutID, status, &now, a.ID)
		if err != nil {
			return err
		}
		if !ok {
			payout, err := tx.GetPayout(payoutID)
			if err != nil {
				return err
			}
			return apperr.Newf(apperr.InvalidTransition, op, "payout %d is %s", payout.ID, payout.Status)
		}

		if status == ds.PayoutRejected {
			if _, err := tx.ReleasePayout(payoutID); err != nil {
				return err
			}
		}

		out, err = tx.GetPayout(payoutID)
		return err
	})
	if err != nil {
		return nil, s.fail(op, err, fields)
	}

	if err := s.notifier.NotifyPayoutDecision(ctx, out.ExpertID, *out); err != nil {
		logrus.WithFields(fields).Warnf("payout notification failed: %v", err)
	}
	return out, nil
}

// List returns the expert's own payouts, or every payout for an admin.
func (s *Settlement) List(ctx context.Context, a Actor, status string) ([]ds.PayoutRequest, error) {
	var expertID uint
	switch a.Role {
	case role.Admin:
	case role.Expert:
		expertID = a.ID
	default:
		return nil, apperr.New(apperr.Forbidden, "listPayouts", "clients have no payouts")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	payouts, err := s.repo.WithContext(ctx).ListPayouts(expertID, status)
	if err != nil {
		return nil, s.fail("listPayouts", err, logrus.Fields{"actor": a.String()})
	}
	return payouts, nil
}

func (s *Settlement) price(ctx context.Context, requests []ds.Request) ([]Earning, error) {
	earnings := make([]Earning, 0, len(requests))
	for _, req := range requests {
		terms, err := s.policy.TermsFor(ctx, req)
		if err != nil {
			return nil, s.fail("shareTerms", apperr.Wrap(apperr.DependencyFailure, "shareTerms", err),
				logrus.Fields{"request_id": req.ID})
		}
		earnings = append(earnings, Earning{Request: req, Share: terms.ShareOf(req.Amount)})
	}
	return earnings, nil
}

func sumShares(earnings []Earning) decimal.Decimal {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.Share)
	}
	return total
}
