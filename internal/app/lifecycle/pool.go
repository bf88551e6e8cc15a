package lifecycle

import (
	"context"
	"errors"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notifyParallelism caps concurrent invite notifications per pool.
const notifyParallelism = 8

// Pool fans a request out to eligible experts and settles the first-accept race.
type Pool struct {
	base
	experts  ExpertDirectory
	notifier Notifier
}

func (p *Pool) open(ctx context.Context, id uuid.UUID, skills []string) (*ds.Request, []ds.User, error) {
	const op = "openPool"
	fields := logrus.Fields{"request_id": id}

	tctx, cancel := p.withTimeout(ctx)
	defer cancel()

	// eligible experts are resolved before the transaction starts
	experts, err := p.experts.EligibleExperts(tctx, skills)
	if err != nil {
		return nil, nil, p.fail(op, apperr.Wrap(apperr.DependencyFailure, op, err), fields)
	}

	var out *ds.Request
	err = p.repo.Transaction(tctx, func(tx *repository.Repository) error {
		req, err := tx.GetRequest(id)
		if err != nil {
			return err
		}
		if req.Status != ds.StatusNew {
			return apperr.Newf(apperr.InvalidTransition, op, "%s is %s", req.DisplayID, req.Status)
		}

		ok, err := tx.UpdateRequestGuarded(id,
			repository.Guard{Statuses: []ds.RequestStatus{ds.StatusNew}},
			map[string]interface{}{
				"visibility":         ds.VisibilityOpen,
				"assigned_expert_id": nil,
				"required_skills":    datatypes.JSONSlice[string](skills),
			},
		)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Newf(apperr.Conflict, op, "%s changed concurrently", req.DisplayID)
		}

		ids := make([]uint, len(experts))
		for i, e := range experts {
			ids[i] = e.ID
		}
		if err := tx.UpsertInvites(id, ids, ds.InviteInvited); err != nil {
			return err
		}

		out, err = tx.GetRequest(id)
		return err
	})
	if err != nil {
		return nil, nil, p.fail(op, err, fields)
	}

	p.notifyInvites(ctx, experts, *out)
	return out, experts, nil
}

// notifyInvites runs after commit. A failed notification is logged only.
func (p *Pool) notifyInvites(ctx context.Context, experts []ds.User, req ds.Request) {
	var g errgroup.Group
	g.SetLimit(notifyParallelism)

	for _, expert := range experts {
		g.Go(func() error {
			if err := p.notifier.NotifyInvite(ctx, expert, req); err != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": req.ID,
					"expert_id":  expert.ID,
				}).Warnf("invite notification failed: %v", err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logrus.WithField("request_id", req.ID).Warn("some pool invites were not delivered")
	}
}

// Accept lets an invited expert claim an open request. Exactly one of any set
// of concurrent callers wins; the rest get AlreadyAssigned. The claim is a
// single conditional update on (assigned_expert_id IS NULL, visibility OPEN),
// so the store decides the winner.
func (p *Pool) Accept(ctx context.Context, id uuid.UUID, expertID uint) (*ds.Request, error) {
	const op = "acceptFromPool"
	fields := logrus.Fields{"request_id": id, "expert_id": expertID}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var out *ds.Request
	err := p.repo.Transaction(ctx, func(tx *repository.Repository) error {
		invite, err := tx.GetInvite(id, expertID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, err := tx.GetRequest(id); err != nil {
				return err
			}
			return apperr.New(apperr.Forbidden, op, "expert was not invited")
		} else if err != nil {
			return err
		}
		if invite.Status == ds.InviteDeclined {
			return apperr.New(apperr.Forbidden, op, "invite was declined")
		}

		ok, err := tx.UpdateRequestGuarded(id,
			repository.Guard{
				Statuses:   []ds.RequestStatus{ds.StatusNew},
				Visibility: ds.VisibilityOpen,
				Unassigned: true,
			},
			map[string]interface{}{
				"assigned_expert_id": expertID,
				"visibility":         ds.VisibilityAssigned,
				"status":             ds.StatusMatched,
			},
		)
		if err != nil {
			return err
		}
		if !ok {
			req, err := tx.GetRequest(id)
			if err != nil {
				return err
			}
			if req.Status.Terminal() || req.Status == ds.StatusDisputed {
				return apperr.Newf(apperr.InvalidTransition, op, "%s is %s", req.DisplayID, req.Status)
			}
			return apperr.Newf(apperr.AlreadyAssigned, op, "%s is no longer open", req.DisplayID)
		}

		if err := tx.UpsertInvites(id, []uint{expertID}, ds.InviteAccepted); err != nil {
			return err
		}

		out, err = tx.GetRequest(id)
		return err
	})
	if err != nil {
		return nil, p.fail(op, err, fields)
	}
	return out, nil
}

// Decline marks the caller's invite DECLINED. The request itself is untouched.
func (p *Pool) Decline(ctx context.Context, id uuid.UUID, expertID uint) (*ds.PoolInvite, error) {
	const op = "declineInvite"

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var out *ds.PoolInvite
	err := p.repo.Transaction(ctx, func(tx *repository.Repository) error {
		invite, err := tx.GetInvite(id, expertID)
		if err != nil {
			return err
		}
		if invite.Status != ds.InviteInvited {
			return apperr.Newf(apperr.InvalidTransition, op, "invite is %s", invite.Status)
		}
		if err := tx.UpsertInvites(id, []uint{expertID}, ds.InviteDeclined); err != nil {
			return err
		}
		out, err = tx.GetInvite(id, expertID)
		return err
	})
	if err != nil {
		return nil, p.fail(op, err, logrus.Fields{"request_id": id, "expert_id": expertID})
	}
	return out, nil
}

// Invites lists the pool of a request.
func (p *Pool) Invites(ctx context.Context, id uuid.UUID) ([]ds.PoolInvite, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	invites, err := p.repo.WithContext(ctx).ListInvites(id)
	if err != nil {
		return nil, p.fail("listInvites", err, logrus.Fields{"request_id": id})
	}
	return invites, nil
}
