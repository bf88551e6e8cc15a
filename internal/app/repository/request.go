package repository

import (
	"fmt"
	"time"

	"marketplace/internal/app/ds"

	"github.com/google/uuid"
)

// Guard is the expected current state of a request row. A guarded update only
// touches the row when every set field still matches.
type Guard struct {
	Statuses         []ds.RequestStatus
	Visibility       ds.Visibility
	NotVisibility    ds.Visibility
	AssignedExpertID *uint
	Unassigned       bool
	ClientID         *uint
}

type RequestFilter struct {
	ClientID *uint
	ExpertID *uint // assigned to, or still invited to an open pool
	Status   string
}

// CreateRequest inserts req with a fresh display id. Call inside a transaction.
func (r *Repository) CreateRequest(req *ds.Request) error {
	seq, err := r.NextCounter(CounterRequest)
	if err != nil {
		return fmt.Errorf("next request number: %w", err)
	}

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.DisplayID = fmt.Sprintf("REQ-%010d", seq)
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	return r.db.Create(req).Error
}

func (r *Repository) GetRequest(id uuid.UUID) (*ds.Request, error) {
	var req ds.Request
	if err := r.db.Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestGuarded applies updates only if the row still satisfies g.
// Returns false when the guard no longer holds.
func (r *Repository) UpdateRequestGuarded(id uuid.UUID, g Guard, updates map[string]interface{}) (bool, error) {
	q := r.db.Model(&ds.Request{}).Where("id = ?", id)

	if len(g.Statuses) > 0 {
		q = q.Where("status IN ?", g.Statuses)
	}
	if g.Visibility != "" {
		q = q.Where("visibility = ?", g.Visibility)
	}
	if g.NotVisibility != "" {
		q = q.Where("visibility <> ?", g.NotVisibility)
	}
	if g.AssignedExpertID != nil {
		q = q.Where("assigned_expert_id = ?", *g.AssignedExpertID)
	}
	if g.Unassigned {
		q = q.Where("assigned_expert_id IS NULL")
	}
	if g.ClientID != nil {
		q = q.Where("client_id = ?", *g.ClientID)
	}

	result := q.Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *Repository) ListRequests(f RequestFilter) ([]ds.Request, error) {
	q := r.db.Model(&ds.Request{})

	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.ExpertID != nil {
		invited := r.db.Model(&ds.PoolInvite{}).Select("request_id").Where("expert_id = ? AND status = ?", *f.ExpertID, ds.InviteInvited)
		q = q.Where("(assigned_expert_id = ? OR (visibility = ? AND id IN (?)))", *f.ExpertID, ds.VisibilityOpen, invited)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var requests []ds.Request
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ListUninvoicedPaid returns paid requests that still have no invoice.
func (r *Repository) ListUninvoicedPaid(limit int) ([]ds.Request, error) {
	var requests []ds.Request
	err := r.db.
		Where("paid_at IS NOT NULL AND invoice_display_id IS NULL").
		Order("paid_at ASC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// ListUnsettled returns the expert's completed requests not yet in any payout.
// A non-empty ids narrows the result to that selection.
func (r *Repository) ListUnsettled(expertID uint, ids []uuid.UUID) ([]ds.Request, error) {
	q := r.db.Where("assigned_expert_id = ? AND status = ? AND payout_id IS NULL", expertID, ds.StatusCompleted)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}

	var requests []ds.Request
	err := q.Order("completed_at ASC").Find(&requests).Error
	return requests, err
}

// AttachPayout sets payout_id on the given requests, re-checking that each one
// is still an unsettled completed request of the expert. Returns the number of
// rows claimed.
func (r *Repository) AttachPayout(payoutID, expertID uint, ids []uuid.UUID) (int64, error) {
	result := r.db.Model(&ds.Request{}).
		Where("id IN ?", ids).
		Where("assigned_expert_id = ? AND status = ? AND payout_id IS NULL", expertID, ds.StatusCompleted).
		Update("payout_id", payoutID)
	return result.RowsAffected, result.Error
}

// ReleasePayout clears payout_id on every request of the payout.
func (r *Repository) ReleasePayout(payoutID uint) (int64, error) {
	result := r.db.Model(&ds.Request{}).
		Where("payout_id = ?", payoutID).
		Update("payout_id", nil)
	return result.RowsAffected, result.Error
}

func (r *Repository) StampInvoiceDisplayID(requestID uuid.UUID, displayID string) error {
	return r.db.Model(&ds.Request{}).
		Where("id = ?", requestID).
		Update("invoice_display_id", displayID).Error
}
