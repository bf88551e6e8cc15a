package repository

import (
	"time"

	"marketplace/internal/app/ds"
)

// CreatePayout inserts the payout together with its items.
func (r *Repository) CreatePayout(payout *ds.PayoutRequest) error {
	return r.db.Create(payout).Error
}

func (r *Repository) GetPayout(id uint) (*ds.PayoutRequest, error) {
	var payout ds.PayoutRequest
	if err := r.db.Preload("Items").First(&payout, id).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// ListPayouts returns payouts newest first; expertID 0 means all experts.
func (r *Repository) ListPayouts(expertID uint, status string) ([]ds.PayoutRequest, error) {
	q := r.db.Preload("Items")
	if expertID != 0 {
		q = q.Where("expert_id = ?", expertID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var payouts []ds.PayoutRequest
	err := q.Order("request_date DESC").Find(&payouts).Error
	return payouts, err
}

// DecidePayout moves a PENDING payout to status. Returns false if it was no
// longer pending. processed is recorded on approvals only.
func (r *Repository) DecidePayout(id uint, status ds.PayoutStatus, processed *time.Time, adminID uint) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"decided_by": adminID,
	}
	if status == ds.PayoutApproved {
		updates["processed_date"] = processed
	}

	result := r.db.Model(&ds.PayoutRequest{}).
		Where("id = ? AND status = ?", id, ds.PayoutPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
