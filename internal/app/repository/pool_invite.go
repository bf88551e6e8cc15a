package repository

import (
	"time"

	"marketplace/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// UpsertInvites creates or refreshes one invite per expert for the request.
func (r *Repository) UpsertInvites(requestID uuid.UUID, expertIDs []uint, status ds.InviteStatus) error {
	if len(expertIDs) == 0 {
		return nil
	}

	now := time.Now()
	invites := make([]ds.PoolInvite, len(expertIDs))
	for i, id := range expertIDs {
		invites[i] = ds.PoolInvite{RequestID: requestID, ExpertID: id, Status: status, UpdatedAt: now}
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}, {Name: "expert_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&invites).Error
}

func (r *Repository) GetInvite(requestID uuid.UUID, expertID uint) (*ds.PoolInvite, error) {
	var invite ds.PoolInvite
	err := r.db.Where("request_id = ? AND expert_id = ?", requestID, expertID).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *Repository) ListInvites(requestID uuid.UUID) ([]ds.PoolInvite, error) {
	var invites []ds.PoolInvite
	err := r.db.Where("request_id = ?", requestID).Order("expert_id").Find(&invites).Error
	return invites, err
}
