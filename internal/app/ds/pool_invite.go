package ds

import (
	"time"

	"github.com/google/uuid"
)

// 4. Pool invites: one expert's standing for one open request
type PoolInvite struct {
	RequestID uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ExpertID  uint         `gorm:"primaryKey"`
	Status    InviteStatus `gorm:"type:varchar(20);not null"`
	UpdatedAt time.Time
}
