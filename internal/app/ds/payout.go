package ds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 6. Payout batches and their fixed membership
type PayoutRequest struct {
	ID            uint            `gorm:"primaryKey"`
	ExpertID      uint            `gorm:"not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        PayoutStatus    `gorm:"type:varchar(20);not null;index"`
	RequestDate   time.Time       `gorm:"not null"`
	ProcessedDate *time.Time      `gorm:"default:null"`
	DecidedBy     *uint           `gorm:"default:null"`

	Items []PayoutItem `gorm:"foreignKey:PayoutID"`
}

// PayoutItem records one request settled by a payout together with the share paid for it.
type PayoutItem struct {
	PayoutID  uint            `gorm:"primaryKey"`
	RequestID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Share     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
