package ds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 3. Requests: one purchased unit of work
type Request struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayID string    `gorm:"type:varchar(20);uniqueIndex;not null"` // REQ-0000000001
	ClientID  uint      `gorm:"not null;index"`

	ServiceID     *uint           `gorm:"index"`
	PricingPlanID *uint           `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"` // pre-tax

	Status           RequestStatus  `gorm:"type:varchar(20);not null;index"`
	DisputedFrom     *RequestStatus `gorm:"type:varchar(20)"`
	Visibility       Visibility     `gorm:"type:varchar(20);not null;default:'ADMIN'"`
	AssignedExpertID *uint          `gorm:"index"`
	// skill tags the pool was opened for, stored as JSON
	RequiredSkills datatypes.JSONSlice[string]

	CreatedAt        time.Time  `gorm:"not null"`
	PaidAt           *time.Time `gorm:"default:null"`
	WorkStartedAt    *time.Time `gorm:"default:null"`
	CompletedAt      *time.Time `gorm:"default:null"`
	InvoiceDisplayID *string    `gorm:"type:varchar(20)"`
	PayoutID         *uint      `gorm:"index"` // nil: earned but not settled
}
