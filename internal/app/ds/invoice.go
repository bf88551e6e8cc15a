package ds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 5. Invoices. ID is the store-assigned sequence; DisplayID is derived from it after insert.
type Invoice struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	RequestID  uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID   uint            `gorm:"not null;index"`
	Base       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"` // including tax
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null"`
	DisplayID  *string         `gorm:"type:varchar(20);uniqueIndex"` // INV-00000001
	StorageKey *string         `gorm:"type:varchar(255)"`
	CreatedAt  time.Time       `gorm:"not null"`
}
