package ds

import "github.com/shopspring/decimal"

// 2. Catalog: services and pricing plans, each with its own expert payout policy
type Service struct {
	ID               uint            `gorm:"primaryKey"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Slug             string          `gorm:"type:varchar(120);uniqueIndex;not null"`
	Description      string          `gorm:"type:text"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpertShareType  ShareType       `gorm:"type:varchar(20);not null;default:'PERCENTAGE'"`
	ExpertShareValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsDeleted        bool            `gorm:"not null;default:false"`
}

type PricingPlan struct {
	ID               uint            `gorm:"primaryKey"`
	ServiceID        uint            `gorm:"not null;index"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Slug             string          `gorm:"type:varchar(120);uniqueIndex;not null"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpertShareType  ShareType       `gorm:"type:varchar(20);not null;default:'PERCENTAGE'"`
	ExpertShareValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsDeleted        bool            `gorm:"not null;default:false"`
}
