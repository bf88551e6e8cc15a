package ds

// Counter backs monotonic display numbering (request display ids).
type Counter struct {
	Name  string `gorm:"primaryKey;type:varchar(32)"`
	Value uint64 `gorm:"not null;default:0"`
}

// AllModels lists every table for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&ExpertSkill{},
		&Service{},
		&PricingPlan{},
		&Request{},
		&PoolInvite{},
		&Invoice{},
		&PayoutRequest{},
		&PayoutItem{},
		&Counter{},
	}
}
