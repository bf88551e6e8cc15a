package ds

import "marketplace/internal/app/role"

// 1. Users: clients, experts and admins
type User struct {
	ID       uint       `gorm:"primaryKey"`
	Login    string     `gorm:"type:varchar(50);unique;not null"`
	Password string     `gorm:"type:varchar(255);not null"`
	Role     role.Role  `gorm:"type:int;not null;default:0"`
	Status   UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Email    string     `gorm:"type:varchar(100)"`
	Phone    string     `gorm:"type:varchar(32)"`
	FullName string     `gorm:"type:varchar(100)"`

	Skills []ExpertSkill `gorm:"foreignKey:ExpertID"`
}

// ExpertSkill is one skill tag of an expert, used to filter pool invites.
type ExpertSkill struct {
	ExpertID uint   `gorm:"primaryKey"`
	Skill    string `gorm:"primaryKey;type:varchar(64)"`
}
