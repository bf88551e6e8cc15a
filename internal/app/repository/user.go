package repository

import (
	"marketplace/internal/app/ds"
	"marketplace/internal/app/role"

	"gorm.io/gorm/clause"
)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.Preload("Skills").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(user *ds.User) error {
	if user.Status == "" {
		user.Status = ds.UserActive
	}
	return r.db.Create(user).Error
}

// SetExpertSkills adds skill tags to an expert. Existing tags are kept.
func (r *Repository) SetExpertSkills(expertID uint, skills []string) error {
	if len(skills) == 0 {
		return nil
	}
	rows := make([]ds.ExpertSkill, len(skills))
	for i, s := range skills {
		rows[i] = ds.ExpertSkill{ExpertID: expertID, Skill: s}
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *Repository) SetUserStatus(id uint, status ds.UserStatus) error {
	return r.db.Model(&ds.User{}).Where("id = ?", id).Update("status", status).Error
}

// EligibleExperts returns active experts; with skills set, only those sharing at least one.
func (r *Repository) EligibleExperts(skills []string) ([]ds.User, error) {
	q := r.db.Where("role = ? AND status = ?", role.Expert, ds.UserActive)
	if len(skills) > 0 {
		withSkill := r.db.Model(&ds.ExpertSkill{}).Select("expert_id").Where("skill IN ?", skills)
		q = q.Where("id IN (?)", withSkill)
	}

	var experts []ds.User
	err := q.Order("id").Find(&experts).Error
	return experts, err
}
