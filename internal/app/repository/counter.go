package repository

import (
	"errors"

	"marketplace/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const CounterRequest = "request"

// NextCounter increments the named counter and returns the new value. The
// UPDATE takes the row lock, so concurrent callers in separate transactions
// get distinct values.
func (r *Repository) NextCounter(name string) (uint64, error) {
	result := r.db.Model(&ds.Counter{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		// first use: seed the row, tolerating a concurrent seeder
		err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ds.Counter{Name: name, Value: 0}).Error
		if err != nil {
			return 0, err
		}
		result = r.db.Model(&ds.Counter{}).
			Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return 0, result.Error
		}
		if result.RowsAffected == 0 {
			return 0, errors.New("counter " + name + " missing after seed")
		}
	}

	var counter ds.Counter
	if err := r.db.Where("name = ?", name).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// SeedCounter makes sure the named counter row exists.
func (r *Repository) SeedCounter(name string) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ds.Counter{Name: name}).Error
}
