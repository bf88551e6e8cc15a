package repository

import (
	"fmt"

	"marketplace/internal/app/ds"

	"github.com/gosimple/slug"
)

func (r *Repository) GetService(id uint) (*ds.Service, error) {
	var service ds.Service
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *Repository) GetPlan(id uint) (*ds.PricingPlan, error) {
	var plan ds.PricingPlan
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetServiceAny returns a service even when it was soft-deleted. Settlement
// still needs the payout policy of retired services.
func (r *Repository) GetServiceAny(id uint) (*ds.Service, error) {
	var service ds.Service
	if err := r.db.First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *Repository) GetPlanAny(id uint) (*ds.PricingPlan, error) {
	var plan ds.PricingPlan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) ListServices(query string) ([]ds.Service, error) {
	q := r.db.Where("is_deleted = ?", false)
	if query != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%")
	}

	var services []ds.Service
	err := q.Order("id").Find(&services).Error
	return services, err
}

func (r *Repository) ListPlans(serviceID uint) ([]ds.PricingPlan, error) {
	q := r.db.Where("is_deleted = ?", false)
	if serviceID != 0 {
		q = q.Where("service_id = ?", serviceID)
	}

	var plans []ds.PricingPlan
	err := q.Order("id").Find(&plans).Error
	return plans, err
}

func (r *Repository) CreateService(service *ds.Service) error {
	if service.Slug == "" {
		service.Slug = slug.Make(service.Name)
	}
	if err := r.db.Create(service).Error; err != nil {
		return fmt.Errorf("create service %q: %w", service.Slug, err)
	}
	return nil
}

func (r *Repository) CreatePlan(plan *ds.PricingPlan) error {
	if plan.Slug == "" {
		plan.Slug = slug.Make(plan.Name)
	}
	if err := r.db.Create(plan).Error; err != nil {
		return fmt.Errorf("create plan %q: %w", plan.Slug, err)
	}
	return nil
}
