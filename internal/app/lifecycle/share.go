package lifecycle

import (
	"context"
	"fmt"

	"marketplace/internal/app/apperr"
	"marketplace/internal/app/ds"
	"marketplace/internal/app/repository"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShareTerms is the payout policy of a service or pricing plan.
type ShareTerms struct {
	Type  ds.ShareType
	Value decimal.Decimal
}

// ShareOf is the expert's portion of amount, rounded to cents.
func (t ShareTerms) ShareOf(amount decimal.Decimal) decimal.Decimal {
	if t.Type == ds.ShareFixed {
		return t.Value.Round(2)
	}
	return amount.Mul(t.Value).Div(hundred).Round(2)
}

// SharePolicy resolves the terms that apply to a request.
type SharePolicy interface {
	TermsFor(ctx context.Context, req ds.Request) (ShareTerms, error)
}

// CatalogPolicy reads the terms of the request's pricing plan, or of its service.
type CatalogPolicy struct {
	repo *repository.Repository
}

func NewCatalogPolicy(repo *repository.Repository) CatalogPolicy {
	return CatalogPolicy{repo: repo}
}

func (p CatalogPolicy) TermsFor(ctx context.Context, req ds.Request) (ShareTerms, error) {
	repo := p.repo.WithContext(ctx)

	switch {
	case req.PricingPlanID != nil:
		plan, err := repo.GetPlanAny(*req.PricingPlanID)
		if err != nil {
			return ShareTerms{}, fmt.Errorf("plan %d: %w", *req.PricingPlanID, err)
		}
		return ShareTerms{Type: plan.ExpertShareType, Value: plan.ExpertShareValue}, nil
	case req.ServiceID != nil:
		service, err := repo.GetServiceAny(*req.ServiceID)
		if err != nil {
			return ShareTerms{}, fmt.Errorf("service %d: %w", *req.ServiceID, err)
		}
		return ShareTerms{Type: service.ExpertShareType, Value: service.ExpertShareValue}, nil
	}
	return ShareTerms{}, apperr.Newf(apperr.DependencyFailure, "shareTerms", "%s has no service or plan", req.DisplayID)
}

// FixedPercentPolicy ignores the catalog and pays a flat percentage.
type FixedPercentPolicy struct {
	Percent decimal.Decimal
}

func (p FixedPercentPolicy) TermsFor(context.Context, ds.Request) (ShareTerms, error) {
	return ShareTerms{Type: ds.SharePercentage, Value: p.Percent}, nil
}
