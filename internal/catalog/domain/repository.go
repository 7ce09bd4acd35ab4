package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the read contract the entitlement and billing cores
// require from plan-management storage. Lookups return nil without an
// error when the record does not exist; a missing feature or binding is
// an expected outcome, not a fault.
type Repository interface {
	GetFeatureByCode(ctx context.Context, code string) (*Feature, error)
	GetPlanFeature(ctx context.Context, planID, featureID snowflake.ID) (*PlanFeature, error)
	ListPricingTiers(ctx context.Context, planFeatureID snowflake.ID) ([]PricingTier, error)
}
