package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
)

// Service computes the charge for a quantity of feature usage under the
// subscription's plan. Pure with respect to state: no counters move and
// no cache is touched.
type Service interface {
	Charge(ctx context.Context, subscription catalogdomain.Subscription, featureCode string, quantity int64) (Charge, error)
}

// Billing errors surface as distinguishable failures, never as a silent
// zero total: an under-billed action must not look like a free one.
var (
	ErrFeatureNotFound         = errors.New("feature_not_found")
	ErrFeatureNotConfigured    = errors.New("feature_not_configured_for_plan")
	ErrInvalidQuantity         = errors.New("invalid_quantity")
	ErrMissingOverageRate      = errors.New("missing_overage_rate")
	ErrMissingPackageSize      = errors.New("missing_package_size")
	ErrNoApplicableTier        = errors.New("no_applicable_pricing_tier")
	ErrUnsupportedPricingModel = errors.New("unsupported_pricing_model")
	ErrUnsupportedFeatureType  = errors.New("unsupported_feature_type_for_billing")
)
