// Package domain defines the caller-facing entitlement surface: the
// two-phase gate-then-report contract consumed by the web layer.
package domain

import (
	"context"

	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	entitlementdomain "github.com/smallbiznis/planguard/internal/entitlement/domain"
)

// Service wraps the entitlement engine with a read-through cache keyed
// by (subscription, feature). The caller gates an action with CanAccess
// before performing it, then reports its cost exactly once with
// ReportUsage after it succeeds.
type Service interface {
	CanAccess(ctx context.Context, subscription catalogdomain.Subscription, featureCode string) (entitlementdomain.FeatureAccess, error)
	ReportUsage(ctx context.Context, subscription catalogdomain.Subscription, featureCode string, quantity int64) error
}
