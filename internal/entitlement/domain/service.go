package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
)

// Service decides feature access from plan configuration and current
// usage. A rate-window check may reset the usage counter as a side
// effect of the read path; no other branch mutates state.
type Service interface {
	Decide(ctx context.Context, subscription catalogdomain.Subscription, featureCode string) (FeatureAccess, error)
}

// ErrUnsupportedFeatureType marks a feature type value the state machine
// does not know, e.g. from stale catalog data. Callers fail closed.
var ErrUnsupportedFeatureType = errors.New("unsupported_feature_type")
