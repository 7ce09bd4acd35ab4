package service

import (
	"context"
	"fmt"
	"strings"

	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/smallbiznis/planguard/internal/clock"
	entitlementdomain "github.com/smallbiznis/planguard/internal/entitlement/domain"
	"github.com/smallbiznis/planguard/internal/observability/metrics"
	usagedomain "github.com/smallbiznis/planguard/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Catalog catalogdomain.Repository
	Tracker usagedomain.Tracker
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	catalog catalogdomain.Repository
	tracker usagedomain.Tracker
	metrics *metrics.Metrics
}

func New(p Params) entitlementdomain.Service {
	return &Service{
		log:     p.Log.Named("entitlement.service"),
		clock:   p.Clock,
		catalog: p.Catalog,
		tracker: p.Tracker,
		metrics: p.Metrics,
	}
}

// Decide runs the feature-type state machine. Boolean features always
// pass, quota features gate on a cumulative ceiling, rate features gate
// on a ceiling with a lazily-repaired reset window, and usage features
// never gate (they only meter for billing).
func (s *Service) Decide(
	ctx context.Context,
	subscription catalogdomain.Subscription,
	featureCode string,
) (entitlementdomain.FeatureAccess, error) {
	access, err := s.decide(ctx, subscription, featureCode)
	if s.metrics != nil {
		s.metrics.RecordDecision(ctx, featureCode, err == nil && access.Allowed)
	}
	return access, err
}

func (s *Service) decide(
	ctx context.Context,
	subscription catalogdomain.Subscription,
	featureCode string,
) (entitlementdomain.FeatureAccess, error) {
	feature, err := s.catalog.GetFeatureByCode(ctx, strings.TrimSpace(featureCode))
	if err != nil {
		return entitlementdomain.Deny(""), err
	}
	if feature == nil {
		return entitlementdomain.Deny(entitlementdomain.ReasonFeatureNotFound), nil
	}

	planFeature, err := s.catalog.GetPlanFeature(ctx, subscription.PlanID, feature.ID)
	if err != nil {
		return entitlementdomain.Deny(""), err
	}
	if planFeature == nil {
		return entitlementdomain.Deny(entitlementdomain.ReasonFeatureNotFound), nil
	}

	if !planFeature.Enabled {
		return entitlementdomain.Deny(entitlementdomain.ReasonFeatureNotInPlan), nil
	}

	switch feature.Type {
	case catalogdomain.FeatureTypeBoolean:
		return entitlementdomain.Allow(), nil

	case catalogdomain.FeatureTypeQuota:
		usage, err := s.tracker.GetOrCreate(ctx, subscription.ID, feature.ID)
		if err != nil {
			return entitlementdomain.Deny(""), err
		}
		remaining := quota(planFeature.Quota) - usage.Quantity
		if remaining <= 0 {
			return entitlementdomain.DenyRemaining(remaining, entitlementdomain.ReasonQuotaExceeded), nil
		}
		return entitlementdomain.AllowRemaining(remaining), nil

	case catalogdomain.FeatureTypeRate:
		usage, err := s.tracker.GetOrCreate(ctx, subscription.ID, feature.ID)
		if err != nil {
			return entitlementdomain.Deny(""), err
		}
		if window, ok := planFeature.RateWindow(); ok {
			// Staleness is detected and repaired on the read path, so
			// correctness does not depend on an external reset job.
			if s.clock.Now().Sub(usage.LastReset) > window {
				if err := s.tracker.Reset(ctx, usage); err != nil {
					return entitlementdomain.Deny(""), err
				}
			}
		}
		remaining := quota(planFeature.RateLimit) - usage.Quantity
		if remaining <= 0 {
			return entitlementdomain.DenyRemaining(remaining, entitlementdomain.ReasonRateLimitExceeded), nil
		}
		return entitlementdomain.AllowRemaining(remaining), nil

	case catalogdomain.FeatureTypeUsage:
		// Unconstrained but billable; the counter is created on first
		// touch so billing sees the pair even at zero.
		if _, err := s.tracker.GetOrCreate(ctx, subscription.ID, feature.ID); err != nil {
			return entitlementdomain.Deny(""), err
		}
		return entitlementdomain.Allow(), nil

	default:
		s.log.Warn("unknown feature type",
			zap.String("feature_code", feature.Code),
			zap.String("feature_type", string(feature.Type)),
		)
		return entitlementdomain.Deny(""), fmt.Errorf("%w: %s", entitlementdomain.ErrUnsupportedFeatureType, feature.Type)
	}
}

// quota treats an unset ceiling as zero, which denies on first use
// rather than allowing unbounded consumption.
func quota(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}
