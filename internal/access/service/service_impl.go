package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	accessdomain "github.com/smallbiznis/planguard/internal/access/domain"
	"github.com/smallbiznis/planguard/internal/cache"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/smallbiznis/planguard/internal/config"
	entitlementdomain "github.com/smallbiznis/planguard/internal/entitlement/domain"
	"github.com/smallbiznis/planguard/internal/observability/metrics"
	usagedomain "github.com/smallbiznis/planguard/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Store   cache.Store
	Engine  entitlementdomain.Service
	Tracker usagedomain.Tracker
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	cfg     config.EntitlementConfig
	log     *zap.Logger
	store   cache.Store
	engine  entitlementdomain.Service
	tracker usagedomain.Tracker
	metrics *metrics.Metrics
}

func New(p Params) accessdomain.Service {
	return &Service{
		cfg:     p.Config.Entitlement,
		log:     p.Log.Named("access.service"),
		store:   p.Store,
		engine:  p.Engine,
		tracker: p.Tracker,
		metrics: p.Metrics,
	}
}

// CanAccess probes the cache first and returns a hit verbatim. On a miss
// it delegates to the engine and caches the decision for the configured
// TTL. Cache failures degrade to an uncached engine call; they never
// decide access by themselves.
//
// Known staleness bound: a rate-window reset triggered by an uncached
// read does not invalidate entries written by other requests, so a
// cached "exceeded" decision can outlive the reset for up to the TTL.
// Callers must tolerate entitlement lag up to the TTL; freshness is
// forced only immediately after the caller's own ReportUsage.
func (s *Service) CanAccess(
	ctx context.Context,
	subscription catalogdomain.Subscription,
	featureCode string,
) (entitlementdomain.FeatureAccess, error) {
	key := s.cacheKey(subscription, featureCode)

	if cached, err := s.store.Get(ctx, key); err == nil {
		var access entitlementdomain.FeatureAccess
		if err := json.Unmarshal(cached, &access); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(ctx, featureCode)
			}
			return access, nil
		}
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("entitlement cache read failed", zap.String("key", key), zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(ctx, featureCode)
	}

	access, err := s.engine.Decide(ctx, subscription, featureCode)
	if err != nil {
		return access, err
	}

	if encoded, err := json.Marshal(access); err == nil {
		if err := s.store.Set(ctx, key, encoded, s.cfg.CacheTTL); err != nil {
			s.log.Warn("entitlement cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return access, nil
}

// ReportUsage increments the usage counter and unconditionally drops the
// cached decision for the key, so the caller's next check reflects the
// new counter immediately.
func (s *Service) ReportUsage(
	ctx context.Context,
	subscription catalogdomain.Subscription,
	featureCode string,
	quantity int64,
) error {
	if err := s.tracker.Increment(ctx, subscription.ID, featureCode, quantity); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordUsageIncrement(ctx, featureCode, quantity)
	}

	key := s.cacheKey(subscription, featureCode)
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate entitlement cache %s: %w", key, err)
	}
	return nil
}

func (s *Service) cacheKey(subscription catalogdomain.Subscription, featureCode string) string {
	return fmt.Sprintf("%s%s:%s", s.cfg.CacheKeyPrefix, subscription.ID.String(), featureCode)
}
