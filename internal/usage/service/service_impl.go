package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/smallbiznis/planguard/internal/clock"
	usagedomain "github.com/smallbiznis/planguard/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Catalog catalogdomain.Repository
	Repo    usagedomain.Repository
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	catalog catalogdomain.Repository
	repo    usagedomain.Repository
}

func New(p Params) usagedomain.Tracker {
	return &Service{
		log:     p.Log.Named("usage.tracker"),
		clock:   p.Clock,
		catalog: p.Catalog,
		repo:    p.Repo,
	}
}

func (s *Service) Increment(ctx context.Context, subscriptionID snowflake.ID, featureCode string, quantity int64) error {
	if quantity <= 0 {
		return usagedomain.ErrInvalidQuantity
	}

	feature, err := s.catalog.GetFeatureByCode(ctx, strings.TrimSpace(featureCode))
	if err != nil {
		return err
	}
	if feature == nil {
		// Fire-and-forget reporting: a feature removed from the catalog
		// must not fail the caller's request.
		s.log.Debug("dropping usage for unknown feature", zap.String("feature_code", featureCode))
		return nil
	}

	if _, err := s.repo.GetOrCreate(ctx, subscriptionID, feature.ID); err != nil {
		return err
	}
	return s.repo.Increment(ctx, subscriptionID, feature.ID, quantity)
}

func (s *Service) GetOrCreate(ctx context.Context, subscriptionID, featureID snowflake.ID) (*usagedomain.FeatureUsage, error) {
	return s.repo.GetOrCreate(ctx, subscriptionID, featureID)
}

func (s *Service) Reset(ctx context.Context, usage *usagedomain.FeatureUsage) error {
	if usage == nil {
		return usagedomain.ErrInvalidUsage
	}
	return s.repo.Reset(ctx, usage, s.clock.Now())
}

func (s *Service) ResetPeriod(ctx context.Context, subscriptionID snowflake.ID, featureCode string) error {
	feature, err := s.catalog.GetFeatureByCode(ctx, strings.TrimSpace(featureCode))
	if err != nil {
		return err
	}
	if feature == nil {
		return nil
	}

	usage, err := s.repo.GetOrCreate(ctx, subscriptionID, feature.ID)
	if err != nil {
		return err
	}
	return s.repo.Reset(ctx, usage, s.clock.Now())
}
