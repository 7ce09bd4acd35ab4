package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/smallbiznis/planguard/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	features     repository.Repository[domain.Feature]
	planFeatures repository.Repository[domain.PlanFeature]
	db           *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{
		features:     repository.ProvideStore[domain.Feature](db),
		planFeatures: repository.ProvideStore[domain.PlanFeature](db),
		db:           db,
	}
}

func (r *repo) GetFeatureByCode(ctx context.Context, code string) (*domain.Feature, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	return r.features.FindOne(ctx, &domain.Feature{Code: code})
}

func (r *repo) GetPlanFeature(ctx context.Context, planID, featureID snowflake.ID) (*domain.PlanFeature, error) {
	return r.planFeatures.FindOne(ctx, &domain.PlanFeature{
		PlanID:    planID,
		FeatureID: featureID,
	})
}

func (r *repo) ListPricingTiers(ctx context.Context, planFeatureID snowflake.ID) ([]domain.PricingTier, error) {
	var tiers []domain.PricingTier
	err := r.db.WithContext(ctx).
		Model(&domain.PricingTier{}).
		Where("plan_feature_id = ?", planFeatureID).
		Order("start_quantity ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}
