// Package seed bootstraps a demo catalog for development: one plan with
// a feature of every type and a pricing tier ladder, so entitlement and
// billing paths can be exercised immediately after startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"gorm.io/gorm"
)

const demoPlanCode = "developer"

// EnsureDemoCatalog seeds the demo plan and its features when the
// catalog is empty. Safe to run on every startup.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Plan{}).Where("code = ?", demoPlanCode).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return seedDemoPlanTx(tx, node)
	})
}

func seedDemoPlanTx(tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()

	plan := catalogdomain.Plan{
		ID:        node.Generate(),
		Code:      demoPlanCode,
		Name:      "Developer",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&plan).Error; err != nil {
		return err
	}

	type featureSpec struct {
		code    string
		name    string
		ftype   catalogdomain.FeatureType
		pricing catalogdomain.PricingModel
		binding catalogdomain.PlanFeature
		tiers   []catalogdomain.PricingTier
	}

	specs := []featureSpec{
		{
			code:    "sso",
			name:    "Single Sign-On",
			ftype:   catalogdomain.FeatureTypeBoolean,
			pricing: catalogdomain.PricingModelFlat,
		},
		{
			code:    "api_calls",
			name:    "API Calls",
			ftype:   catalogdomain.FeatureTypeQuota,
			pricing: catalogdomain.PricingModelFlat,
			binding: catalogdomain.PlanFeature{
				Quota:            int64Ptr(10000),
				OverageRateCents: int64Ptr(2),
			},
		},
		{
			code:    "search_requests",
			name:    "Search Requests",
			ftype:   catalogdomain.FeatureTypeRate,
			pricing: catalogdomain.PricingModelFlat,
			binding: catalogdomain.PlanFeature{
				RateLimit:         int64Ptr(60),
				RateWindowSeconds: int64Ptr(60),
			},
		},
		{
			code:    "compute_minutes",
			name:    "Compute Minutes",
			ftype:   catalogdomain.FeatureTypeUsage,
			pricing: catalogdomain.PricingModelTiered,
			tiers: []catalogdomain.PricingTier{
				{StartQuantity: 0, EndQuantity: int64Ptr(1000), UnitPriceCents: 10},
				{StartQuantity: 1000, EndQuantity: int64Ptr(10000), UnitPriceCents: 5},
				{StartQuantity: 10000, UnitPriceCents: 2},
			},
		},
		{
			code:    "storage_gb",
			name:    "Storage",
			ftype:   catalogdomain.FeatureTypeUsage,
			pricing: catalogdomain.PricingModelVolume,
			tiers: []catalogdomain.PricingTier{
				{StartQuantity: 0, EndQuantity: int64Ptr(100), UnitPriceCents: 25},
				{StartQuantity: 100, UnitPriceCents: 15},
			},
		},
		{
			code:    "email_credits",
			name:    "Email Credits",
			ftype:   catalogdomain.FeatureTypeUsage,
			pricing: catalogdomain.PricingModelPackage,
			binding: catalogdomain.PlanFeature{
				Quota:            int64Ptr(500),
				OverageRateCents: int64Ptr(300),
			},
		},
	}

	for _, spec := range specs {
		feature := catalogdomain.Feature{
			ID:           node.Generate(),
			Code:         spec.code,
			Name:         spec.name,
			Type:         spec.ftype,
			PricingModel: spec.pricing,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&feature).Error; err != nil {
			return err
		}

		binding := spec.binding
		binding.ID = node.Generate()
		binding.PlanID = plan.ID
		binding.FeatureID = feature.ID
		binding.Enabled = true
		binding.CreatedAt = now
		binding.UpdatedAt = now
		if err := tx.Create(&binding).Error; err != nil {
			return err
		}

		for _, tier := range spec.tiers {
			tier.ID = node.Generate()
			tier.PlanFeatureID = binding.ID
			tier.CreatedAt = now
			tier.UpdatedAt = now
			if err := tx.Create(&tier).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func int64Ptr(v int64) *int64 { return &v }
