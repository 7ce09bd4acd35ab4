// Package domain contains the plan-catalog read models: features, plans,
// per-plan feature bindings and pricing tiers. These records are owned by
// plan administration and are read-only inside a single entitlement or
// billing decision.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// FeatureType decides how access to a feature is gated.
type FeatureType string

const (
	// FeatureTypeBoolean is a pure on/off switch, never metered.
	FeatureTypeBoolean FeatureType = "boolean"
	// FeatureTypeQuota enforces a cumulative per-period ceiling.
	FeatureTypeQuota FeatureType = "quota"
	// FeatureTypeRate enforces a ceiling that resets after a rolling window.
	FeatureTypeRate FeatureType = "rate"
	// FeatureTypeUsage never gates access, it only meters for billing.
	FeatureTypeUsage FeatureType = "usage"
)

func (t FeatureType) Valid() bool {
	switch t {
	case FeatureTypeBoolean, FeatureTypeQuota, FeatureTypeRate, FeatureTypeUsage:
		return true
	default:
		return false
	}
}

// PricingModel decides how metered quantity converts to money.
// Meaningful only for quota and usage feature types.
type PricingModel string

const (
	PricingModelFlat    PricingModel = "flat"
	PricingModelTiered  PricingModel = "tiered"
	PricingModelVolume  PricingModel = "volume"
	PricingModelPackage PricingModel = "package"
)

func (m PricingModel) Valid() bool {
	switch m {
	case PricingModelFlat, PricingModelTiered, PricingModelVolume, PricingModelPackage:
		return true
	default:
		return false
	}
}

type Feature struct {
	ID           snowflake.ID      `gorm:"primaryKey"`
	Code         string            `gorm:"type:text;not null;uniqueIndex:ux_features_code"`
	Name         string            `gorm:"type:text;not null"`
	Description  *string           `gorm:"type:text"`
	Type         FeatureType       `gorm:"column:feature_type;type:text;not null"`
	PricingModel PricingModel      `gorm:"column:pricing_model;type:text;not null;default:flat"`
	Active       bool              `gorm:"not null;default:true"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Feature) TableName() string { return "features" }

type Plan struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Code      string       `gorm:"type:text;not null;uniqueIndex:ux_plans_code"`
	Name      string       `gorm:"type:text;not null"`
	Active    bool         `gorm:"not null;default:true"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Plan) TableName() string { return "plans" }

// PlanFeature binds a feature to a plan with the plan's limits and rates.
// Quota is the ceiling for quota features and the bundle size under
// package pricing; OverageRateCents is the per-unit price under flat
// pricing and the bundle price under package pricing.
type PlanFeature struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	PlanID            snowflake.ID `gorm:"column:plan_id;not null;index:ux_plan_features,unique,priority:1"`
	FeatureID         snowflake.ID `gorm:"column:feature_id;not null;index:ux_plan_features,unique,priority:2"`
	Enabled           bool         `gorm:"not null;default:true"`
	Quota             *int64       `gorm:"column:quota"`
	RateLimit         *int64       `gorm:"column:rate_limit"`
	RateWindowSeconds *int64       `gorm:"column:rate_window_seconds"`
	OverageRateCents  *int64       `gorm:"column:overage_rate_cents"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PlanFeature) TableName() string { return "plan_features" }

// RateWindow returns the reset window as a duration, or false when the
// plan feature has no window configured.
func (pf PlanFeature) RateWindow() (time.Duration, bool) {
	if pf.RateWindowSeconds == nil || *pf.RateWindowSeconds <= 0 {
		return 0, false
	}
	return time.Duration(*pf.RateWindowSeconds) * time.Second, true
}

// PricingTier is one bracket of a tiered or volume price. Tiers of one
// plan feature partition [0, inf) when ordered by start quantity; the
// last tier leaves EndQuantity nil for an unbounded bracket.
type PricingTier struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	PlanFeatureID  snowflake.ID `gorm:"column:plan_feature_id;not null;index"`
	StartQuantity  int64        `gorm:"column:start_quantity;not null"`
	EndQuantity    *int64       `gorm:"column:end_quantity"`
	UnitPriceCents int64        `gorm:"column:unit_price_cents;not null;default:0"`
	FlatFeeCents   int64        `gorm:"column:flat_fee_cents;not null;default:0"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingTier) TableName() string { return "pricing_tiers" }

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription links a subscriber to a plan. Lifecycle management lives
// outside this core; entitlement decisions only need the plan binding.
type Subscription struct {
	ID        snowflake.ID       `gorm:"primaryKey"`
	PlanID    snowflake.ID       `gorm:"column:plan_id;not null;index"`
	Status    SubscriptionStatus `gorm:"type:text;not null;default:active"`
	StartAt   time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	CreatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Subscription) TableName() string { return "subscriptions" }
