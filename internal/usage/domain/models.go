// Package domain contains the mutable consumption counter for a
// (subscription, feature) pair.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FeatureUsage is created lazily at zero on first access check or first
// increment. Quantity only grows, except when a reset zeroes it in place;
// the row is never deleted within a billing period.
type FeatureUsage struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	SubscriptionID snowflake.ID `gorm:"column:subscription_id;not null;index:ux_feature_usages,unique,priority:1"`
	FeatureID      snowflake.ID `gorm:"column:feature_id;not null;index:ux_feature_usages,unique,priority:2"`
	Quantity       int64        `gorm:"not null;default:0"`
	LastReset      time.Time    `gorm:"column:last_reset;not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (FeatureUsage) TableName() string { return "feature_usages" }
