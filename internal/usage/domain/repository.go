package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	GetOrCreate(ctx context.Context, subscriptionID, featureID snowflake.ID) (*FeatureUsage, error)

	// Increment applies a single relative UPDATE at the storage layer.
	// Never read-modify-write in application code: that loses updates
	// under concurrent reporting.
	Increment(ctx context.Context, subscriptionID, featureID snowflake.ID, quantity int64) error

	Reset(ctx context.Context, usage *FeatureUsage, now time.Time) error
}
