package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Tracker owns every mutation of FeatureUsage counters. Increments are
// atomic per (subscription, feature) key: concurrent reports must all
// land in the final value.
type Tracker interface {
	// Increment adds quantity to the counter for the named feature,
	// creating the counter at zero first if absent. An unknown feature
	// code is a silent no-op: usage reported for a retired feature is
	// dropped rather than failing the caller's request.
	Increment(ctx context.Context, subscriptionID snowflake.ID, featureCode string, quantity int64) error

	// GetOrCreate returns the counter for the pair, creating it at
	// quantity zero when absent.
	GetOrCreate(ctx context.Context, subscriptionID, featureID snowflake.ID) (*FeatureUsage, error)

	// Reset zeroes the counter and stamps last_reset with the current
	// time, mutating usage in place.
	Reset(ctx context.Context, usage *FeatureUsage) error

	// ResetPeriod zeroes the counter for the named feature. Driven by
	// period rollover for quota features; unknown codes are a no-op.
	ResetPeriod(ctx context.Context, subscriptionID snowflake.ID, featureCode string) error
}

var (
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidUsage    = errors.New("invalid_usage")
)
