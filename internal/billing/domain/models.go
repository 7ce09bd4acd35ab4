// Package domain defines the usage-billing calculator surface. Charges
// are computed on demand, typically at invoice time, and are independent
// of the entitlement decision path.
package domain

import (
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
)

// TierCharge is one consumed slice of a tiered price.
type TierCharge struct {
	StartQuantity  int64 `json:"tier_start"`
	EndQuantity    int64 `json:"tier_end"`
	Quantity       int64 `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	FlatFeeCents   int64 `json:"flat_fee_cents"`
	AmountCents    int64 `json:"amount_cents"`
}

// Charge is the calculator's output. TotalCents is always set on
// success; the model-specific fields describe how it was derived.
// Amounts are integer cents.
type Charge struct {
	FeatureCode  string                     `json:"feature_code"`
	FeatureType  catalogdomain.FeatureType  `json:"feature_type"`
	PricingModel catalogdomain.PricingModel `json:"pricing_model,omitempty"`
	Quantity     int64                      `json:"quantity"`
	TotalCents   int64                      `json:"total_cents"`
	Message      string                     `json:"message,omitempty"`

	// Flat pricing over a quota: only the overage is billed.
	Quota            int64 `json:"quota,omitempty"`
	OverageQuantity  int64 `json:"overage_quantity,omitempty"`
	OverageRateCents int64 `json:"overage_rate_cents,omitempty"`

	// Volume pricing: the single bracket applied to the whole quantity.
	UnitPriceCents int64 `json:"unit_price_cents,omitempty"`
	FlatFeeCents   int64 `json:"flat_fee_cents,omitempty"`

	// Package pricing: quantity rounded up to whole bundles.
	Packages          int64 `json:"packages,omitempty"`
	PackageSize       int64 `json:"package_size,omitempty"`
	PackagePriceCents int64 `json:"package_price_cents,omitempty"`

	// Tiered pricing: every consumed slice.
	Tiers []TierCharge `json:"tiers,omitempty"`
}

const (
	MessageBooleanNoCharge = "Boolean features do not incur charges"
	MessageRateNoCharge    = "Rate-limited features do not incur charges"
	MessageWithinQuota     = "Within quota limits"
)
