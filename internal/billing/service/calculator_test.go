package service

import (
	"errors"
	"testing"

	billingdomain "github.com/smallbiznis/planguard/internal/billing/domain"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func usageFeature(code string, model catalogdomain.PricingModel) catalogdomain.Feature {
	return catalogdomain.Feature{
		Code:         code,
		Type:         catalogdomain.FeatureTypeUsage,
		PricingModel: model,
	}
}

func quotaFeature(code string, model catalogdomain.PricingModel) catalogdomain.Feature {
	return catalogdomain.Feature{
		Code:         code,
		Type:         catalogdomain.FeatureTypeQuota,
		PricingModel: model,
	}
}

func TestFlatChargeUsageBillsEveryUnit(t *testing.T) {
	feature := usageFeature("compute_minutes", catalogdomain.PricingModelFlat)
	binding := catalogdomain.PlanFeature{OverageRateCents: int64Ptr(3)}

	charge, err := FlatCharge(feature, binding, 40)
	assert.NoError(t, err)
	assert.Equal(t, int64(120), charge.TotalCents)
	assert.Equal(t, int64(3), charge.OverageRateCents)
}

func TestFlatChargeUsageMissingRate(t *testing.T) {
	feature := usageFeature("compute_minutes", catalogdomain.PricingModelFlat)

	_, err := FlatCharge(feature, catalogdomain.PlanFeature{}, 40)
	assert.ErrorIs(t, err, billingdomain.ErrMissingOverageRate)
}

func TestFlatChargeQuotaWithinQuotaIsFree(t *testing.T) {
	feature := quotaFeature("api_calls", catalogdomain.PricingModelFlat)
	binding := catalogdomain.PlanFeature{
		Quota:            int64Ptr(100),
		OverageRateCents: int64Ptr(200),
	}

	charge, err := FlatCharge(feature, binding, 90)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), charge.TotalCents)
	assert.Equal(t, billingdomain.MessageWithinQuota, charge.Message)
}

func TestFlatChargeQuotaBillsOverageOnly(t *testing.T) {
	feature := quotaFeature("api_calls", catalogdomain.PricingModelFlat)
	binding := catalogdomain.PlanFeature{
		Quota:            int64Ptr(100),
		OverageRateCents: int64Ptr(200),
	}

	charge, err := FlatCharge(feature, binding, 130)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), charge.OverageQuantity)
	assert.Equal(t, int64(6000), charge.TotalCents)
}

func TestFlatChargeQuotaOverageMissingRate(t *testing.T) {
	feature := quotaFeature("api_calls", catalogdomain.PricingModelFlat)
	binding := catalogdomain.PlanFeature{Quota: int64Ptr(100)}

	_, err := FlatCharge(feature, binding, 130)
	assert.ErrorIs(t, err, billingdomain.ErrMissingOverageRate)
}

func TestTieredChargeIsAdditiveAcrossTiers(t *testing.T) {
	feature := usageFeature("compute_minutes", catalogdomain.PricingModelTiered)
	tiers := []catalogdomain.PricingTier{
		{StartQuantity: 0, EndQuantity: int64Ptr(10), UnitPriceCents: 100},
		{StartQuantity: 10, UnitPriceCents: 50},
	}

	charge, err := TieredCharge(feature, tiers, 15)
	assert.NoError(t, err)
	// 10 units at $1 plus 5 units at $0.50.
	assert.Equal(t, int64(1250), charge.TotalCents)
	if assert.Len(t, charge.Tiers, 2) {
		assert.Equal(t, int64(10), charge.Tiers[0].Quantity)
		assert.Equal(t, int64(5), charge.Tiers[1].Quantity)
	}
}

func TestTieredChargeAddsFlatFeeForPartialTier(t *testing.T) {
	feature := usageFeature("compute_minutes", catalogdomain.PricingModelTiered)
	tiers := []catalogdomain.PricingTier{
		{StartQuantity: 0, EndQuantity: int64Ptr(10), UnitPriceCents: 100, FlatFeeCents: 500},
		{StartQuantity: 10, UnitPriceCents: 50, FlatFeeCents: 250},
	}

	charge, err := TieredCharge(feature, tiers, 12)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000+500+100+250), charge.TotalCents)
}

func TestTieredChargeSkipsUnreachedTiers(t *testing.T) {
	feature := usageFeature("compute_minutes", catalogdomain.PricingModelTiered)
	tiers := []catalogdomain.PricingTier{
		{StartQuantity: 0, EndQuantity: int64Ptr(10), UnitPriceCents: 100},
		{StartQuantity: 10, UnitPriceCents: 50},
	}

	charge, err := TieredCharge(feature, tiers, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(700), charge.TotalCents)
	assert.Len(t, charge.Tiers, 1)
}

func TestVolumeChargePricesWholeQuantityAtOneTier(t *testing.T) {
	feature := usageFeature("storage_gb", catalogdomain.PricingModelVolume)
	tiers := []catalogdomain.PricingTier{
		{StartQuantity: 0, EndQuantity: int64Ptr(10), UnitPriceCents: 100},
		{StartQuantity: 10, UnitPriceCents: 50, FlatFeeCents: 25},
	}

	charge, err := VolumeCharge(feature, tiers, 15)
	assert.NoError(t, err)
	assert.Equal(t, int64(15*50+25), charge.TotalCents)
	assert.Equal(t, int64(50), charge.UnitPriceCents)
}

func TestVolumeChargeNoApplicableTier(t *testing.T) {
	feature := usageFeature("storage_gb", catalogdomain.PricingModelVolume)
	tiers := []catalogdomain.PricingTier{
		{StartQuantity: 100, UnitPriceCents: 50},
	}

	_, err := VolumeCharge(feature, tiers, 15)
	assert.ErrorIs(t, err, billingdomain.ErrNoApplicableTier)
}

func TestPackageChargeRoundsUp(t *testing.T) {
	feature := usageFeature("email_credits", catalogdomain.PricingModelPackage)
	binding := catalogdomain.PlanFeature{
		Quota:            int64Ptr(20),
		OverageRateCents: int64Ptr(500),
	}

	charge, err := PackageCharge(feature, binding, 21)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), charge.Packages)
	assert.Equal(t, int64(1000), charge.TotalCents)
}

func TestPackageChargeExactMultiple(t *testing.T) {
	feature := usageFeature("email_credits", catalogdomain.PricingModelPackage)
	binding := catalogdomain.PlanFeature{
		Quota:            int64Ptr(20),
		OverageRateCents: int64Ptr(500),
	}

	charge, err := PackageCharge(feature, binding, 40)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), charge.Packages)
	assert.Equal(t, int64(1000), charge.TotalCents)
}

func TestPackageChargeMissingSize(t *testing.T) {
	feature := usageFeature("email_credits", catalogdomain.PricingModelPackage)
	binding := catalogdomain.PlanFeature{OverageRateCents: int64Ptr(500)}

	_, err := PackageCharge(feature, binding, 21)
	if !errors.Is(err, billingdomain.ErrMissingPackageSize) {
		t.Fatalf("expected missing package size, got %v", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }
