package service

import (
	"fmt"

	billingdomain "github.com/smallbiznis/planguard/internal/billing/domain"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
)

// The four pricing algorithms are pure functions over catalog data.
// They are exported for callers that already hold the configuration,
// e.g. invoice previews priced against a prospective plan.

// FlatCharge bills usage features for every unit and quota features for
// overage only; within-quota consumption is free.
func FlatCharge(
	feature catalogdomain.Feature,
	planFeature catalogdomain.PlanFeature,
	quantity int64,
) (billingdomain.Charge, error) {
	charge := billingdomain.Charge{
		FeatureCode:  feature.Code,
		FeatureType:  feature.Type,
		PricingModel: catalogdomain.PricingModelFlat,
		Quantity:     quantity,
	}

	if feature.Type == catalogdomain.FeatureTypeUsage {
		if planFeature.OverageRateCents == nil {
			return charge, fmt.Errorf("%w: usage feature %s", billingdomain.ErrMissingOverageRate, feature.Code)
		}
		charge.OverageRateCents = *planFeature.OverageRateCents
		charge.TotalCents = quantity * *planFeature.OverageRateCents
		return charge, nil
	}

	quota := int64(0)
	if planFeature.Quota != nil {
		quota = *planFeature.Quota
	}
	charge.Quota = quota

	if quantity <= quota {
		charge.Message = billingdomain.MessageWithinQuota
		return charge, nil
	}

	if planFeature.OverageRateCents == nil {
		return charge, fmt.Errorf("%w: quota feature %s", billingdomain.ErrMissingOverageRate, feature.Code)
	}

	overage := quantity - quota
	charge.OverageQuantity = overage
	charge.OverageRateCents = *planFeature.OverageRateCents
	charge.TotalCents = overage * *planFeature.OverageRateCents
	return charge, nil
}

// TieredCharge prices each consumed slice at its own marginal rate and
// adds every qualifying tier's flat fee, even for a partially consumed
// tier. Tiers must be ordered by ascending start quantity.
func TieredCharge(
	feature catalogdomain.Feature,
	tiers []catalogdomain.PricingTier,
	quantity int64,
) (billingdomain.Charge, error) {
	charge := billingdomain.Charge{
		FeatureCode:  feature.Code,
		FeatureType:  feature.Type,
		PricingModel: catalogdomain.PricingModelTiered,
		Quantity:     quantity,
	}

	for _, tier := range tiers {
		if quantity <= tier.StartQuantity {
			continue
		}

		// An unbounded tier consumes exactly up to quantity.
		tierEnd := quantity
		if tier.EndQuantity != nil {
			tierEnd = *tier.EndQuantity
		}

		consumed := min(quantity-tier.StartQuantity, tierEnd-tier.StartQuantity)
		amount := consumed*tier.UnitPriceCents + tier.FlatFeeCents
		charge.TotalCents += amount
		charge.Tiers = append(charge.Tiers, billingdomain.TierCharge{
			StartQuantity:  tier.StartQuantity,
			EndQuantity:    tierEnd,
			Quantity:       consumed,
			UnitPriceCents: tier.UnitPriceCents,
			FlatFeeCents:   tier.FlatFeeCents,
			AmountCents:    amount,
		})
	}

	return charge, nil
}

// VolumeCharge prices the entire quantity at the single bracket that
// contains it.
func VolumeCharge(
	feature catalogdomain.Feature,
	tiers []catalogdomain.PricingTier,
	quantity int64,
) (billingdomain.Charge, error) {
	charge := billingdomain.Charge{
		FeatureCode:  feature.Code,
		FeatureType:  feature.Type,
		PricingModel: catalogdomain.PricingModelVolume,
		Quantity:     quantity,
	}

	for _, tier := range tiers {
		if quantity < tier.StartQuantity {
			continue
		}
		if tier.EndQuantity != nil && quantity > *tier.EndQuantity {
			continue
		}

		charge.UnitPriceCents = tier.UnitPriceCents
		charge.FlatFeeCents = tier.FlatFeeCents
		charge.TotalCents = quantity*tier.UnitPriceCents + tier.FlatFeeCents
		return charge, nil
	}

	return charge, fmt.Errorf("%w: feature %s quantity %d", billingdomain.ErrNoApplicableTier, feature.Code, quantity)
}

// PackageCharge rounds quantity up to whole bundles; PlanFeature.Quota
// is the bundle size here and OverageRateCents the bundle price.
func PackageCharge(
	feature catalogdomain.Feature,
	planFeature catalogdomain.PlanFeature,
	quantity int64,
) (billingdomain.Charge, error) {
	charge := billingdomain.Charge{
		FeatureCode:  feature.Code,
		FeatureType:  feature.Type,
		PricingModel: catalogdomain.PricingModelPackage,
		Quantity:     quantity,
	}

	if planFeature.Quota == nil || *planFeature.Quota <= 0 {
		return charge, fmt.Errorf("%w: feature %s", billingdomain.ErrMissingPackageSize, feature.Code)
	}
	if planFeature.OverageRateCents == nil {
		return charge, fmt.Errorf("%w: package feature %s", billingdomain.ErrMissingOverageRate, feature.Code)
	}

	size := *planFeature.Quota
	packages := (quantity + size - 1) / size

	charge.Packages = packages
	charge.PackageSize = size
	charge.PackagePriceCents = *planFeature.OverageRateCents
	charge.TotalCents = packages * *planFeature.OverageRateCents
	return charge, nil
}
