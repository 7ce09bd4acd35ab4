package service

import (
	"context"
	"fmt"
	"strings"

	billingdomain "github.com/smallbiznis/planguard/internal/billing/domain"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog catalogdomain.Repository
}

type Service struct {
	log     *zap.Logger
	catalog catalogdomain.Repository
}

func New(p Params) billingdomain.Service {
	return &Service{
		log:     p.Log.Named("billing.service"),
		catalog: p.Catalog,
	}
}

// Charge loads the feature's plan configuration and dispatches on
// feature type, then pricing model. Boolean and rate features bill
// nothing; quota and usage features bill under the configured model.
func (s *Service) Charge(
	ctx context.Context,
	subscription catalogdomain.Subscription,
	featureCode string,
	quantity int64,
) (billingdomain.Charge, error) {
	if quantity < 0 {
		return billingdomain.Charge{}, billingdomain.ErrInvalidQuantity
	}

	feature, err := s.catalog.GetFeatureByCode(ctx, strings.TrimSpace(featureCode))
	if err != nil {
		return billingdomain.Charge{}, err
	}
	if feature == nil {
		return billingdomain.Charge{}, fmt.Errorf("%w: %s", billingdomain.ErrFeatureNotFound, featureCode)
	}

	planFeature, err := s.catalog.GetPlanFeature(ctx, subscription.PlanID, feature.ID)
	if err != nil {
		return billingdomain.Charge{}, err
	}
	if planFeature == nil {
		return billingdomain.Charge{}, fmt.Errorf("%w: %s", billingdomain.ErrFeatureNotConfigured, featureCode)
	}

	switch feature.Type {
	case catalogdomain.FeatureTypeBoolean:
		return billingdomain.Charge{
			FeatureCode: feature.Code,
			FeatureType: feature.Type,
			Quantity:    quantity,
			Message:     billingdomain.MessageBooleanNoCharge,
		}, nil

	case catalogdomain.FeatureTypeRate:
		// Access is already gated by the entitlement engine.
		return billingdomain.Charge{
			FeatureCode: feature.Code,
			FeatureType: feature.Type,
			Quantity:    quantity,
			Message:     billingdomain.MessageRateNoCharge,
		}, nil

	case catalogdomain.FeatureTypeQuota, catalogdomain.FeatureTypeUsage:
		return s.chargeMetered(ctx, *feature, *planFeature, quantity)

	default:
		return billingdomain.Charge{}, fmt.Errorf("%w: %s", billingdomain.ErrUnsupportedFeatureType, feature.Type)
	}
}

func (s *Service) chargeMetered(
	ctx context.Context,
	feature catalogdomain.Feature,
	planFeature catalogdomain.PlanFeature,
	quantity int64,
) (billingdomain.Charge, error) {
	switch feature.PricingModel {
	case catalogdomain.PricingModelFlat:
		return FlatCharge(feature, planFeature, quantity)

	case catalogdomain.PricingModelTiered:
		tiers, err := s.catalog.ListPricingTiers(ctx, planFeature.ID)
		if err != nil {
			return billingdomain.Charge{}, err
		}
		return TieredCharge(feature, tiers, quantity)

	case catalogdomain.PricingModelVolume:
		tiers, err := s.catalog.ListPricingTiers(ctx, planFeature.ID)
		if err != nil {
			return billingdomain.Charge{}, err
		}
		return VolumeCharge(feature, tiers, quantity)

	case catalogdomain.PricingModelPackage:
		return PackageCharge(feature, planFeature, quantity)

	default:
		return billingdomain.Charge{}, fmt.Errorf("%w: %s", billingdomain.ErrUnsupportedPricingModel, feature.PricingModel)
	}
}
