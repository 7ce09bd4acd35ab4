package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/planguard/internal/catalog/domain"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func setupRepo(t *testing.T) (domain.Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Feature{},
		&domain.Plan{},
		&domain.PlanFeature{},
		&domain.PricingTier{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return Provide(db), db
}

func TestGetFeatureByCode(t *testing.T) {
	node := mustNode(t)
	repo, db := setupRepo(t)
	ctx := context.Background()

	feature := domain.Feature{
		ID:           node.Generate(),
		Code:         "api_calls",
		Name:         "API Calls",
		Type:         domain.FeatureTypeQuota,
		PricingModel: domain.PricingModelFlat,
		Active:       true,
	}
	if err := db.Create(&feature).Error; err != nil {
		t.Fatalf("seed feature: %v", err)
	}

	found, err := repo.GetFeatureByCode(ctx, "api_calls")
	if err != nil {
		t.Fatalf("get feature: %v", err)
	}
	if found == nil || found.ID != feature.ID {
		t.Fatalf("expected feature %v, got %+v", feature.ID, found)
	}

	missing, err := repo.GetFeatureByCode(ctx, "ghost")
	if err != nil {
		t.Fatalf("get missing feature: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code, got %+v", missing)
	}

	blank, err := repo.GetFeatureByCode(ctx, "   ")
	if err != nil {
		t.Fatalf("get blank code: %v", err)
	}
	if blank != nil {
		t.Fatalf("expected nil for blank code, got %+v", blank)
	}
}

func TestGetPlanFeature(t *testing.T) {
	node := mustNode(t)
	repo, db := setupRepo(t)
	ctx := context.Background()

	planID := node.Generate()
	featureID := node.Generate()
	quota := int64(100)
	binding := domain.PlanFeature{
		ID:        node.Generate(),
		PlanID:    planID,
		FeatureID: featureID,
		Enabled:   true,
		Quota:     &quota,
	}
	if err := db.Create(&binding).Error; err != nil {
		t.Fatalf("seed binding: %v", err)
	}

	found, err := repo.GetPlanFeature(ctx, planID, featureID)
	if err != nil {
		t.Fatalf("get binding: %v", err)
	}
	if found == nil || found.ID != binding.ID {
		t.Fatalf("expected binding %v, got %+v", binding.ID, found)
	}
	if found.Quota == nil || *found.Quota != 100 {
		t.Fatalf("expected quota 100, got %+v", found.Quota)
	}

	missing, err := repo.GetPlanFeature(ctx, planID, node.Generate())
	if err != nil {
		t.Fatalf("get missing binding: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unbound feature, got %+v", missing)
	}
}

func TestListPricingTiersOrdered(t *testing.T) {
	node := mustNode(t)
	repo, db := setupRepo(t)
	ctx := context.Background()

	planFeatureID := node.Generate()
	end := int64(1000)
	tiers := []domain.PricingTier{
		{ID: node.Generate(), PlanFeatureID: planFeatureID, StartQuantity: 1000, UnitPriceCents: 5},
		{ID: node.Generate(), PlanFeatureID: planFeatureID, StartQuantity: 0, EndQuantity: &end, UnitPriceCents: 10},
	}
	for i := range tiers {
		if err := db.Create(&tiers[i]).Error; err != nil {
			t.Fatalf("seed tier: %v", err)
		}
	}
	// A tier for another binding must not leak in.
	other := domain.PricingTier{ID: node.Generate(), PlanFeatureID: node.Generate(), StartQuantity: 0, UnitPriceCents: 99}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other tier: %v", err)
	}

	listed, err := repo.ListPricingTiers(ctx, planFeatureID)
	if err != nil {
		t.Fatalf("list tiers: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(listed))
	}
	if listed[0].StartQuantity != 0 || listed[1].StartQuantity != 1000 {
		t.Fatalf("expected ascending start quantities, got %d then %d", listed[0].StartQuantity, listed[1].StartQuantity)
	}
}
