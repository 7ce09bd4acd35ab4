package seed

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"gorm.io/gorm"
)

func TestEnsureDemoCatalogIsIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&catalogdomain.Feature{},
		&catalogdomain.Plan{},
		&catalogdomain.PlanFeature{},
		&catalogdomain.PricingTier{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := EnsureDemoCatalog(db); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var plans, features int64
	if err := db.Model(&catalogdomain.Plan{}).Count(&plans).Error; err != nil {
		t.Fatalf("count plans: %v", err)
	}
	if err := db.Model(&catalogdomain.Feature{}).Count(&features).Error; err != nil {
		t.Fatalf("count features: %v", err)
	}
	if plans != 1 {
		t.Fatalf("expected 1 plan, got %d", plans)
	}
	if features != 6 {
		t.Fatalf("expected 6 features, got %d", features)
	}
}
