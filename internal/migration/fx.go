package migration

import (
	catalogdomain "github.com/smallbiznis/planguard/internal/catalog/domain"
	"github.com/smallbiznis/planguard/internal/config"
	"github.com/smallbiznis/planguard/internal/seed"
	usagedomain "github.com/smallbiznis/planguard/internal/usage/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned SQL migrations target postgres; other dialects
			// (local sqlite, mysql) rely on gorm's schema sync.
			if err := conn.AutoMigrate(
				&catalogdomain.Feature{},
				&catalogdomain.Plan{},
				&catalogdomain.PlanFeature{},
				&catalogdomain.PricingTier{},
				&catalogdomain.Subscription{},
				&usagedomain.FeatureUsage{},
			); err != nil {
				return err
			}
		}

		if cfg.Environment == "development" {
			return seed.EnsureDemoCatalog(conn)
		}
		return nil
	}),
)
