package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/planguard/internal/access"
	"github.com/smallbiznis/planguard/internal/billing"
	"github.com/smallbiznis/planguard/internal/cache"
	"github.com/smallbiznis/planguard/internal/catalog"
	"github.com/smallbiznis/planguard/internal/clock"
	"github.com/smallbiznis/planguard/internal/config"
	"github.com/smallbiznis/planguard/internal/entitlement"
	"github.com/smallbiznis/planguard/internal/logger"
	"github.com/smallbiznis/planguard/internal/migration"
	"github.com/smallbiznis/planguard/internal/observability"
	"github.com/smallbiznis/planguard/internal/usage"
	"github.com/smallbiznis/planguard/pkg/db"
	"go.uber.org/fx"

	accessdomain "github.com/smallbiznis/planguard/internal/access/domain"
	billingdomain "github.com/smallbiznis/planguard/internal/billing/domain"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		cache.Module,
		migration.Module,

		// Functional domains
		catalog.Module,
		usage.Module,
		entitlement.Module,
		access.Module,
		billing.Module,

		// The entitlement and billing surfaces are consumed in-process
		// by an embedding web layer; materialize them so the graph is
		// fully constructed at startup.
		fx.Invoke(func(accessdomain.Service, billingdomain.Service) {}),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
