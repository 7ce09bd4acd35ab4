package usage

import (
	"github.com/smallbiznis/planguard/internal/usage/repository"
	"github.com/smallbiznis/planguard/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.tracker",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
