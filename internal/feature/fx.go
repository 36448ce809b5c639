package feature

import (
	"github.com/fleetgrid/ownerconsole/internal/feature/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("feature.catalog",
	fx.Provide(repository.NewRepository),
)
