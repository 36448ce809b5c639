package plan

import (
	"github.com/fleetgrid/ownerconsole/internal/plan/repository"
	"github.com/fleetgrid/ownerconsole/internal/plan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
