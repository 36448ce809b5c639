package organization

import (
	"github.com/fleetgrid/ownerconsole/internal/organization/repository"
	"github.com/fleetgrid/ownerconsole/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
