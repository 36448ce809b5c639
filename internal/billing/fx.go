package billing

import (
	"github.com/fleetgrid/ownerconsole/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.readiness",
	fx.Provide(service.NewService),
)
