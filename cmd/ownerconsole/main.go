package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/fleetgrid/ownerconsole/internal/clock"
	"github.com/fleetgrid/ownerconsole/internal/config"
	"github.com/fleetgrid/ownerconsole/internal/migration"
	"github.com/fleetgrid/ownerconsole/internal/server"
	"github.com/fleetgrid/ownerconsole/pkg/db"
	"github.com/fleetgrid/ownerconsole/pkg/log"
	"github.com/fleetgrid/ownerconsole/pkg/telemetry"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		telemetry.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
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
