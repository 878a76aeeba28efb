package router

import "go.uber.org/fx"

// Module provides the configured gin engine to the fx container.
var Module = fx.Provide(Setup)
