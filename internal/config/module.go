package config

import "go.uber.org/fx"

// Module provides parsed configuration to the fx container.
var Module = fx.Provide(Load)
