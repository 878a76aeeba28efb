package logger

import "go.uber.org/fx"

// Module exposes the shared slog logger to the fx container.
var Module = fx.Provide(New)
