package di

import (
	"github.com/minedash/minedash/internal/app"
	"github.com/minedash/minedash/internal/config"
	"github.com/minedash/minedash/internal/logger"
	"github.com/minedash/minedash/internal/server/http/handlers"
	"github.com/minedash/minedash/internal/server/http/router"
	"github.com/minedash/minedash/internal/storage/fallback"
	"github.com/minedash/minedash/internal/storage/postgres"
	"github.com/minedash/minedash/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		fallback.Module,
		usecase.Module,
		fx.Provide(func(f *app.DashboardFacade) handlers.DashboardFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
