package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/minedash/minedash/internal/app"
	"github.com/minedash/minedash/internal/config"
	"github.com/minedash/minedash/internal/domain/repository"
	"github.com/minedash/minedash/internal/storage/memory"
	"github.com/minedash/minedash/internal/storage/postgres"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		AdminPassword:   "secret",
		MinWithdrawal:   100,
		StoreTimeout:    time.Millisecond,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	backend := memory.New()

	var facade *app.DashboardFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Decorate(func() repository.StorageBackend { return backend }),
			fx.Decorate(func() repository.CacheBackend { return memory.New() }),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected dashboard facade instance")
	}
}
