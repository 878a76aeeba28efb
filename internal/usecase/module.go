package usecase

import (
	"go.uber.org/fx"

	"github.com/minedash/minedash/internal/config"
	"github.com/minedash/minedash/internal/cooldown"
	"github.com/minedash/minedash/internal/domain/repository"
	"github.com/minedash/minedash/internal/reward"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	cooldown.NewTracker,
	newEngine,
	NewProfileUseCase,
	NewMiningUseCase,
	NewConversionUseCase,
	newWithdrawalUseCase,
	NewLeaderboardUseCase,
	newAdminUseCase,
)

func newEngine() *reward.Engine {
	return reward.NewEngine(nil)
}

func newWithdrawalUseCase(backend repository.StorageBackend, cfg *config.Config) *WithdrawalUseCase {
	return NewWithdrawalUseCase(backend, cfg.MinWithdrawal)
}

func newAdminUseCase(backend repository.StorageBackend, cfg *config.Config) (*AdminUseCase, error) {
	return NewAdminUseCase(backend, cfg.AdminPassword)
}
