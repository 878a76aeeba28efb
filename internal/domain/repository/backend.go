package repository

import (
	"context"

	"github.com/minedash/minedash/internal/domain/model"
)

// StorageBackend bundles the domain repositories served by one physical
// store. The service composes a durable remote backend and a best-effort
// local cache behind the fallback decorator.
type StorageBackend interface {
	Users() UserRepository
	Withdrawals() WithdrawalRepository
	GamePlays() GamePlayRepository
}

// CacheBackend is a StorageBackend that also accepts whole-record mirror
// writes. The fallback decorator uses it to keep the cache warm after every
// successful remote operation.
type CacheBackend interface {
	StorageBackend
	PutUser(ctx context.Context, u model.User) error
	PutWithdrawal(ctx context.Context, w model.WithdrawalRequest) error
}
