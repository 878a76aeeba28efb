// Package fallback composes the durable remote backend with a best-effort
// local cache. Operations go to the remote store first; when it is
// unreachable the cache silently takes over, so a database outage degrades
// the service instead of breaking it. Successful remote results are
// mirrored into the cache to keep it warm for the next outage.
package fallback

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// DefaultRemoteTimeout bounds every remote call so a hung database shows up
// as a fallback, not a stuck request.
const DefaultRemoteTimeout = 3 * time.Second

// Store is the fallback decorator. It implements StorageBackend itself.
type Store struct {
	remote  repository.StorageBackend
	cache   repository.CacheBackend
	timeout time.Duration
	strict  bool
	logger  *slog.Logger
}

// Option configures the store.
type Option func(*Store)

// WithTimeout overrides the per-call remote timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithStrict disables the silent fallback: remote failures are returned to
// the caller instead of being served from the cache.
func WithStrict(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// New builds the decorator around a remote backend and a cache.
func New(remote repository.StorageBackend, cache repository.CacheBackend, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote:  remote,
		cache:   cache,
		timeout: DefaultRemoteTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() repository.UserRepository             { return &userRepository{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository { return &withdrawalRepository{s} }
func (s *Store) GamePlays() repository.GamePlayRepository     { return &gamePlayRepository{s} }

// domainError reports whether err is an authoritative domain answer rather
// than an infrastructure failure. Domain answers never trigger a fallback,
// with one exception handled by the read paths: a remote ErrNotFound still
// consults the cache, because a record may exist only locally after an
// earlier outage.
func domainError(err error) bool {
	for _, sentinel := range []error{
		domainErrors.ErrInsufficientBalance,
		domainErrors.ErrInvalidAmount,
		domainErrors.ErrInvalidCurrency,
		domainErrors.ErrEmptyWalletAddress,
		domainErrors.ErrBelowMinimumWithdrawal,
		domainErrors.ErrAlreadyProcessed,
		domainErrors.ErrInvalidStatus,
		domainErrors.ErrUnknownAction,
		domainErrors.ErrActionOnCooldown,
		domainErrors.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// shouldFallBack decides whether the cache takes over after a remote error.
func (s *Store) shouldFallBack(err error, notFoundFallsBack bool) bool {
	if err == nil || s.strict {
		return false
	}
	if errors.Is(err, domainErrors.ErrNotFound) {
		return notFoundFallsBack
	}
	return !domainError(err)
}

func (s *Store) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) logFallback(op string, err error) {
	s.logger.Warn("remote store unavailable, serving from cache", "op", op, "error", err)
}

func (s *Store) mirrorUser(ctx context.Context, u *model.User) {
	if u == nil {
		return
	}
	if err := s.cache.PutUser(ctx, *u); err != nil {
		s.logger.Debug("cache mirror failed", "op", "put_user", "error", err)
	}
}

func (s *Store) mirrorWithdrawal(ctx context.Context, w *model.WithdrawalRequest) {
	if w == nil {
		return
	}
	if err := s.cache.PutWithdrawal(ctx, *w); err != nil {
		s.logger.Debug("cache mirror failed", "op", "put_withdrawal", "error", err)
	}
}

// --- UserRepository ---

type userRepository struct{ s *Store }

func (r *userRepository) Upsert(ctx context.Context, p model.Profile) (*model.User, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	u, err := r.s.remote.Users().Upsert(rctx, p)
	cancel()
	if err == nil {
		r.s.mirrorUser(ctx, u)
		return u, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("user_upsert", err)
	return r.s.cache.Users().Upsert(ctx, p)
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	u, err := r.s.remote.Users().GetByID(rctx, userID)
	cancel()
	if err == nil {
		r.s.mirrorUser(ctx, u)
		return u, nil
	}
	if !r.s.shouldFallBack(err, true) {
		return nil, err
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		r.s.logFallback("user_get", err)
	}
	return r.s.cache.Users().GetByID(ctx, userID)
}

func (r *userRepository) ApplyPatch(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	u, err := r.s.remote.Users().ApplyPatch(rctx, userID, patch)
	cancel()
	if err == nil {
		r.s.mirrorUser(ctx, u)
		return u, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("user_patch", err)
	return r.s.cache.Users().ApplyPatch(ctx, userID, patch)
}

func (r *userRepository) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	u, err := r.s.remote.Users().AddPoints(rctx, userID, delta)
	cancel()
	if err == nil {
		r.s.mirrorUser(ctx, u)
		return u, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("user_add_points", err)
	return r.s.cache.Users().AddPoints(ctx, userID, delta)
}

func (r *userRepository) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	rctx, cancel := r.s.remoteCtx(ctx)
	err := r.s.remote.Users().SetBalance(rctx, userID, currency, amount)
	cancel()
	if err == nil {
		if cerr := r.s.cache.Users().SetBalance(ctx, userID, currency, amount); cerr != nil {
			r.s.logger.Debug("cache mirror failed", "op", "set_balance", "error", cerr)
		}
		return nil
	}
	if !r.s.shouldFallBack(err, false) {
		return err
	}
	r.s.logFallback("user_set_balance", err)
	return r.s.cache.Users().SetBalance(ctx, userID, currency, amount)
}

func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	users, err := r.s.remote.Users().ListAll(rctx)
	cancel()
	if err == nil {
		for i := range users {
			r.s.mirrorUser(ctx, &users[i])
		}
		return users, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("user_list", err)
	return r.s.cache.Users().ListAll(ctx)
}

func (r *userRepository) Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	entries, err := r.s.remote.Users().Leaderboard(rctx, metric, limit)
	cancel()
	if err == nil {
		return entries, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("leaderboard", err)
	return r.s.cache.Users().Leaderboard(ctx, metric, limit)
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	rctx, cancel := r.s.remoteCtx(ctx)
	err := r.s.remote.Users().Delete(rctx, userID)
	cancel()
	if err == nil {
		if cerr := r.s.cache.Users().Delete(ctx, userID); cerr != nil && !errors.Is(cerr, domainErrors.ErrNotFound) {
			r.s.logger.Debug("cache mirror failed", "op", "delete_user", "error", cerr)
		}
		return nil
	}
	if !r.s.shouldFallBack(err, false) {
		return err
	}
	r.s.logFallback("user_delete", err)
	return r.s.cache.Users().Delete(ctx, userID)
}

// --- WithdrawalRepository ---

type withdrawalRepository struct{ s *Store }

func (r *withdrawalRepository) Create(ctx context.Context, req *model.WithdrawalRequest) error {
	rctx, cancel := r.s.remoteCtx(ctx)
	err := r.s.remote.Withdrawals().Create(rctx, req)
	cancel()
	if err == nil {
		r.s.mirrorWithdrawal(ctx, req)
		return nil
	}
	if !r.s.shouldFallBack(err, false) {
		return err
	}
	r.s.logFallback("withdrawal_create", err)
	return r.s.cache.Withdrawals().Create(ctx, req)
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*model.WithdrawalRequest, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	w, err := r.s.remote.Withdrawals().GetByID(rctx, id)
	cancel()
	if err == nil {
		r.s.mirrorWithdrawal(ctx, w)
		return w, nil
	}
	if !r.s.shouldFallBack(err, true) {
		return nil, err
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		r.s.logFallback("withdrawal_get", err)
	}
	return r.s.cache.Withdrawals().GetByID(ctx, id)
}

func (r *withdrawalRepository) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	list, err := r.s.remote.Withdrawals().List(rctx, status)
	cancel()
	if err == nil {
		for i := range list {
			r.s.mirrorWithdrawal(ctx, &list[i])
		}
		return list, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("withdrawal_list", err)
	return r.s.cache.Withdrawals().List(ctx, status)
}

func (r *withdrawalRepository) Approve(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	w, err := r.s.remote.Withdrawals().Approve(rctx, id, processedBy, processedAt)
	cancel()
	if err == nil {
		// Replay on the cache so its balance copy stays in step, then make
		// sure the record itself is mirrored even if the replay failed.
		if _, cerr := r.s.cache.Withdrawals().Approve(ctx, id, processedBy, processedAt); cerr != nil && !errors.Is(cerr, domainErrors.ErrAlreadyProcessed) {
			r.s.logger.Debug("cache mirror failed", "op", "approve", "error", cerr)
		}
		r.s.mirrorWithdrawal(ctx, w)
		return w, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("withdrawal_approve", err)
	return r.s.cache.Withdrawals().Approve(ctx, id, processedBy, processedAt)
}

func (r *withdrawalRepository) Reject(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	w, err := r.s.remote.Withdrawals().Reject(rctx, id, processedBy, processedAt)
	cancel()
	if err == nil {
		r.s.mirrorWithdrawal(ctx, w)
		return w, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return nil, err
	}
	r.s.logFallback("withdrawal_reject", err)
	return r.s.cache.Withdrawals().Reject(ctx, id, processedBy, processedAt)
}

// --- GamePlayRepository ---

type gamePlayRepository struct{ s *Store }

func (r *gamePlayRepository) Record(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	count, err := r.s.remote.GamePlays().Record(rctx, userID, actionID, day)
	cancel()
	if err == nil {
		if _, cerr := r.s.cache.GamePlays().Record(ctx, userID, actionID, day); cerr != nil {
			r.s.logger.Debug("cache mirror failed", "op", "record_play", "error", cerr)
		}
		return count, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return 0, err
	}
	r.s.logFallback("record_play", err)
	return r.s.cache.GamePlays().Record(ctx, userID, actionID, day)
}

func (r *gamePlayRepository) Get(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	rctx, cancel := r.s.remoteCtx(ctx)
	count, err := r.s.remote.GamePlays().Get(rctx, userID, actionID, day)
	cancel()
	if err == nil {
		return count, nil
	}
	if !r.s.shouldFallBack(err, false) {
		return 0, err
	}
	r.s.logFallback("get_plays", err)
	return r.s.cache.GamePlays().Get(ctx, userID, actionID, day)
}
