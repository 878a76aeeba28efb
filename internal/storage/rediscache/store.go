// Package rediscache implements the cache side of the fallback store on
// Redis, so cached state survives process restarts and is shared between
// replicas. Records are stored as JSON values with explicit id sets as the
// index; the store never scans the keyspace.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

const (
	userKeyPrefix       = "minedash:user:"
	userIndexKey        = "minedash:users"
	withdrawalKeyPrefix = "minedash:withdrawal:"
	withdrawalIndexKey  = "minedash:withdrawals"
	playsKeyPrefix      = "minedash:plays:"
)

// Store is a Redis-backed cache backend. It is advisory: writes are
// whole-record and unguarded, the durable remote backend owns consistency.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// Open connects to Redis and validates the connection with a ping.
func Open(ctx context.Context, addr, password string, db int) (*Store, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return New(client), nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Users() repository.UserRepository             { return &userRepository{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository { return &withdrawalRepository{s} }
func (s *Store) GamePlays() repository.GamePlayRepository     { return &gamePlayRepository{s} }

// PutUser mirrors a whole user record into the cache.
func (s *Store) PutUser(ctx context.Context, u model.User) error {
	return s.saveUser(ctx, &u)
}

// PutWithdrawal mirrors a whole withdrawal record into the cache.
func (s *Store) PutWithdrawal(ctx context.Context, w model.WithdrawalRequest) error {
	return s.saveWithdrawal(ctx, &w)
}

func (s *Store) saveUser(ctx context.Context, u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+u.UserID, raw, 0)
	pipe.SAdd(ctx, userIndexKey, u.UserID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) loadUser(ctx context.Context, userID string) (*model.User, error) {
	raw, err := s.client.Get(ctx, userKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) loadAllUsers(ctx context.Context) ([]model.User, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry whose record expired or was evicted.
			continue
		}
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) saveWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, withdrawalKeyPrefix+w.ID, raw, 0)
	pipe.SAdd(ctx, withdrawalIndexKey, w.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) loadWithdrawal(ctx context.Context, id string) (*model.WithdrawalRequest, error) {
	raw, err := s.client.Get(ctx, withdrawalKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var w model.WithdrawalRequest
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func playField(actionID string, day time.Time) string {
	return actionID + ":" + model.Day(day).Format("2006-01-02")
}

// --- UserRepository ---

type userRepository struct{ s *Store }

func (r *userRepository) Upsert(ctx context.Context, p model.Profile) (*model.User, error) {
	existing, err := r.s.loadUser(ctx, p.UserID)
	switch {
	case err == nil:
		existing.Username = p.Username
		existing.Email = p.Email
		existing.Avatar = p.Avatar
		if err := r.s.saveUser(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, domainErrors.ErrNotFound):
		u := model.NewUser(p)
		u.CreatedAt = r.s.now()
		if err := r.s.saveUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, err
	}
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.s.loadUser(ctx, userID)
}

func (r *userRepository) ApplyPatch(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	u, err := r.s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	if err := r.s.saveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	u, err := r.s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Points += delta
	if u.Points < 0 {
		u.Points = 0
	}
	if err := r.s.saveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	if !currency.Valid() {
		return domainErrors.ErrInvalidCurrency
	}
	u, err := r.s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	u.Balance.Set(currency, amount)
	return r.s.saveUser(ctx, u)
}

func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := r.s.loadAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (r *userRepository) Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	if !metric.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	all, err := r.s.loadAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := all[:0]
	for _, u := range all {
		if u.IsAdmin {
			continue
		}
		users = append(users, u)
	}

	value := func(u model.User) float64 {
		switch metric {
		case model.LeaderboardEarnings:
			return u.Balance.TON
		case model.LeaderboardStreak:
			return float64(u.DayStreak)
		default:
			return float64(u.Points)
		}
	}

	sort.Slice(users, func(i, j int) bool {
		vi, vj := value(users[i]), value(users[j])
		if vi != vj {
			return vi > vj
		}
		return users[i].UserID < users[j].UserID
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	out := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		out = append(out, model.LeaderboardEntry{
			UserID:    u.UserID,
			Username:  u.Username,
			Avatar:    u.Avatar,
			Points:    u.Points,
			VIPLevel:  u.VIPLevel,
			DayStreak: u.DayStreak,
			TON:       u.Balance.TON,
		})
	}
	return out, nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	exists, err := r.s.client.SIsMember(ctx, userIndexKey, userID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}

	pipe := r.s.client.TxPipeline()
	pipe.Del(ctx, userKeyPrefix+userID)
	pipe.SRem(ctx, userIndexKey, userID)
	pipe.Del(ctx, playsKeyPrefix+userID)
	_, err = pipe.Exec(ctx)
	return err
}

// --- WithdrawalRepository ---

type withdrawalRepository struct{ s *Store }

func (r *withdrawalRepository) Create(ctx context.Context, req *model.WithdrawalRequest) error {
	return r.s.saveWithdrawal(ctx, req)
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*model.WithdrawalRequest, error) {
	return r.s.loadWithdrawal(ctx, id)
}

func (r *withdrawalRepository) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	ids, err := r.s.client.SMembers(ctx, withdrawalIndexKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]model.WithdrawalRequest, 0, len(ids))
	for _, id := range ids {
		w, err := r.s.loadWithdrawal(ctx, id)
		if errors.Is(err, domainErrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if status != nil && w.Status != *status {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.After(out[j].RequestDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *withdrawalRepository) Approve(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	w, err := r.s.loadWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyProcessed
	}

	u, err := r.s.loadUser(ctx, w.UserID)
	if err != nil {
		return nil, err
	}
	current := u.Balance.Get(w.Currency)
	if current < w.Amount {
		return nil, domainErrors.ErrInsufficientBalance
	}
	u.Balance.Set(w.Currency, current-w.Amount)
	if err := r.s.saveUser(ctx, u); err != nil {
		return nil, err
	}

	w.Status = model.WithdrawalStatusApproved
	w.ProcessedDate = &processedAt
	w.ProcessedBy = processedBy
	if err := r.s.saveWithdrawal(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) Reject(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	w, err := r.s.loadWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyProcessed
	}

	w.Status = model.WithdrawalStatusRejected
	w.ProcessedDate = &processedAt
	w.ProcessedBy = processedBy
	if err := r.s.saveWithdrawal(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// --- GamePlayRepository ---

type gamePlayRepository struct{ s *Store }

func (r *gamePlayRepository) Record(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	count, err := r.s.client.HIncrBy(ctx, playsKeyPrefix+userID, playField(actionID, day), 1).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *gamePlayRepository) Get(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	count, err := r.s.client.HGet(ctx, playsKeyPrefix+userID, playField(actionID, day)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
