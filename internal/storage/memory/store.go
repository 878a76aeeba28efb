// Package memory implements the storage backend contract with in-process
// maps. It serves two roles: the local cache side of the fallback store and
// a deterministic backend for tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

type playKey struct {
	userID   string
	actionID string
	day      string
}

// Store is a mutex-guarded in-memory storage backend.
type Store struct {
	mu          sync.RWMutex
	users       map[string]model.User
	withdrawals map[string]model.WithdrawalRequest
	plays       map[playKey]int
	now         func() time.Time
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		withdrawals: make(map[string]model.WithdrawalRequest),
		plays:       make(map[playKey]int),
		now:         time.Now,
	}
}

func (s *Store) Users() repository.UserRepository             { return &userRepository{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository { return &withdrawalRepository{s} }
func (s *Store) GamePlays() repository.GamePlayRepository     { return &gamePlayRepository{s} }

// PutUser mirrors a whole user record into the store, replacing any
// existing copy. Used by the fallback layer for write-through caching.
func (s *Store) PutUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
	return nil
}

// PutWithdrawal mirrors a whole withdrawal record into the store.
func (s *Store) PutWithdrawal(_ context.Context, w model.WithdrawalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withdrawals[w.ID] = w
	return nil
}

// --- UserRepository ---

type userRepository struct{ s *Store }

func (r *userRepository) Upsert(_ context.Context, p model.Profile) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[p.UserID]; ok {
		existing.Username = p.Username
		existing.Email = p.Email
		existing.Avatar = p.Avatar
		r.s.users[p.UserID] = existing
		return &existing, nil
	}

	u := model.NewUser(p)
	u.CreatedAt = r.s.now()
	r.s.users[p.UserID] = *u
	out := *u
	return &out, nil
}

func (r *userRepository) GetByID(_ context.Context, userID string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) ApplyPatch(_ context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	patch.Apply(&u)
	r.s.users[userID] = u
	return &u, nil
}

func (r *userRepository) AddPoints(_ context.Context, userID string, delta int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u.Points += delta
	if u.Points < 0 {
		u.Points = 0
	}
	r.s.users[userID] = u
	return &u, nil
}

func (r *userRepository) SetBalance(_ context.Context, userID string, currency model.Currency, amount float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u.Balance.Set(currency, amount)
	r.s.users[userID] = u
	return nil
}

func (r *userRepository) ListAll(_ context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *userRepository) Leaderboard(_ context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	if !metric.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	r.s.mu.RLock()
	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if u.IsAdmin {
			continue
		}
		users = append(users, u)
	}
	r.s.mu.RUnlock()

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

func (r *userRepository) Delete(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.users, userID)
	for k := range r.s.plays {
		if k.userID == userID {
			delete(r.s.plays, k)
		}
	}
	return nil
}

// --- WithdrawalRepository ---

type withdrawalRepository struct{ s *Store }

func (r *withdrawalRepository) Create(_ context.Context, req *model.WithdrawalRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.withdrawals[req.ID] = *req
	return nil
}

func (r *withdrawalRepository) GetByID(_ context.Context, id string) (*model.WithdrawalRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &w, nil
}

func (r *withdrawalRepository) List(_ context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.WithdrawalRequest, 0, len(r.s.withdrawals))
	for _, w := range r.s.withdrawals {
		if status != nil && w.Status != *status {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.After(out[j].RequestDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *withdrawalRepository) Approve(_ context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyProcessed
	}

	u, ok := r.s.users[w.UserID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	current := u.Balance.Get(w.Currency)
	if current < w.Amount {
		return nil, domainErrors.ErrInsufficientBalance
	}
	u.Balance.Set(w.Currency, current-w.Amount)
	r.s.users[w.UserID] = u

	w.Status = model.WithdrawalStatusApproved
	w.ProcessedDate = &processedAt
	w.ProcessedBy = processedBy
	r.s.withdrawals[id] = w
	return &w, nil
}

func (r *withdrawalRepository) Reject(_ context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyProcessed
	}

	w.Status = model.WithdrawalStatusRejected
	w.ProcessedDate = &processedAt
	w.ProcessedBy = processedBy
	r.s.withdrawals[id] = w
	return &w, nil
}

// --- GamePlayRepository ---

type gamePlayRepository struct{ s *Store }

func (r *gamePlayRepository) Record(_ context.Context, userID, actionID string, day time.Time) (int, error) {
	k := playKey{userID, actionID, model.Day(day).Format("2006-01-02")}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.plays[k]++
	return r.s.plays[k], nil
}

func (r *gamePlayRepository) Get(_ context.Context, userID, actionID string, day time.Time) (int, error) {
	k := playKey{userID, actionID, model.Day(day).Format("2006-01-02")}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.plays[k], nil
}
