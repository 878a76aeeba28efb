// Package postgres is the durable remote storage backend.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/minedash/minedash/internal/domain/errors"
	"github.com/minedash/minedash/internal/domain/model"
	"github.com/minedash/minedash/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; pgxmock
// implements it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type gamePlayRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) GamePlays() repository.GamePlayRepository {
	return &gamePlayRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            username TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            avatar TEXT NOT NULL DEFAULT '',
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            points BIGINT NOT NULL DEFAULT 0,
            vip_level INT NOT NULL DEFAULT 1,
            exp BIGINT NOT NULL DEFAULT 0,
            max_exp BIGINT NOT NULL DEFAULT 1000,
            gift_points BIGINT NOT NULL DEFAULT 0,
            completed_tasks BIGINT NOT NULL DEFAULT 0,
            day_streak INT NOT NULL DEFAULT 0,
            last_claim TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS balances (
            user_id TEXT PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
            ton DOUBLE PRECISION NOT NULL DEFAULT 0,
            cati DOUBLE PRECISION NOT NULL DEFAULT 0,
            usdt DOUBLE PRECISION NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawal_requests (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            username TEXT NOT NULL DEFAULT '',
            currency TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            wallet_address TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            request_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            processed_date TIMESTAMPTZ,
            processed_by TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS game_plays (
            user_id TEXT NOT NULL,
            action_id TEXT NOT NULL,
            play_date DATE NOT NULL,
            plays_count INT NOT NULL DEFAULT 0,
            PRIMARY KEY (user_id, action_id, play_date)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_date ON withdrawal_requests(request_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_users_points ON users(points DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const userSelect = `SELECT u.user_id, u.username, u.email, u.avatar, u.is_admin,
               u.points, u.vip_level, u.exp, u.max_exp, u.gift_points,
               u.completed_tasks, u.day_streak, u.last_claim, u.created_at,
               COALESCE(b.ton, 0), COALESCE(b.cati, 0), COALESCE(b.usdt, 0)
        FROM users u
        LEFT JOIN balances b ON u.user_id = b.user_id`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.Avatar, &u.IsAdmin,
		&u.Points, &u.VIPLevel, &u.Exp, &u.MaxExp, &u.GiftPoints,
		&u.CompletedTasks, &u.DayStreak, &u.LastClaim, &u.CreatedAt,
		&u.Balance.TON, &u.Balance.CATI, &u.Balance.USDT)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// balanceColumn maps a validated currency to its column. The switch is the
// whitelist that keeps currency codes out of SQL string building.
func balanceColumn(c model.Currency) (string, error) {
	switch c {
	case model.CurrencyTON:
		return "ton", nil
	case model.CurrencyCATI:
		return "cati", nil
	case model.CurrencyUSDT:
		return "usdt", nil
	}
	return "", domainErrors.ErrInvalidCurrency
}

// --- UserRepository implementation ---

func (r *userRepository) Upsert(ctx context.Context, p model.Profile) (*model.User, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertUser = `INSERT INTO users (user_id, username, email, avatar, is_admin)
                            VALUES ($1, $2, $3, $4, $5)
                            ON CONFLICT (user_id) DO UPDATE
                            SET username = EXCLUDED.username,
                                email = EXCLUDED.email,
                                avatar = EXCLUDED.avatar`
		if _, err := tx.Exec(ctx, insertUser, p.UserID, p.Username, p.Email, p.Avatar, p.IsAdmin); err != nil {
			return err
		}

		const insertBalance = `INSERT INTO balances (user_id) VALUES ($1)
                               ON CONFLICT (user_id) DO NOTHING`
		if _, err := tx.Exec(ctx, insertBalance, p.UserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, p.UserID)
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, userSelect+` WHERE u.user_id=$1`, userID))
}

var patchColumns = []struct {
	column string
	value  func(p model.UserPatch) any
}{
	{"username", func(p model.UserPatch) any { return p.Username }},
	{"email", func(p model.UserPatch) any { return p.Email }},
	{"avatar", func(p model.UserPatch) any { return p.Avatar }},
	{"points", func(p model.UserPatch) any { return p.Points }},
	{"vip_level", func(p model.UserPatch) any { return p.VIPLevel }},
	{"exp", func(p model.UserPatch) any { return p.Exp }},
	{"max_exp", func(p model.UserPatch) any { return p.MaxExp }},
	{"gift_points", func(p model.UserPatch) any { return p.GiftPoints }},
	{"completed_tasks", func(p model.UserPatch) any { return p.CompletedTasks }},
	{"day_streak", func(p model.UserPatch) any { return p.DayStreak }},
	{"last_claim", func(p model.UserPatch) any { return p.LastClaim }},
}

func isNilPointer(v any) bool {
	switch x := v.(type) {
	case *string:
		return x == nil
	case *int:
		return x == nil
	case *int64:
		return x == nil
	case *float64:
		return x == nil
	case *time.Time:
		return x == nil
	}
	return v == nil
}

// ApplyPatch updates exactly the columns the patch names, leaving siblings
// untouched, then returns the merged aggregate.
func (r *userRepository) ApplyPatch(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		setClauses := make([]string, 0, len(patchColumns))
		args := []any{userID}
		argIndex := 2
		for _, pc := range patchColumns {
			v := pc.value(patch)
			if isNilPointer(v) {
				continue
			}
			setClauses = append(setClauses, pc.column+" = $"+strconv.Itoa(argIndex))
			args = append(args, v)
			argIndex++
		}

		if len(setClauses) > 0 {
			query := `UPDATE users SET ` + strings.Join(setClauses, ", ") + ` WHERE user_id = $1`
			tag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrNotFound
			}
		}

		if patch.Balance != nil {
			for _, c := range model.Currencies() {
				var amount *float64
				switch c {
				case model.CurrencyTON:
					amount = patch.Balance.TON
				case model.CurrencyCATI:
					amount = patch.Balance.CATI
				case model.CurrencyUSDT:
					amount = patch.Balance.USDT
				}
				if amount == nil {
					continue
				}
				column, err := balanceColumn(c)
				if err != nil {
					return err
				}
				query := `UPDATE balances SET ` + column + ` = GREATEST($2, 0) WHERE user_id = $1`
				if _, err := tx.Exec(ctx, query, userID, *amount); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, userID)
}

func (r *userRepository) AddPoints(ctx context.Context, userID string, delta int64) (*model.User, error) {
	const query = `UPDATE users SET points = GREATEST(points + $2, 0) WHERE user_id = $1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, delta)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, userID)
}

func (r *userRepository) SetBalance(ctx context.Context, userID string, currency model.Currency, amount float64) error {
	column, err := balanceColumn(currency)
	if err != nil {
		return err
	}
	query := `UPDATE balances SET ` + column + ` = $2 WHERE user_id = $1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.storage.pool.Query(ctx, userSelect+` ORDER BY u.user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Leaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]model.LeaderboardEntry, error) {
	var orderBy string
	switch metric {
	case model.LeaderboardPoints:
		orderBy = "u.points DESC"
	case model.LeaderboardEarnings:
		orderBy = "COALESCE(b.ton, 0) DESC"
	case model.LeaderboardStreak:
		orderBy = "u.day_streak DESC"
	default:
		return nil, domainErrors.ErrInvalidStatus
	}
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT u.user_id, u.username, u.avatar, u.points, u.vip_level,
                     u.day_streak, COALESCE(b.ton, 0)
              FROM users u
              LEFT JOIN balances b ON u.user_id = b.user_id
              WHERE u.is_admin = FALSE
              ORDER BY ` + orderBy + `, u.user_id ASC
              LIMIT $1`

	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Avatar, &e.Points, &e.VIPLevel, &e.DayStreak, &e.TON); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM game_plays WHERE user_id = $1`, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// --- WithdrawalRepository implementation ---

const withdrawalSelect = `SELECT id, user_id, username, currency, amount, wallet_address,
                                 status, request_date, processed_date, processed_by
                          FROM withdrawal_requests`

func scanWithdrawal(row pgx.Row) (*model.WithdrawalRequest, error) {
	var w model.WithdrawalRequest
	err := row.Scan(&w.ID, &w.UserID, &w.Username, &w.Currency, &w.Amount,
		&w.WalletAddress, &w.Status, &w.RequestDate, &w.ProcessedDate, &w.ProcessedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) Create(ctx context.Context, req *model.WithdrawalRequest) error {
	const query = `INSERT INTO withdrawal_requests
                   (id, user_id, username, currency, amount, wallet_address, status, request_date)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.pool.Exec(ctx, query, req.ID, req.UserID, req.Username,
		req.Currency, req.Amount, req.WalletAddress, req.Status, req.RequestDate)
	return err
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*model.WithdrawalRequest, error) {
	return scanWithdrawal(r.storage.pool.QueryRow(ctx, withdrawalSelect+` WHERE id=$1`, id))
}

func (r *withdrawalRepository) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.storage.pool.Query(ctx,
			withdrawalSelect+` WHERE status=$1 ORDER BY request_date DESC, id ASC`, *status)
	} else {
		rows, err = r.storage.pool.Query(ctx,
			withdrawalSelect+` ORDER BY request_date DESC, id ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) Approve(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	var approved *model.WithdrawalRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		w, err := scanWithdrawal(tx.QueryRow(ctx, withdrawalSelect+` WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if w.Status.Terminal() {
			return domainErrors.ErrAlreadyProcessed
		}

		column, err := balanceColumn(w.Currency)
		if err != nil {
			return err
		}

		// Balance is re-checked here, not just at request time: it may have
		// shrunk since the request was filed.
		var current float64
		balanceQuery := `SELECT ` + column + ` FROM balances WHERE user_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, balanceQuery, w.UserID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInsufficientBalance
			}
			return err
		}
		if current < w.Amount {
			return domainErrors.ErrInsufficientBalance
		}

		deductQuery := `UPDATE balances SET ` + column + ` = ` + column + ` - $2 WHERE user_id = $1`
		if _, err := tx.Exec(ctx, deductQuery, w.UserID, w.Amount); err != nil {
			return err
		}

		const updateStatus = `UPDATE withdrawal_requests
                              SET status=$2, processed_date=$3, processed_by=$4
                              WHERE id=$1`
		if _, err := tx.Exec(ctx, updateStatus, id, model.WithdrawalStatusApproved, processedAt, processedBy); err != nil {
			return err
		}

		w.Status = model.WithdrawalStatusApproved
		w.ProcessedDate = &processedAt
		w.ProcessedBy = processedBy
		approved = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

func (r *withdrawalRepository) Reject(ctx context.Context, id, processedBy string, processedAt time.Time) (*model.WithdrawalRequest, error) {
	var rejected *model.WithdrawalRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		w, err := scanWithdrawal(tx.QueryRow(ctx, withdrawalSelect+` WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if w.Status.Terminal() {
			return domainErrors.ErrAlreadyProcessed
		}

		const updateStatus = `UPDATE withdrawal_requests
                              SET status=$2, processed_date=$3, processed_by=$4
                              WHERE id=$1`
		if _, err := tx.Exec(ctx, updateStatus, id, model.WithdrawalStatusRejected, processedAt, processedBy); err != nil {
			return err
		}

		w.Status = model.WithdrawalStatusRejected
		w.ProcessedDate = &processedAt
		w.ProcessedBy = processedBy
		rejected = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// --- GamePlayRepository implementation ---

func (r *gamePlayRepository) Record(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	const query = `INSERT INTO game_plays (user_id, action_id, play_date, plays_count)
                   VALUES ($1, $2, $3, 1)
                   ON CONFLICT (user_id, action_id, play_date)
                   DO UPDATE SET plays_count = game_plays.plays_count + 1
                   RETURNING plays_count`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, userID, actionID, model.Day(day)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gamePlayRepository) Get(ctx context.Context, userID, actionID string, day time.Time) (int, error) {
	const query = `SELECT plays_count FROM game_plays
                   WHERE user_id=$1 AND action_id=$2 AND play_date=$3`
	var count int
	err := r.storage.pool.QueryRow(ctx, query, userID, actionID, model.Day(day)).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
