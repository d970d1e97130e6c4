package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ykvlv/challenge-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sqlx.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// InsertUserIfAbsent inserts a user row unless one with the same id exists.
func (r *SQLiteRepo) InsertUserIfAbsent(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	created := u.CreatedAt.UTC().Unix()
	if u.CreatedAt.IsZero() {
		created = time.Now().UTC().Unix()
	}
	days := u.ChallengeDays
	if days == 0 {
		days = domain.DefaultChallengeDays
	}
	current := u.CurrentDay
	if current == 0 {
		current = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			user_id, username, display_name, challenge_days,
			current_day, start_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		u.ID, u.Username, u.DisplayName, days,
		current, toNullInt64(u.StartDate), created,
	)
	return err
}

// GetUser returns a user by id or ErrNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT user_id, username, display_name, challenge_days,
		       current_day, start_date, created_at
		FROM users
		WHERE user_id = ?`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ResetChallenge updates the challenge parameters of an existing user.
func (r *SQLiteRepo) ResetChallenge(ctx context.Context, userID int64, days int, start time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET challenge_days = ?, current_day = 1, start_date = ?
		WHERE user_id = ?`,
		days, start.UTC().Unix(), userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDay returns the record for (userID, date) or ErrNotFound.
func (r *SQLiteRepo) GetDay(ctx context.Context, userID int64, date string) (*domain.DayRecord, error) {
	d, err := getDay(ctx, r.db, userID, date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// PutDay inserts or overwrites the record for (d.UserID, d.Date).
func (r *SQLiteRepo) PutDay(ctx context.Context, d *domain.DayRecord) error {
	if d == nil {
		return errors.New("nil day record")
	}
	return putDay(ctx, r.db, d)
}

// UpdateDay performs an atomic read-modify-write of one day record.
func (r *SQLiteRepo) UpdateDay(
	ctx context.Context,
	userID int64,
	date string,
	fn func(*domain.DayRecord) error,
) (domain.DayRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.DayRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	d, err := getDay(ctx, tx, userID, date)
	if errors.Is(err, ErrNotFound) {
		d = domain.DayRecord{UserID: userID, Date: date}
	} else if err != nil {
		return domain.DayRecord{}, err
	}

	if err := fn(&d); err != nil {
		return domain.DayRecord{}, err
	}
	if err := putDay(ctx, tx, &d); err != nil {
		return domain.DayRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.DayRecord{}, err
	}
	return d, nil
}

// ListDays returns every record of the user ordered by date.
func (r *SQLiteRepo) ListDays(ctx context.Context, userID int64) ([]domain.DayRecord, error) {
	var rows []dayRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT user_id, date, sport, study, work
		FROM progress
		WHERE user_id = ?
		ORDER BY date ASC`,
		userID,
	); err != nil {
		return nil, err
	}

	res := make([]domain.DayRecord, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

func getDay(ctx context.Context, q sqlx.QueryerContext, userID int64, date string) (domain.DayRecord, error) {
	var row dayRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT user_id, date, sport, study, work
		FROM progress
		WHERE user_id = ? AND date = ?`,
		userID, date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DayRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.DayRecord{}, err
	}
	return row.toDomain(), nil
}

func putDay(ctx context.Context, e sqlx.ExecerContext, d *domain.DayRecord) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO progress (user_id, date, sport, study, work)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			sport = excluded.sport,
			study = excluded.study,
			work  = excluded.work`,
		d.UserID, d.Date, boolToInt(d.Sport), boolToInt(d.Study), boolToInt(d.Work),
	)
	return err
}
