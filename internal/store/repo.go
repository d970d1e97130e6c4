package store

import (
	"context"
	"errors"
	"time"

	"github.com/ykvlv/challenge-bot/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repo defines storage operations for users and their daily progress.
type Repo interface {
	// InsertUserIfAbsent creates the user row; an existing row is left untouched.
	InsertUserIfAbsent(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	// ResetChallenge sets the challenge length, rewinds current_day to 1 and stamps start.
	ResetChallenge(ctx context.Context, userID int64, days int, start time.Time) error

	GetDay(ctx context.Context, userID int64, date string) (*domain.DayRecord, error)
	PutDay(ctx context.Context, d *domain.DayRecord) error
	// UpdateDay reads the record for (userID, date), all-false when absent,
	// applies fn and writes it back inside one transaction.
	UpdateDay(ctx context.Context, userID int64, date string, fn func(*domain.DayRecord) error) (domain.DayRecord, error)
	ListDays(ctx context.Context, userID int64) ([]domain.DayRecord, error)

	Close() error
}
