package store

import (
	"database/sql"
	"time"

	"github.com/ykvlv/challenge-bot/internal/domain"
)

// userRow mirrors the users table.
type userRow struct {
	UserID        int64         `db:"user_id"`
	Username      string        `db:"username"`
	DisplayName   string        `db:"display_name"`
	ChallengeDays int           `db:"challenge_days"`
	CurrentDay    int           `db:"current_day"`
	StartDate     sql.NullInt64 `db:"start_date"`
	CreatedAt     int64         `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:            r.UserID,
		Username:      r.Username,
		DisplayName:   r.DisplayName,
		ChallengeDays: r.ChallengeDays,
		CurrentDay:    r.CurrentDay,
		StartDate:     fromNullInt64(r.StartDate),
		CreatedAt:     time.Unix(r.CreatedAt, 0).UTC(),
	}
}

// dayRow mirrors the progress table.
type dayRow struct {
	UserID int64  `db:"user_id"`
	Date   string `db:"date"`
	Sport  bool   `db:"sport"`
	Study  bool   `db:"study"`
	Work   bool   `db:"work"`
}

func (r dayRow) toDomain() domain.DayRecord {
	return domain.DayRecord{
		UserID: r.UserID,
		Date:   r.Date,
		Sport:  r.Sport,
		Study:  r.Study,
		Work:   r.Work,
	}
}

func toNullInt64(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UTC().Unix(), Valid: true}
}

func fromNullInt64(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := time.Unix(ns.Int64, 0).UTC()
	return &t
}

// boolToInt converts a boolean to 1/0 for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
