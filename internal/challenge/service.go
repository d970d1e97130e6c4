// Package challenge holds the habit challenge operations invoked by the chat
// transport: registration, starting a challenge, toggling today's tasks,
// reading today's progress and statistics, and picking reminders.
package challenge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ykvlv/challenge-bot/internal/domain"
	"github.com/ykvlv/challenge-bot/internal/metrics"
	"github.com/ykvlv/challenge-bot/internal/store"
)

// Service re-reads state from the repo on every call; it caches nothing.
type Service struct {
	repo   store.Repo
	log    *zap.Logger
	clock  domain.Clock
	picker *domain.ReminderPicker
	rec    metrics.Recorder
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock that defines "today".
func WithClock(c domain.Clock) Option { return func(s *Service) { s.clock = c } }

// WithPicker sets the reminder picker.
func WithPicker(p *domain.ReminderPicker) Option { return func(s *Service) { s.picker = p } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Service) { s.rec = r } }

// New creates a Service. Defaults: UTC system clock, time-seeded picker, no metrics.
func New(repo store.Repo, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		log:    log,
		clock:  domain.SystemClock{},
		picker: domain.NewReminderPicker(nil),
		rec:    metrics.NoopRecorder{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RegisterUser creates the user on first contact; repeated calls are no-ops.
func (s *Service) RegisterUser(ctx context.Context, userID int64, username, displayName string) error {
	u := &domain.User{
		ID:            userID,
		Username:      username,
		DisplayName:   displayName,
		ChallengeDays: domain.DefaultChallengeDays,
		CurrentDay:    1,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.repo.InsertUserIfAbsent(ctx, u); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

// StartChallenge (re)starts a challenge of the given length: the day counter
// goes back to 1 and today's record is reset to all-false.
func (s *Service) StartChallenge(ctx context.Context, userID int64, days int) (domain.ChallengeSummary, error) {
	if days <= 0 {
		return domain.ChallengeSummary{}, fmt.Errorf("%w: %d", domain.ErrInvalidLength, days)
	}

	// A button press may arrive from a chat that never sent /start.
	if err := s.RegisterUser(ctx, userID, "", ""); err != nil {
		return domain.ChallengeSummary{}, err
	}

	now := s.clock.Now().UTC()
	if err := s.repo.ResetChallenge(ctx, userID, days, now); err != nil {
		return domain.ChallengeSummary{}, fmt.Errorf("reset challenge: %w", err)
	}

	today := domain.DayRecord{UserID: userID, Date: domain.Today(s.clock)}
	if err := s.repo.PutDay(ctx, &today); err != nil {
		return domain.ChallengeSummary{}, fmt.Errorf("reset today: %w", err)
	}

	s.rec.IncChallengeStarted(days)
	s.log.Info("challenge started",
		zap.Int64("user_id", userID),
		zap.Int("days", days),
		zap.String("date", today.Date),
	)

	return domain.ChallengeSummary{
		Days:       days,
		CurrentDay: 1,
		StartDate:  now,
		Today:      today,
	}, nil
}

// ToggleTask flips one task of today's record and returns the full view.
func (s *Service) ToggleTask(ctx context.Context, userID int64, task domain.Task) (domain.TodayView, error) {
	if !task.Valid() {
		return domain.TodayView{}, fmt.Errorf("%w: %d", domain.ErrInvalidTask, task)
	}

	u, err := s.user(ctx, userID)
	if err != nil {
		return domain.TodayView{}, err
	}

	var done bool
	day, err := s.repo.UpdateDay(ctx, userID, domain.Today(s.clock), func(d *domain.DayRecord) error {
		v, terr := d.Toggle(task)
		done = v
		return terr
	})
	if err != nil {
		return domain.TodayView{}, fmt.Errorf("toggle %s: %w", task, err)
	}

	s.rec.IncTaskToggle(task.String(), done)
	s.log.Debug("task toggled",
		zap.Int64("user_id", userID),
		zap.Stringer("task", task),
		zap.Bool("done", done),
	)

	return domain.TodayView{
		CurrentDay:    u.CurrentDay,
		ChallengeDays: u.ChallengeDays,
		Day:           day,
	}, nil
}

// GetToday returns today's progress. A missing record reads as all-false;
// ErrNotStarted is returned only when the user does not exist.
func (s *Service) GetToday(ctx context.Context, userID int64) (domain.TodayView, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return domain.TodayView{}, err
	}

	date := domain.Today(s.clock)
	day := domain.DayRecord{UserID: userID, Date: date}
	d, err := s.repo.GetDay(ctx, userID, date)
	switch {
	case err == nil:
		day = *d
	case !errors.Is(err, store.ErrNotFound):
		return domain.TodayView{}, fmt.Errorf("get today: %w", err)
	}

	return domain.TodayView{
		CurrentDay:    u.CurrentDay,
		ChallengeDays: u.ChallengeDays,
		Day:           day,
	}, nil
}

// GetStats aggregates every recorded day. ok is false when there are none.
func (s *Service) GetStats(ctx context.Context, userID int64) (stats domain.Stats, ok bool, err error) {
	days, err := s.repo.ListDays(ctx, userID)
	if err != nil {
		return domain.Stats{}, false, fmt.Errorf("list days: %w", err)
	}
	stats, ok = domain.ComputeStats(days)
	return stats, ok, nil
}

// PickReminder returns a random motivational phrase.
func (s *Service) PickReminder() domain.Reminder {
	r := s.picker.Pick()
	s.rec.IncReminder(string(r.Category))
	return r
}

func (s *Service) user(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotStarted
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
