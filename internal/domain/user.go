package domain

import "time"

// DefaultChallengeDays is the length assigned to a freshly registered user.
const DefaultChallengeDays = 21

// ChallengeLengths are the durations offered by the chat interface.
// The service itself accepts any positive length.
var ChallengeLengths = []int{7, 21, 30}

// User represents a participant and the parameters of their current challenge.
type User struct {
	ID            int64
	Username      string
	DisplayName   string
	ChallengeDays int
	CurrentDay    int        // never advanced automatically, reset by a new challenge
	StartDate     *time.Time // UTC, nullable until the first challenge
	CreatedAt     time.Time  // UTC
}

// DayRecord is the completion state of the three tasks for one user on one date.
type DayRecord struct {
	UserID int64
	Date   string // YYYY-MM-DD in the challenge location
	Sport  bool
	Study  bool
	Work   bool
}

// Done returns the number of completed tasks (0..3).
func (d DayRecord) Done() int {
	n := 0
	for _, t := range Tasks {
		if d.Flag(t) {
			n++
		}
	}
	return n
}

// AllComplete reports whether every task of the day is done.
func (d DayRecord) AllComplete() bool {
	return d.Sport && d.Study && d.Work
}

// TodayView joins the user's challenge counters with today's record.
type TodayView struct {
	CurrentDay    int
	ChallengeDays int
	Day           DayRecord
}

// AllComplete drives the congratulatory line.
func (v TodayView) AllComplete() bool { return v.Day.AllComplete() }

// ChallengeSummary is returned after a challenge has been (re)started.
type ChallengeSummary struct {
	Days       int
	CurrentDay int
	StartDate  time.Time
	Today      DayRecord
}
