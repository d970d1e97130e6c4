package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotStarted      = errors.New("challenge not started")
	ErrInvalidTask     = errors.New("invalid task")
	ErrInvalidLength   = errors.New("invalid challenge length")
	ErrInvalidCallback = errors.New("invalid callback data")
)

// Callback data prefixes used by inline buttons.
const (
	ChallengePrefix = "challenge:"
	TogglePrefix    = "toggle:"
)

// ParseTask maps a wire name ("sport", "study", "work") to a Task.
func ParseTask(s string) (Task, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, t := range Tasks {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTask, s)
}

// ParseChallengeLength parses a positive number of days, e.g. "21".
func ParseChallengeLength(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !isAllDigits(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return days, nil
}

// ParseChallengeCallback extracts the length from "challenge:<days>".
func ParseChallengeCallback(data string) (int, error) {
	val, ok := strings.CutPrefix(data, ChallengePrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}
	return ParseChallengeLength(val)
}

// ParseToggleCallback extracts the task from "toggle:<task>".
func ParseToggleCallback(data string) (Task, error) {
	val, ok := strings.CutPrefix(data, TogglePrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}
	return ParseTask(val)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ValidateTZ checks that the tz is a valid IANA location.
func ValidateTZ(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return loc, nil
}
