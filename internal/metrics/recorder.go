package metrics

// Recorder receives bot activity counters. Implementations may forward to
// Prometheus; NoopRecorder is used when metrics are not wired.
type Recorder interface {
	IncUpdate(kind string)
	IncChallengeStarted(days int)
	IncTaskToggle(task string, done bool)
	IncReminder(category string)
	IncError(op string)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncUpdate(string)           {}
func (NoopRecorder) IncChallengeStarted(int)    {}
func (NoopRecorder) IncTaskToggle(string, bool) {}
func (NoopRecorder) IncReminder(string)         {}
func (NoopRecorder) IncError(string)            {}
