package domain

// Stats aggregates every DayRecord of a user.
type Stats struct {
	TotalDays   int
	TotalTasks  int
	PerfectDays int
}

// ComputeStats folds day records into Stats. The second result is false
// when there is nothing to report.
func ComputeStats(days []DayRecord) (Stats, bool) {
	var s Stats
	for _, d := range days {
		s.TotalDays++
		s.TotalTasks += d.Done()
		if d.AllComplete() {
			s.PerfectDays++
		}
	}
	return s, s.TotalDays > 0
}

// AverageTasksPerDay is TotalTasks / TotalDays, or 0 without days.
func (s Stats) AverageTasksPerDay() float64 {
	if s.TotalDays == 0 {
		return 0
	}
	return float64(s.TotalTasks) / float64(s.TotalDays)
}

// SuccessRate is the share of perfect days in percent, or 0 without days.
func (s Stats) SuccessRate() float64 {
	if s.TotalDays == 0 {
		return 0
	}
	return float64(s.PerfectDays) / float64(s.TotalDays) * 100
}
