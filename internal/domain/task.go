package domain

// Task identifies one of the three daily tasks.
type Task int

const (
	TaskSport Task = iota + 1
	TaskStudy
	TaskWork
)

// Tasks lists every task in display order.
var Tasks = []Task{TaskSport, TaskStudy, TaskWork}

// taskFields maps a task to accessors of its flag in a DayRecord.
var taskFields = map[Task]struct {
	name string
	get  func(*DayRecord) *bool
}{
	TaskSport: {"sport", func(d *DayRecord) *bool { return &d.Sport }},
	TaskStudy: {"study", func(d *DayRecord) *bool { return &d.Study }},
	TaskWork:  {"work", func(d *DayRecord) *bool { return &d.Work }},
}

// Valid reports whether t is one of the known tasks.
func (t Task) Valid() bool {
	_, ok := taskFields[t]
	return ok
}

// String returns the wire name of the task ("sport", "study", "work").
func (t Task) String() string {
	if f, ok := taskFields[t]; ok {
		return f.name
	}
	return "unknown"
}

// Flag returns the completion flag of task t. Unknown tasks read as false.
func (d DayRecord) Flag(t Task) bool {
	f, ok := taskFields[t]
	if !ok {
		return false
	}
	return *f.get(&d)
}

// Toggle flips exactly the flag of task t and returns the new value.
func (d *DayRecord) Toggle(t Task) (bool, error) {
	f, ok := taskFields[t]
	if !ok {
		return false, ErrInvalidTask
	}
	p := f.get(d)
	*p = !*p
	return *p, nil
}
