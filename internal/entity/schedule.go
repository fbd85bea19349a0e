package entity

import "time"

// DayOf truncates a timestamp to its calendar date in UTC. Every date the
// engine touches goes through this so dates compare and hash consistently.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StudyDay is one day of the generated schedule: the lessons assigned to it
// in order, plus the minute totals left for practice questions (Q) and
// spaced review (R) after allocation.
type StudyDay struct {
	Date     time.Time
	Phase    Phase
	Lessons  []Lesson
	QMinutes int
	RMinutes int
}

// LessonMinutes sums the durations of the day's assigned lessons.
func (d StudyDay) LessonMinutes() int {
	total := 0
	for _, l := range d.Lessons {
		total += l.Duration
	}
	return total
}

// ReviewEvent schedules one spaced-repetition pass over a watched lesson.
// Target is the raw date (watch date + offset) before remapping onto the
// study-day calendar.
type ReviewEvent struct {
	Lesson    Lesson
	WatchedOn time.Time
	Weight    int
	Target    time.Time
}

// DaysSinceWatch reports the review lag in whole days relative to the day
// the review actually lands on.
func (e ReviewEvent) DaysSinceWatch(on time.Time) int {
	return int(DayOf(on).Sub(DayOf(e.WatchedOn)).Hours() / 24)
}

// Plan is the full engine output for one run.
type Plan struct {
	ExamType string

	// Days holds the per-day allocation in calendar order.
	Days []StudyDay

	// Reviews maps a study day to the review events due on it, keyed by
	// normalized date. Iterate through Days for chronological order.
	Reviews map[time.Time][]ReviewEvent

	// Removed lists every lesson dropped by capacity fitting, in backlog
	// order. Empty when the full backlog fit.
	Removed []Lesson

	// Complete is true when the backlog fit the calendar without any
	// module removals.
	Complete bool

	Summary PlanSummary
}

// PlanSummary carries the aggregate totals the cover page and the run
// history record.
type PlanSummary struct {
	StudyDays          int
	TotalWeeks         int
	TotalLessonMinutes int
	TotalQRMinutes     int
	RemovedLessons     int
}

// PlanRun is one recorded plan generation, persisted for the history
// listing.
type PlanRun struct {
	ID            int64
	ExamType      string
	Start         time.Time
	End           time.Time
	MinutesPerDay int
	DaysPerWeek   int
	Complete      bool
	Summary       PlanSummary
	CreatedAt     time.Time
}
