package entity

// Module groups lessons under a single subject. Weight comes from the exam
// type selected for the run; a weight of zero keeps the whole module out of
// the backlog. Cost is the sum of the module's lesson durations in minutes.
type Module struct {
	Name   string
	Weight int
	Cost   int
}

// ModuleWeights is a module row as loaded from the module sheet: one weight
// per exam type, keyed by the exam type column name.
type ModuleWeights struct {
	Name    string
	Weights map[string]int
}

// WeightFor returns the module's weight for the given exam type, zero when
// the column is absent.
func (m ModuleWeights) WeightFor(examType string) int {
	return m.Weights[examType]
}

// LessonSource is a lesson row as loaded from the lesson sheet, before exam
// type filtering. Row order in the sheet is the allocation order.
type LessonSource struct {
	Name     string
	Module   string
	Duration int
}

// Lesson is a single backlog entry: one lecture to watch, annotated with its
// module's weight and aggregate cost at build time. Immutable once built.
type Lesson struct {
	Name       string
	Module     string
	Duration   int
	Weight     int
	ModuleCost int
}

// Backlog is the ordered lesson queue for one plan run, plus the per-module
// maps the capacity fitter needs. Lessons keep their sheet order; the engine
// never reorders them.
type Backlog struct {
	Lessons []Lesson
	Weights map[string]int
	Costs   map[string]int

	// Ranked lists the surviving modules by weight descending, cost
	// ascending. Report material only; allocation order ignores it.
	Ranked []Module
}

// TotalMinutes sums the duration of every lesson still in the backlog.
func (b *Backlog) TotalMinutes() int {
	total := 0
	for _, l := range b.Lessons {
		total += l.Duration
	}
	return total
}
