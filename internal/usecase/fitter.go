package usecase

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/gearplan/internal/entity"
)

// Fitter retries the allocator with a shrinking backlog until the plan fits
// the calendar or every module has been removed.
type Fitter struct {
	allocator *Allocator
	logger    *logrus.Logger
}

// NewFitter wires the capacity fitter around an allocator.
func NewFitter(allocator *Allocator, logger *logrus.Logger) *Fitter {
	if logger == nil {
		logger = logrus.New()
	}
	return &Fitter{allocator: allocator, logger: logger}
}

// FitResult is the outcome of capacity fitting: the last simulation pass
// plus the cumulative set of removed lessons and modules. Removed stays
// populated even when fitting ultimately failed.
type FitResult struct {
	Fit            bool
	Days           []entity.StudyDay
	RawReviews     []entity.ReviewEvent
	Remaining      []entity.Lesson
	Removed        []entity.Lesson
	RemovedModules []string
}

// Fit runs the allocator on the full backlog and, when it does not
// complete, removes whole modules by ascending weight (ties broken by
// descending aggregate duration, so equally unimportant bulk goes first),
// re-simulating from scratch after each removal. Module durations come from
// the backlog's aggregate costs and are not refreshed between rounds.
func (f *Fitter) Fit(calendar []time.Time, backlog *entity.Backlog) *FitResult {
	run := f.allocator.Run(calendar, backlog.Lessons)
	if run.Complete() {
		return &FitResult{
			Fit:        true,
			Days:       run.Days,
			RawReviews: run.RawReviews,
		}
	}

	costs := backlog.Costs
	candidates := lo.Uniq(lo.Map(backlog.Lessons, func(l entity.Lesson, _ int) string {
		return l.Module
	}))
	sort.SliceStable(candidates, func(i, j int) bool {
		wi, wj := backlog.Weights[candidates[i]], backlog.Weights[candidates[j]]
		if wi != wj {
			return wi < wj
		}
		return costs[candidates[i]] > costs[candidates[j]]
	})

	working := backlog.Lessons
	var removedModules []string
	for _, module := range candidates {
		working = lo.Filter(working, func(l entity.Lesson, _ int) bool {
			return l.Module != module
		})
		removedModules = append(removedModules, module)
		f.logger.WithFields(logrus.Fields{
			"module":  module,
			"weight":  backlog.Weights[module],
			"minutes": costs[module],
		}).Info("backlog over capacity, removing module")

		run = f.allocator.Run(calendar, working)
		if run.Complete() {
			break
		}
	}

	removedSet := lo.SliceToMap(removedModules, func(m string) (string, bool) {
		return m, true
	})
	removed := lo.Filter(backlog.Lessons, func(l entity.Lesson, _ int) bool {
		return removedSet[l.Module]
	})

	return &FitResult{
		Fit:            run.Complete(),
		Days:           run.Days,
		RawReviews:     run.RawReviews,
		Remaining:      run.Remaining,
		Removed:        removed,
		RemovedModules: removedModules,
	}
}
