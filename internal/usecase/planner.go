package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/gearplan/internal/entity"
	"github.com/eslsoft/gearplan/internal/repository"
)

// PlanParams carries everything one plan run needs beyond the catalog.
type PlanParams struct {
	ExamType      string
	Start         time.Time
	End           time.Time
	MinutesPerDay int
	DaysPerWeek   int
	Weekdays      []time.Weekday
	ReviewOffsets []int
}

// Validate applies the configuration-error taxonomy: the engine itself
// assumes positive, ordered inputs.
func (p PlanParams) Validate() error {
	if p.MinutesPerDay <= 0 {
		return entity.ErrNonPositiveBudget
	}
	if p.DaysPerWeek <= 0 && len(p.Weekdays) == 0 {
		return entity.ErrNonPositiveDays
	}
	if entity.DayOf(p.End).Before(entity.DayOf(p.Start)) {
		return entity.ErrEndBeforeStart
	}
	for _, wd := range p.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return entity.ErrInvalidWeekday
		}
	}
	for _, off := range p.ReviewOffsets {
		if off <= 0 {
			return entity.ErrNoReviewOffsets
		}
	}
	return nil
}

// Planner composes the whole pipeline: calendar generation, backlog
// construction, capacity fitting and review remapping.
type Planner interface {
	BuildPlan(ctx context.Context, params PlanParams) (*entity.Plan, error)
}

// NewPlanner wires the planner. history may be nil, in which case runs are
// not recorded.
func NewPlanner(catalog repository.CatalogRepository, history repository.PlanRepository, logger *logrus.Logger) Planner {
	if logger == nil {
		logger = logrus.New()
	}
	return &planner{catalog: catalog, history: history, logger: logger, clock: time.Now}
}

type planner struct {
	catalog repository.CatalogRepository
	history repository.PlanRepository
	logger  *logrus.Logger
	clock   func() time.Time
}

func (p *planner) BuildPlan(ctx context.Context, params PlanParams) (*entity.Plan, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	modules, err := p.catalog.LoadModules(ctx)
	if err != nil {
		return nil, err
	}
	lessons, err := p.catalog.LoadLessons(ctx)
	if err != nil {
		return nil, err
	}

	backlog, err := BuildBacklog(modules, lessons, params.ExamType)
	if err != nil {
		return nil, err
	}
	if len(backlog.Lessons) == 0 {
		return nil, entity.ErrEmptyBacklog
	}

	perWeek := params.DaysPerWeek
	if perWeek <= 0 {
		perWeek = len(params.Weekdays)
	}
	calendar := StudyDays(params.Start, params.End, perWeek, params.Weekdays)
	if len(calendar) == 0 {
		return nil, entity.ErrEmptyCalendar
	}

	p.logger.WithFields(logrus.Fields{
		"exam_type":  params.ExamType,
		"study_days": len(calendar),
		"lessons":    len(backlog.Lessons),
		"minutes":    backlog.TotalMinutes(),
	}).Info("building study plan")

	allocator := NewAllocator(params.MinutesPerDay, params.ReviewOffsets)
	fit := NewFitter(allocator, p.logger).Fit(calendar, backlog)

	plan := &entity.Plan{
		ExamType: params.ExamType,
		Days:     fit.Days,
		Reviews:  RemapReviews(fit.RawReviews, calendar),
		Removed:  fit.Removed,
		Complete: fit.Fit && len(fit.Removed) == 0,
	}
	plan.Summary = summarize(plan, calendar)

	if p.history != nil {
		run := &entity.PlanRun{
			ExamType:      params.ExamType,
			Start:         entity.DayOf(params.Start),
			End:           entity.DayOf(params.End),
			MinutesPerDay: params.MinutesPerDay,
			DaysPerWeek:   perWeek,
			Complete:      plan.Complete,
			Summary:       plan.Summary,
			CreatedAt:     p.clock(),
		}
		if _, err := p.history.Save(ctx, run); err != nil {
			p.logger.WithError(err).Warn("recording plan run failed")
		}
	}
	return plan, nil
}

func summarize(plan *entity.Plan, calendar []time.Time) entity.PlanSummary {
	summary := entity.PlanSummary{
		StudyDays:      len(calendar),
		TotalWeeks:     TotalWeeks(calendar),
		RemovedLessons: len(plan.Removed),
	}
	for _, day := range plan.Days {
		summary.TotalLessonMinutes += day.LessonMinutes()
		summary.TotalQRMinutes += day.QMinutes + day.RMinutes
	}
	return summary
}
