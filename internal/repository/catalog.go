package repository

import (
	"context"

	"github.com/eslsoft/gearplan/internal/entity"
)

// CatalogRepository abstracts the module/lesson source to keep the planner
// storage agnostic. Implementations must preserve lesson row order.
type CatalogRepository interface {
	LoadModules(ctx context.Context) ([]entity.ModuleWeights, error)
	LoadLessons(ctx context.Context) ([]entity.LessonSource, error)
}

// ListPlanRunsQuery holds parameters for listing recorded plan runs.
type ListPlanRunsQuery struct {
	Limit int
}

// PlanRepository persists plan-run history.
type PlanRepository interface {
	Save(ctx context.Context, run *entity.PlanRun) (*entity.PlanRun, error)
	List(ctx context.Context, query *ListPlanRunsQuery) ([]entity.PlanRun, error)
}
