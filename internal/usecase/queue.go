package usecase

import (
	"sort"

	"github.com/samber/lo"

	"github.com/eslsoft/gearplan/internal/entity"
)

// BuildBacklog filters the catalog down to the modules that carry a positive
// weight for the selected exam type and returns the lesson queue in sheet
// order, each lesson annotated with its module's weight and aggregate cost.
//
// The ranked module list is a reporting artifact; allocation order is the
// sheet order and nothing else.
func BuildBacklog(modules []entity.ModuleWeights, lessons []entity.LessonSource, examType string) (*entity.Backlog, error) {
	known := lo.SomeBy(modules, func(m entity.ModuleWeights) bool {
		_, ok := m.Weights[examType]
		return ok
	})
	if !known {
		return nil, entity.ErrUnknownExamType
	}

	weights := map[string]int{}
	for _, m := range modules {
		if w := m.WeightFor(examType); w > 0 {
			weights[m.Name] = w
		}
	}

	costs := map[string]int{}
	for _, l := range lessons {
		if _, ok := weights[l.Module]; ok {
			costs[l.Module] += l.Duration
		}
	}

	queue := make([]entity.Lesson, 0, len(lessons))
	for _, l := range lessons {
		w, ok := weights[l.Module]
		if !ok {
			continue
		}
		queue = append(queue, entity.Lesson{
			Name:       l.Name,
			Module:     l.Module,
			Duration:   l.Duration,
			Weight:     w,
			ModuleCost: costs[l.Module],
		})
	}

	ranked := lo.MapToSlice(weights, func(name string, w int) entity.Module {
		return entity.Module{Name: name, Weight: w, Cost: costs[name]}
	})
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		if ranked[i].Cost != ranked[j].Cost {
			return ranked[i].Cost < ranked[j].Cost
		}
		return ranked[i].Name < ranked[j].Name
	})

	return &entity.Backlog{
		Lessons: queue,
		Weights: weights,
		Costs:   costs,
		Ranked:  ranked,
	}, nil
}
