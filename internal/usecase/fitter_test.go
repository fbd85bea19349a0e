package usecase

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/gearplan/internal/entity"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func backlogOf(lessons ...entity.Lesson) *entity.Backlog {
	weights := map[string]int{}
	costs := map[string]int{}
	for _, l := range lessons {
		weights[l.Module] = l.Weight
		costs[l.Module] += l.Duration
	}
	return &entity.Backlog{Lessons: lessons, Weights: weights, Costs: costs}
}

func TestFitter_FullBacklogFits(t *testing.T) {
	backlog := backlogOf(
		lesson("A1", "A", 50),
		lesson("B1", "B", 60),
	)
	fitter := NewFitter(NewAllocator(100, defaultOffsets), quietLogger())

	result := fitter.Fit(dailyCalendar(2), backlog)
	if !result.Fit {
		t.Fatal("expected fit")
	}
	if len(result.Removed) != 0 || len(result.RemovedModules) != 0 {
		t.Fatalf("expected no removals, got %+v", result.RemovedModules)
	}
}

func TestFitter_RemovesLowestWeightLargestCostFirst(t *testing.T) {
	anatomy := entity.Lesson{Name: "Ana 01", Module: "Anatomia", Duration: 50, Weight: 1, ModuleCost: 100}
	anatomy2 := entity.Lesson{Name: "Ana 02", Module: "Anatomia", Duration: 50, Weight: 1, ModuleCost: 100}
	histo := entity.Lesson{Name: "His 01", Module: "Histologia", Duration: 30, Weight: 1, ModuleCost: 30}
	cardio := entity.Lesson{Name: "Car 01", Module: "Cardio", Duration: 80, Weight: 5, ModuleCost: 80}

	// Sheet order keeps Cardio first; only it fits one 100-minute day.
	backlog := backlogOf(cardio, anatomy, anatomy2, histo)
	fitter := NewFitter(NewAllocator(100, defaultOffsets), quietLogger())

	result := fitter.Fit(dailyCalendar(1), backlog)
	if !result.Fit {
		t.Fatal("expected fit after removals")
	}
	// Anatomia and Histologia tie on weight 1; Anatomia's 100 minutes go
	// first, and dropping it alone is not enough.
	if len(result.RemovedModules) != 2 {
		t.Fatalf("expected 2 removed modules, got %v", result.RemovedModules)
	}
	if result.RemovedModules[0] != "Anatomia" || result.RemovedModules[1] != "Histologia" {
		t.Fatalf("unexpected removal order: %v", result.RemovedModules)
	}
	if len(result.Removed) != 3 {
		t.Fatalf("expected 3 removed lessons, got %d", len(result.Removed))
	}
	for _, l := range result.Removed {
		if l.Module == "Cardio" {
			t.Errorf("surviving module lost lesson %s", l.Name)
		}
	}
}

func TestFitter_KeepsHigherWeightWhenLighterBulkSuffices(t *testing.T) {
	heavy := entity.Lesson{Name: "Heavy", Module: "Heavy", Duration: 80, Weight: 9, ModuleCost: 80}
	light := entity.Lesson{Name: "Light", Module: "Light", Duration: 80, Weight: 1, ModuleCost: 80}

	backlog := backlogOf(heavy, light)
	fitter := NewFitter(NewAllocator(100, defaultOffsets), quietLogger())

	result := fitter.Fit(dailyCalendar(1), backlog)
	if !result.Fit {
		t.Fatal("expected fit after removing the light module")
	}
	if len(result.RemovedModules) != 1 || result.RemovedModules[0] != "Light" {
		t.Fatalf("expected Light removed, got %v", result.RemovedModules)
	}
}

func TestFitter_TieBreakReadsAggregateCosts(t *testing.T) {
	ana := entity.Lesson{Name: "Ana 01", Module: "Anatomia", Duration: 60, Weight: 1, ModuleCost: 60}
	his := entity.Lesson{Name: "His 01", Module: "Histologia", Duration: 40, Weight: 1, ModuleCost: 40}

	backlog := backlogOf(ana, his)
	// The backlog's aggregate costs, not the queued durations, decide the
	// tie: rank Histologia as the bulkier module.
	backlog.Costs = map[string]int{"Anatomia": 60, "Histologia": 200}
	fitter := NewFitter(NewAllocator(100, defaultOffsets), quietLogger())

	result := fitter.Fit(dailyCalendar(1), backlog)
	if !result.Fit {
		t.Fatal("expected fit after one removal")
	}
	if len(result.RemovedModules) != 1 || result.RemovedModules[0] != "Histologia" {
		t.Fatalf("expected Histologia removed first, got %v", result.RemovedModules)
	}
}

func TestFitter_ReportsCumulativeRemovalsOnExhaustion(t *testing.T) {
	// A single module that never fits: removing it empties the backlog,
	// which trivially completes, with everything reported removed.
	backlog := backlogOf(
		lesson("X1", "X", 900),
		lesson("X2", "X", 900),
	)
	fitter := NewFitter(NewAllocator(60, defaultOffsets), quietLogger())

	result := fitter.Fit(dailyCalendar(1), backlog)
	if !result.Fit {
		t.Fatal("an empty backlog always fits")
	}
	if len(result.Removed) != 2 {
		t.Fatalf("expected both lessons reported removed, got %d", len(result.Removed))
	}
}
