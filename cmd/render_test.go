package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/eslsoft/gearplan/internal/entity"
)

func orderedIndexes(t *testing.T, out string, needles ...string) []int {
	t.Helper()
	indexes := make([]int, len(needles))
	for i, n := range needles {
		idx := strings.Index(out, n)
		if idx < 0 {
			t.Fatalf("%q missing from output:\n%s", n, out)
		}
		indexes[i] = idx
	}
	return indexes
}

func TestRenderReviews_HeaviestModulesFirst(t *testing.T) {
	date := entity.Date(2026, time.June, 10)
	watched := entity.Date(2026, time.June, 3)
	due := []entity.ReviewEvent{
		{Lesson: entity.Lesson{Name: "Nefro 01", Module: "Nefrologia"}, Weight: 3, WatchedOn: watched, Target: date},
		{Lesson: entity.Lesson{Name: "Cardio 02", Module: "Cardiologia"}, Weight: 9, WatchedOn: watched, Target: date},
		{Lesson: entity.Lesson{Name: "Cardio 01", Module: "Cardiologia"}, Weight: 9, WatchedOn: watched, Target: date},
	}

	var buf bytes.Buffer
	renderReviews(&buf, due, date)
	out := buf.String()

	idx := orderedIndexes(t, out, "Cardio 01", "Cardio 02", "Nefro 01")
	if !(idx[0] < idx[1] && idx[1] < idx[2]) {
		t.Fatalf("expected weight-descending review order, got:\n%s", out)
	}
	// The remapped slice stays in arrival order.
	if due[0].Lesson.Name != "Nefro 01" {
		t.Fatalf("input slice reordered: %v", due)
	}
}

func TestRenderRemoved_GroupsByModule(t *testing.T) {
	color.NoColor = true
	removed := []entity.Lesson{
		{Name: "Nefro 01", Module: "Nefrologia", Duration: 40},
		{Name: "Ana 01", Module: "Anatomia", Duration: 50},
		{Name: "Nefro 02", Module: "Nefrologia", Duration: 35},
	}

	var buf bytes.Buffer
	renderRemoved(&buf, removed)
	out := buf.String()

	if strings.Count(out, "Nefrologia") != 1 {
		t.Fatalf("expected one Nefrologia group header, got:\n%s", out)
	}
	idx := orderedIndexes(t, out, "Anatomia", "Ana 01", "Nefrologia", "Nefro 01", "Nefro 02")
	for i := 1; i < len(idx); i++ {
		if idx[i-1] >= idx[i] {
			t.Fatalf("expected alphabetical module groups with their lessons, got:\n%s", out)
		}
	}
}
