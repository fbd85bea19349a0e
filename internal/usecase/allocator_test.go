package usecase

import (
	"testing"
	"time"

	"github.com/eslsoft/gearplan/internal/entity"
)

var defaultOffsets = []int{1, 3, 7, 14, 30}

func dailyCalendar(n int) []time.Time {
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, entity.Date(2026, time.June, 1+i))
	}
	return days
}

func lesson(name, module string, duration int) entity.Lesson {
	return entity.Lesson{Name: name, Module: module, Duration: duration, Weight: 1, ModuleCost: duration}
}

func TestAllocator_QuotasAcrossPhases(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("M1", "M", 50),
		lesson("M2", "M", 30),
		lesson("N1", "N", 62),
		lesson("N2", "N", 20),
		lesson("N3", "N", 40),
	}
	run := NewAllocator(100, defaultOffsets).Run(dailyCalendar(4), backlog)

	if !run.Complete() {
		t.Fatalf("expected complete run, %d lessons remaining", len(run.Remaining))
	}
	if len(run.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(run.Days))
	}

	type day struct {
		lessons []string
		q, r    int
	}
	want := []day{
		// Day one runs on the 80/20/0 override.
		{[]string{"M1", "M2"}, 20, 0},
		// N1 carries over and lands forced-first; 3 residual A minutes
		// split 70/30 into Q and R.
		{[]string{"N1"}, 17, 21},
		{[]string{"N2", "N3"}, 15, 25},
		// Empty final day: the whole A quota drains into Q and R 30/70.
		{nil, 30, 65},
	}
	for i, w := range want {
		got := run.Days[i]
		if len(got.Lessons) != len(w.lessons) {
			t.Fatalf("day %d: expected %d lessons, got %d", i, len(w.lessons), len(got.Lessons))
		}
		for j, name := range w.lessons {
			if got.Lessons[j].Name != name {
				t.Errorf("day %d lesson %d: expected %s, got %s", i, j, name, got.Lessons[j].Name)
			}
		}
		if got.QMinutes != w.q || got.RMinutes != w.r {
			t.Errorf("day %d: expected Q=%d R=%d, got Q=%d R=%d", i, w.q, w.r, got.QMinutes, got.RMinutes)
		}
	}
}

func TestAllocator_OversizedLessonForcedWithDebt(t *testing.T) {
	// 150% of day one's A quota: even full borrowing leaves 64 minutes of
	// force debt, charged half against each of Q and R.
	backlog := []entity.Lesson{lesson("Mega", "M", 240)}
	run := NewAllocator(200, defaultOffsets).Run(dailyCalendar(4), backlog)

	if !run.Complete() {
		t.Fatalf("expected complete run, %d lessons remaining", len(run.Remaining))
	}
	first := run.Days[0]
	if len(first.Lessons) != 1 || first.Lessons[0].Name != "Mega" {
		t.Fatalf("expected Mega forced onto day one, got %+v", first.Lessons)
	}
	if first.QMinutes != 0 || first.RMinutes != 0 {
		t.Fatalf("expected fully penalized day one, got Q=%d R=%d", first.QMinutes, first.RMinutes)
	}
	if first.QMinutes >= 40 {
		t.Fatalf("penalized Q %d not below unpenalized quota 40", first.QMinutes)
	}
	// The forced allocation must not leak a carryover into day two.
	if len(run.Days[1].Lessons) != 0 {
		t.Fatalf("day two should be empty, got %+v", run.Days[1].Lessons)
	}
}

func TestAllocator_CarryoverDefersUnfitLesson(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("Fits", "M", 80),
		lesson("Huge", "M", 90),
	}
	run := NewAllocator(100, defaultOffsets).Run(dailyCalendar(2), backlog)

	if !run.Complete() {
		t.Fatalf("expected complete run, %d lessons remaining", len(run.Remaining))
	}
	if len(run.Days[0].Lessons) != 1 || run.Days[0].Lessons[0].Name != "Fits" {
		t.Fatalf("day one: %+v", run.Days[0].Lessons)
	}
	if len(run.Days[1].Lessons) != 1 || run.Days[1].Lessons[0].Name != "Huge" {
		t.Fatalf("day two: %+v", run.Days[1].Lessons)
	}
	// Two-day calendars sit entirely in preprova: 50/15/30 quotas with
	// 2.25 Q-borrow and 3 R-borrow against 34.75 debt.
	second := run.Days[1]
	if second.QMinutes != 0 || second.RMinutes != 10 {
		t.Fatalf("day two: expected Q=0 R=10, got Q=%d R=%d", second.QMinutes, second.RMinutes)
	}
}

func TestAllocator_PartitionNoLossNoDuplication(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("A1", "A", 80),
		lesson("A2", "A", 70),
		lesson("B1", "B", 60),
		lesson("B2", "B", 120),
	}
	run := NewAllocator(100, defaultOffsets).Run(dailyCalendar(2), backlog)

	counts := map[string]int{}
	for _, day := range run.Days {
		for _, l := range day.Lessons {
			counts[l.Name]++
		}
	}
	for _, l := range run.Remaining {
		counts[l.Name]++
	}
	if len(counts) != len(backlog) {
		t.Fatalf("expected %d distinct lessons, got %d", len(backlog), len(counts))
	}
	for name, n := range counts {
		if n != 1 {
			t.Errorf("lesson %s appears %d times", name, n)
		}
	}
}

func TestAllocator_ReviewEventsOnlyForAllocatedLessons(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("Watched", "M", 80),
		lesson("Leftover", "M", 50),
	}
	run := NewAllocator(100, defaultOffsets).Run(dailyCalendar(1), backlog)

	if run.Complete() {
		t.Fatal("expected incomplete run")
	}
	if len(run.RawReviews) != len(defaultOffsets) {
		t.Fatalf("expected %d review events, got %d", len(defaultOffsets), len(run.RawReviews))
	}
	watchDay := entity.Date(2026, time.June, 1)
	for i, ev := range run.RawReviews {
		if ev.Lesson.Name != "Watched" {
			t.Errorf("review event for unallocated lesson %s", ev.Lesson.Name)
		}
		if want := watchDay.AddDate(0, 0, defaultOffsets[i]); !ev.Target.Equal(want) {
			t.Errorf("event %d: expected target %v, got %v", i, want, ev.Target)
		}
	}
}

func TestAllocator_MinutesNeverNegative(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("X1", "X", 500),
		lesson("X2", "X", 450),
		lesson("X3", "X", 480),
	}
	run := NewAllocator(120, defaultOffsets).Run(dailyCalendar(3), backlog)

	for i, day := range run.Days {
		if day.QMinutes < 0 || day.RMinutes < 0 {
			t.Errorf("day %d: negative minutes Q=%d R=%d", i, day.QMinutes, day.RMinutes)
		}
	}
}

func TestAllocator_NoDayLeftEmptyWhileLessonsRemain(t *testing.T) {
	backlog := []entity.Lesson{
		lesson("Big1", "X", 300),
		lesson("Big2", "X", 300),
		lesson("Big3", "X", 300),
	}
	run := NewAllocator(100, defaultOffsets).Run(dailyCalendar(3), backlog)

	for i, day := range run.Days {
		if len(day.Lessons) == 0 {
			t.Errorf("day %d left empty while backlog remained", i)
		}
	}
	if !run.Complete() {
		t.Fatalf("forced allocation should have drained the backlog, %d left", len(run.Remaining))
	}
}
