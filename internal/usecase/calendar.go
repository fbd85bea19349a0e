package usecase

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/gearplan/internal/entity"
)

// WeekStart returns the Sunday that opens the week containing d. Weeks are
// delimited Sunday to Saturday throughout the engine.
func WeekStart(d time.Time) time.Time {
	d = entity.DayOf(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StudyDays generates the ordered study-day calendar between start and end
// (inclusive). When weekdays is non-empty, every in-range date of each week
// whose weekday is in the set becomes a study day. Otherwise each week
// contributes its first perWeek chronological in-range days. The result is
// ascending and duplicate free; a non-positive perWeek yields nil.
func StudyDays(start, end time.Time, perWeek int, weekdays []time.Weekday) []time.Time {
	if perWeek <= 0 {
		return nil
	}
	start = entity.DayOf(start)
	end = entity.DayOf(end)

	wanted := map[time.Weekday]bool{}
	for _, wd := range weekdays {
		wanted[wd] = true
	}

	var days []time.Time
	for cur := start; !cur.After(end); {
		ws := WeekStart(cur)
		var week []time.Time
		for i := 0; i < 7; i++ {
			candidate := ws.AddDate(0, 0, i)
			if candidate.Before(start) || candidate.After(end) {
				continue
			}
			if len(wanted) > 0 && !wanted[candidate.Weekday()] {
				continue
			}
			week = append(week, candidate)
		}
		if len(wanted) == 0 && len(week) > perWeek {
			week = week[:perWeek]
		}
		days = append(days, week...)
		cur = ws.AddDate(0, 0, 7)
	}

	days = lo.Uniq(days)
	// Weeks were emitted chronologically and dates within a week ascend,
	// so the sequence is already sorted.
	return days
}

// PhaseFor classifies the study day at index idx within a calendar of total
// days into one of the four chronological phases. Quartiles are computed by
// integer division, so calendars shorter than four days collapse into
// preprova entirely.
func PhaseFor(idx, total int) entity.Phase {
	if total == 0 {
		return entity.PhaseInicio
	}
	q := total / 4
	switch {
	case idx < q:
		return entity.PhaseInicio
	case idx < 2*q:
		return entity.PhaseMeio
	case idx < 3*q:
		return entity.PhaseFinal
	default:
		return entity.PhasePreProva
	}
}

// Week groups the study days that share one Sunday-based week, for the
// printed schedule.
type Week struct {
	Start time.Time
	Days  []time.Time
}

// Weeks splits an ordered study-day calendar into its weeks, preserving
// order.
func Weeks(days []time.Time) []Week {
	var weeks []Week
	for _, d := range days {
		ws := WeekStart(d)
		if n := len(weeks); n > 0 && weeks[n-1].Start.Equal(ws) {
			weeks[n-1].Days = append(weeks[n-1].Days, d)
			continue
		}
		weeks = append(weeks, Week{Start: ws, Days: []time.Time{d}})
	}
	return weeks
}

// TotalWeeks counts the calendar weeks spanned by the study days, first to
// last inclusive.
func TotalWeeks(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	first := WeekStart(days[0])
	last := WeekStart(days[len(days)-1])
	return int(last.Sub(first).Hours()/(24*7)) + 1
}
