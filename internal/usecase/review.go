package usecase

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/gearplan/internal/entity"
)

// RemapReviews moves every raw review event onto the study-day calendar:
// events targeting a study day stay there, events targeting a rest day slide
// forward to the next study day, and events targeting any date after the
// last study day are dropped. The result maps study days to the events due
// on them.
func RemapReviews(raw []entity.ReviewEvent, calendar []time.Time) map[time.Time][]entity.ReviewEvent {
	reviews := map[time.Time][]entity.ReviewEvent{}
	if len(calendar) == 0 {
		return reviews
	}

	studyDays := lo.SliceToMap(calendar, func(d time.Time) (time.Time, bool) {
		return entity.DayOf(d), true
	})
	last := entity.DayOf(calendar[len(calendar)-1])

	byTarget := lo.GroupBy(raw, func(e entity.ReviewEvent) time.Time {
		return entity.DayOf(e.Target)
	})
	targets := lo.Keys(byTarget)
	sort.Slice(targets, func(i, j int) bool { return targets[i].Before(targets[j]) })

	for _, target := range targets {
		if target.After(last) {
			continue
		}
		day := target
		for !day.After(last) && !studyDays[day] {
			day = day.AddDate(0, 0, 1)
		}
		if studyDays[day] {
			reviews[day] = append(reviews[day], byTarget[target]...)
		}
	}
	return reviews
}
