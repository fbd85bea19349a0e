/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/eslsoft/gearplan/internal/entity"
	"github.com/eslsoft/gearplan/internal/usecase"
)

var (
	weekHeading = color.New(color.FgHiCyan, color.Bold)
	dayHeading  = color.New(color.FgYellow)
	okStyle     = color.New(color.FgGreen, color.Bold)
	warnStyle   = color.New(color.FgHiRed, color.Bold)
)

func renderPlan(w io.Writer, plan *entity.Plan) {
	dates := lo.Map(plan.Days, func(d entity.StudyDay, _ int) time.Time { return d.Date })
	byDate := lo.KeyBy(plan.Days, func(d entity.StudyDay) time.Time { return d.Date })

	for _, week := range usecase.Weeks(dates) {
		weekEnd := week.Start.AddDate(0, 0, 6)
		weekHeading.Fprintf(w, "Week %s to %s\n", week.Start.Format(dateLayout), weekEnd.Format(dateLayout))

		for _, date := range week.Days {
			day := byDate[date]
			dayHeading.Fprintf(w, "  %s %s [%s]\n", date.Weekday(), date.Format(dateLayout), day.Phase)

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, lesson := range day.Lessons {
				fmt.Fprintf(tw, "    %s\t%s\t%d min\n", lesson.Module, lesson.Name, lesson.Duration)
			}
			tw.Flush()

			fmt.Fprintf(w, "    Questions: %d min  Review: %d min\n", day.QMinutes, day.RMinutes)
			renderReviews(w, plan.Reviews[date], date)
		}
		fmt.Fprintln(w)
	}

	renderRemoved(w, plan.Removed)
	renderSummary(w, plan)
}

func renderReviews(w io.Writer, due []entity.ReviewEvent, date time.Time) {
	if len(due) == 0 {
		return
	}
	// Heaviest modules first, then module and lesson name.
	sorted := make([]entity.ReviewEvent, len(due))
	copy(sorted, due)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		if sorted[i].Lesson.Module != sorted[j].Lesson.Module {
			return sorted[i].Lesson.Module < sorted[j].Lesson.Module
		}
		return sorted[i].Lesson.Name < sorted[j].Lesson.Name
	})
	fmt.Fprintln(w, "    Reviews due:")
	for _, ev := range sorted {
		fmt.Fprintf(w, "      - %s (%s), watched %d days ago\n",
			ev.Lesson.Name, ev.Lesson.Module, ev.DaysSinceWatch(date))
	}
}

func renderRemoved(w io.Writer, removed []entity.Lesson) {
	if len(removed) == 0 {
		return
	}
	warnStyle.Fprintln(w, "Removed to fit the calendar:")
	grouped := lo.GroupBy(removed, func(l entity.Lesson) string { return l.Module })
	modules := lo.Keys(grouped)
	sort.Strings(modules)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, module := range modules {
		fmt.Fprintf(tw, "  %s\n", module)
		for _, lesson := range grouped[module] {
			fmt.Fprintf(tw, "    [ ]\t%s\t%d min\n", lesson.Name, lesson.Duration)
		}
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func renderSummary(w io.Writer, plan *entity.Plan) {
	s := plan.Summary
	if plan.Complete {
		okStyle.Fprintln(w, "Plan: complete")
	} else {
		warnStyle.Fprintf(w, "Plan: abbreviated (%d lessons removed)\n", s.RemovedLessons)
	}
	fmt.Fprintf(w, "Study days: %d across %d weeks\n", s.StudyDays, s.TotalWeeks)
	fmt.Fprintf(w, "Lesson minutes: %d  Questions+review minutes: %d\n", s.TotalLessonMinutes, s.TotalQRMinutes)
}
