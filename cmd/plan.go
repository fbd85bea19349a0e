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

	"github.com/spf13/cobra"

	adapter "github.com/eslsoft/gearplan/internal/adapter/repository"
	"github.com/eslsoft/gearplan/internal/infrastructure/config"
	"github.com/eslsoft/gearplan/internal/infrastructure/logging"
	"github.com/eslsoft/gearplan/internal/repository"
	"github.com/eslsoft/gearplan/internal/usecase"
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Short:   "Generate a day-by-day study plan",
	PreRunE: bindSheetFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return err
		}

		examType, _ := cmd.Flags().GetString("exam-type")
		startArg, _ := cmd.Flags().GetString("start")
		endArg, _ := cmd.Flags().GetString("end")

		start, err := parseDate(startArg)
		if err != nil {
			return err
		}
		end, err := parseDate(endArg)
		if err != nil {
			return err
		}
		weekdays, err := toWeekdays(cfg.Study.Weekdays)
		if err != nil {
			return err
		}

		catalog := adapter.NewXLSXCatalogRepository(cfg.Sheets.Modules, cfg.Sheets.Lessons, cfg.Study.ExamTypes)

		var history repository.PlanRepository
		if cfg.Database.Path != "" {
			repo, cleanup, err := adapter.NewSQLitePlanRepository(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer cleanup()
			history = repo
		}

		planner := usecase.NewPlanner(catalog, history, logger)
		plan, err := planner.BuildPlan(ctx, usecase.PlanParams{
			ExamType:      examType,
			Start:         start,
			End:           end,
			MinutesPerDay: cfg.Study.MinutesPerDay,
			DaysPerWeek:   cfg.Study.DaysPerWeek,
			Weekdays:      weekdays,
			ReviewOffsets: cfg.Study.ReviewOffsets,
		})
		if err != nil {
			return err
		}

		renderPlan(cmd.OutOrStdout(), plan)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("exam-type", "t", "", "exam type column to weight modules by")
	planCmd.Flags().String("start", "", "first calendar day (DD/MM/YYYY)")
	planCmd.Flags().String("end", "", "exam day, last calendar day (DD/MM/YYYY)")
	planCmd.Flags().Int("minutes", 0, "daily study budget in minutes")
	planCmd.Flags().Int("days-per-week", 0, "study days per calendar week")
	planCmd.Flags().IntSlice("weekdays", nil, "fixed study weekdays, 0=Monday … 6=Sunday")
	planCmd.Flags().IntSlice("offsets", nil, "spaced-repetition offsets in days")
	planCmd.Flags().String("modules", "", "module sheet path")
	planCmd.Flags().String("lessons", "", "lesson sheet path")

	cobra.CheckErr(planCmd.MarkFlagRequired("exam-type"))
	cobra.CheckErr(planCmd.MarkFlagRequired("start"))
	cobra.CheckErr(planCmd.MarkFlagRequired("end"))

	cobra.CheckErr(bindFlagToViper("study.minutes_per_day", planCmd.Flags().Lookup("minutes")))
	cobra.CheckErr(bindFlagToViper("study.days_per_week", planCmd.Flags().Lookup("days-per-week")))
	cobra.CheckErr(bindFlagToViper("study.weekdays", planCmd.Flags().Lookup("weekdays")))
	cobra.CheckErr(bindFlagToViper("study.review_offsets", planCmd.Flags().Lookup("offsets")))
}
