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
	"text/tabwriter"

	"github.com/spf13/cobra"

	adapter "github.com/eslsoft/gearplan/internal/adapter/repository"
	"github.com/eslsoft/gearplan/internal/entity"
	"github.com/eslsoft/gearplan/internal/infrastructure/config"
	"github.com/eslsoft/gearplan/internal/repository"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Database.Path == "" {
			return entity.ErrHistoryUnavailable
		}

		repo, cleanup, err := adapter.NewSQLitePlanRepository(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer cleanup()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := repo.List(ctx, &repository.ListPlanRunsQuery{Limit: limit})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "When\tExam\tRange\tMin/day\tDays\tWeeks\tResult")
		for _, run := range runs {
			result := "complete"
			if !run.Complete {
				result = fmt.Sprintf("abbreviated (-%d lessons)", run.Summary.RemovedLessons)
			}
			fmt.Fprintf(w, "%s\t%s\t%s – %s\t%d\t%d\t%d\t%s\n",
				run.CreatedAt.Local().Format("02/01/2006 15:04"),
				run.ExamType,
				run.Start.Format(dateLayout),
				run.End.Format(dateLayout),
				run.MinutesPerDay,
				run.Summary.StudyDays,
				run.Summary.TotalWeeks,
				result,
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().String("db", "", "history database path")

	cobra.CheckErr(bindFlagToViper("database.path", historyCmd.Flags().Lookup("db")))
}
