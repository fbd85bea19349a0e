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
	"github.com/eslsoft/gearplan/internal/infrastructure/config"
	"github.com/eslsoft/gearplan/internal/usecase"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Rank the catalog modules for an exam type",
	Long: `Lists the modules that survive exam-type weighting, ranked by weight
descending and aggregate duration ascending. The ranking is informational:
allocation always follows sheet order.`,
	PreRunE: bindSheetFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		examType, _ := cmd.Flags().GetString("exam-type")

		catalog := adapter.NewXLSXCatalogRepository(cfg.Sheets.Modules, cfg.Sheets.Lessons, cfg.Study.ExamTypes)
		modules, err := catalog.LoadModules(ctx)
		if err != nil {
			return err
		}
		lessons, err := catalog.LoadLessons(ctx)
		if err != nil {
			return err
		}

		backlog, err := usecase.BuildBacklog(modules, lessons, examType)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Module\tWeight\tMinutes")
		fmt.Fprintln(w, "------\t------\t-------")
		for _, m := range backlog.Ranked {
			fmt.Fprintf(w, "%s\t%d\t%d\n", m.Name, m.Weight, m.Cost)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesCmd.Flags().StringP("exam-type", "t", "", "exam type column to weight modules by")
	modulesCmd.Flags().String("modules", "", "module sheet path")
	modulesCmd.Flags().String("lessons", "", "lesson sheet path")
	cobra.CheckErr(modulesCmd.MarkFlagRequired("exam-type"))
}
