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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/gearplan/internal/entity"
)

// Schedule dates are entered and printed the Brazilian way.
const dateLayout = "02/01/2006"

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY", value)
	}
	return entity.DayOf(d), nil
}

// toWeekdays converts configured weekday numbers (0=Monday … 6=Sunday) into
// time.Weekday values.
func toWeekdays(values []int) ([]time.Weekday, error) {
	weekdays := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		if v < 0 || v > 6 {
			return nil, entity.ErrInvalidWeekday
		}
		weekdays = append(weekdays, time.Weekday((v+1)%7))
	}
	return weekdays, nil
}

func bindFlagToViper(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	return viper.BindPFlag(key, flag)
}

// bindSheetFlags points the sheet config keys at the invoked command's
// flags. Viper keeps a single binding per key, so commands sharing the
// --modules/--lessons flags must bind at run time, not init.
func bindSheetFlags(cmd *cobra.Command, _ []string) error {
	if err := bindFlagToViper("sheets.modules", cmd.Flags().Lookup("modules")); err != nil {
		return err
	}
	return bindFlagToViper("sheets.lessons", cmd.Flags().Lookup("lessons"))
}
