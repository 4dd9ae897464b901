package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/myhours-cli/internal/timecalc"
)

var (
	previousStandup bool
	previousDate    string
)

var previousCmd = &cobra.Command{
	Use:   "previous",
	Short: "Show the tasks of the last workday",
	Long: `Show the tasks of the last workday: Friday on weekends and Mondays,
otherwise yesterday. Use --date dd-MM to pick a day of the current year.`,
	Args: cobra.NoArgs,
	RunE: runPrevious,
}

func init() {
	previousCmd.Flags().BoolVarP(&previousStandup, "standup", "s", false, "Print a standup bullet list")
	previousCmd.Flags().StringVarP(&previousDate, "date", "d", "", "Day to show as dd-MM")
}

func runPrevious(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day, err := previousDay(previousDate, now)
	if err != nil {
		return err
	}
	return showDay(cmd, day, now, previousStandup)
}

func previousDay(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return timecalc.PreviousWorkday(now), nil
	}
	return timecalc.ParseDayMonth(date, now)
}
