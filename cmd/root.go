package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "myhours",
	Short: "myhours – track My Hours time entries from the terminal",
	Long: `myhours starts and stops My Hours timers, prints daily and standup
reports and backfills a week of hours.

Settings live in my-hours-cli.yaml next to the cached session in
$XDG_CONFIG_HOME or your home directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic messages to stderr")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(runningCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(previousCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(fudgeCmd)
}
