package commands

import (
	"context"
	"courseprobe/lib/telemetry"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagLimit    int
	flagOutput   string
	flagDebug    bool
	flagDb       string
	flagDumpHttp string
)

var rootCmd = &cobra.Command{
	Use:   "courseprobe",
	Short: "courseprobe pokes at the public search endpoints of coursera.org and reports what comes back.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(flagDebug)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 10, "Maximum number of results to return.")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "Save the raw outcome to the given JSON file.")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Echo outgoing requests and incoming statuses before normal output.")
	rootCmd.PersistentFlags().StringVar(&flagDb, "db", "", "Record the outcome in the probe history at the given sqlite path.")
	rootCmd.PersistentFlags().StringVar(&flagDumpHttp, "dump-http", "", "Write every raw HTTP exchange to files in the given directory.")
}

// A probe that came back with a failure outcome is still a completed
// probe run, only usage errors exit non-zero.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
