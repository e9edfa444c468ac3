package nutribuddy

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/Jenn623/NutriBuddy/cmd/nutribuddy.buildVersion=...".
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "nutribuddy %s\ncommit: %s\nbuilt: %s\ngo: %s\n", buildVersion, buildCommit, buildDate, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
