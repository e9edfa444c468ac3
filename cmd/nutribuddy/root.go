package nutribuddy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	dbPath       string
	storeBackend string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:           "nutribuddy",
	Short:         "nutribuddy tracks daily calories and macros against goals from your body stats",
	Long:          "nutribuddy is a personal nutrition tracker: register a profile, log foods from the catalog, and keep a short history of daily totals.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./config.yaml or the data dir)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Store backend: sqlite, redis or memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
