package platecalc

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "platecalc",
	Short: "platecalc resolves recipe ingredients into per-serving nutrition",
	Long:  "platecalc is a local-first recipe nutrition engine: it normalizes free-text ingredient lines, resolves each against a cache, the USDA food database, or a heuristic estimator, and reports per-serving nutrients with a confidence tier.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
