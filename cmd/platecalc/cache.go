package platecalc

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/service"
)

var (
	cacheSeedFile  string
	cacheListLimit int
	cachePurgeAll  bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local nutrition cache",
}

var cacheSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load per-100g nutrition entries from a JSON file into the cache",
	Long: `Reads a JSON array of {"name", "per_100g", "source_id"} objects and stores
each under its normalized name with manual provenance. Seeded entries take
priority over external lookups for matching ingredients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cacheSeedFile == "" {
			return fmt.Errorf("--file is required")
		}
		f, err := os.Open(cacheSeedFile)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()

		return withDB(func(sqldb *sql.DB) error {
			store := service.NewSQLiteCache(sqldb)
			count, err := service.SeedCache(store, service.NewNormalizer(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d cache entries\n", count)
			return nil
		})
	},
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached nutrition entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListCacheEntries(sqldb, cacheListLimit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL/100G\tPROVENANCE\tSOURCE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%s\t%d\t%s\n",
					e.NormalizedName, e.PerHundredG.CaloriesKcal, e.Provenance, e.SourceID,
					e.LastUpdated.Format("2006-01-02"))
			}
			return nil
		})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge [name]",
	Short: "Remove one cached entry, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" && !cachePurgeAll {
			return fmt.Errorf("provide a name to purge, or --all to clear the cache")
		}
		return withDB(func(sqldb *sql.DB) error {
			normalized := ""
			if name != "" {
				normalized = service.NewNormalizer().Normalize(name)
			}
			removed, err := service.PurgeCache(sqldb, normalized, cachePurgeAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cache entries\n", removed)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheSeedCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)

	cacheSeedCmd.Flags().StringVar(&cacheSeedFile, "file", "", "Path to seed JSON file (required)")
	cacheListCmd.Flags().IntVar(&cacheListLimit, "limit", 50, "Maximum entries to list")
	cachePurgeCmd.Flags().BoolVar(&cachePurgeAll, "all", false, "Purge every cached entry")
}
