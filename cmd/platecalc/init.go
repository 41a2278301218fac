package platecalc

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/app"
	"github.com/saadjs/platecalc/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local nutrition cache database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized platecalc database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
