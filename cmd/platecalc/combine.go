package platecalc

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/service"
)

var combineCmd = &cobra.Command{
	Use:   "combine <qty1> <unit1> <qty2> <unit2>",
	Short: "Combine two ingredient quantities into one display amount",
	Long: `Adds two quantities of the same dimension (weight, volume, or count) and
prints the sum in a sensible display unit. Mixing dimensions, such as grams
with millilitres, is an error.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		q1, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse first quantity: %w", err)
		}
		q2, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("parse second quantity: %w", err)
		}
		combined, err := service.Combine(q1, args[1], q2, args[3])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s\n", combined.Quantity, combined.Unit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
