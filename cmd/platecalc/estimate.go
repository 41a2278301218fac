package platecalc

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/service"
)

var (
	estimateQuantity float64
	estimateUnit     string
	estimateJSON     bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <ingredient>",
	Short: "Show the heuristic nutrition estimate for an ingredient",
	Long: `Resolves an ingredient through the category estimator alone, bypassing the
cache and the external lookup. Useful for checking what the fallback tier
would report for an unrecognized ingredient.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		normalizer := service.NewNormalizer()
		weights := service.NewWeightEstimator(normalizer)
		estimator := service.NewEstimator(normalizer, weights)

		normalized := normalizer.Normalize(args[0])
		grams := estimator.GramsFor(normalized, estimateQuantity, estimateUnit)
		vec := estimator.Estimate(args[0], estimateQuantity, estimateUnit)

		if estimateJSON {
			b, err := json.MarshalIndent(map[string]any{
				"normalized": normalized,
				"grams":      grams,
				"nutrients":  vec,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal estimate json: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%.0fg estimated)\n", normalized, grams)
		fmt.Fprintf(cmd.OutOrStdout(), "  %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg fiber, %.1fg sugar, %.0fmg sodium\n",
			vec.CaloriesKcal, vec.ProteinG, vec.CarbsG, vec.FatG, vec.FiberG, vec.SugarG, vec.SodiumMg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().Float64Var(&estimateQuantity, "quantity", 1, "Ingredient quantity")
	estimateCmd.Flags().StringVar(&estimateUnit, "unit", "", "Ingredient unit (empty means count)")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "Output as JSON")
}
