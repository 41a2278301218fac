package platecalc

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/config"
	"github.com/saadjs/platecalc/internal/model"
	"github.com/saadjs/platecalc/internal/provider/usda"
	"github.com/saadjs/platecalc/internal/service"
)

var (
	nutritionServings float64
	nutritionNoLookup bool
	nutritionAPIKey   string
	nutritionTimeout  time.Duration
	nutritionJSON     bool
)

type recipeFile struct {
	Name        string                 `json:"name,omitempty"`
	Servings    float64                `json:"servings"`
	Ingredients []model.IngredientLine `json:"ingredients"`
}

var nutritionCmd = &cobra.Command{
	Use:   "nutrition <recipe.json>",
	Short: "Compute per-serving nutrition for a recipe file",
	Long: `Reads a recipe JSON file ({"servings": 4, "ingredients": [{"name", "quantity", "unit"}]})
and resolves each ingredient against the local cache, the USDA food database,
and a heuristic estimator, in that order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipe, err := loadRecipeFile(args[0])
		if err != nil {
			return err
		}
		servings := recipe.Servings
		if nutritionServings > 0 {
			servings = nutritionServings
		}
		if servings <= 0 {
			return fmt.Errorf("servings must be > 0 (set in the recipe file or via --servings)")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		apiKey := strings.TrimSpace(nutritionAPIKey)
		if apiKey == "" {
			apiKey = cfg.USDAAPIKey
		}
		timeout := nutritionTimeout
		if timeout <= 0 {
			timeout = cfg.LookupTimeout
		}
		useLookup := !nutritionNoLookup && apiKey != ""

		return withDB(func(sqldb *sql.DB) error {
			normalizer := service.NewNormalizer()
			weights := service.NewWeightEstimator(normalizer)
			estimator := service.NewEstimator(normalizer, weights)
			estimator.SetDefaultItemGrams(cfg.DefaultItemGrams)

			var lookup *service.ExternalLookup
			if useLookup {
				client := usda.NewClient(apiKey, cfg.USDABaseURL, timeout)
				lookup = service.NewExternalLookup(client, logger, timeout)
			}

			resolver := service.NewNutritionResolver(
				service.NewSQLiteCache(sqldb), lookup, normalizer, estimator, logger,
			)
			result := resolver.ComputeRecipeNutrition(cmd.Context(), recipe.Ingredients, servings, useLookup)

			if nutritionJSON {
				b, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal nutrition json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printNutritionResult(cmd, recipe.Name, result)
			return nil
		})
	},
}

func loadRecipeFile(path string) (recipeFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return recipeFile{}, fmt.Errorf("open recipe file: %w", err)
	}
	defer f.Close()

	var recipe recipeFile
	if err := json.NewDecoder(f).Decode(&recipe); err != nil {
		return recipeFile{}, fmt.Errorf("decode recipe file: %w", err)
	}
	if len(recipe.Ingredients) == 0 {
		return recipe, nil
	}
	// Malformed lines are rejected here, before the engine; the resolver
	// assumes validated input.
	for i, line := range recipe.Ingredients {
		if strings.TrimSpace(line.Name) == "" {
			return recipeFile{}, fmt.Errorf("ingredient %d: name is required", i+1)
		}
		if line.Quantity <= 0 {
			return recipeFile{}, fmt.Errorf("ingredient %d (%s): quantity must be > 0", i+1, line.Name)
		}
	}
	return recipe, nil
}

func printNutritionResult(cmd *cobra.Command, name string, result service.RecipeNutritionResult) {
	out := cmd.OutOrStdout()
	if name != "" {
		fmt.Fprintf(out, "Recipe: %s\n", name)
	}
	fmt.Fprintf(out, "Servings: %.2g  Confidence: %s\n\n", result.Servings, result.Confidence)
	fmt.Fprintln(out, "INGREDIENT\tGRAMS\tKCAL\tP\tC\tF\tSOURCE")
	for _, item := range result.Breakdown {
		fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
			item.Line.Name, item.Grams,
			item.Nutrients.CaloriesKcal, item.Nutrients.ProteinG, item.Nutrients.CarbsG, item.Nutrients.FatG,
			item.Source)
	}
	ps := result.PerServing
	fmt.Fprintf(out, "\nPer serving: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg fiber, %.1fg sugar, %.0fmg sodium\n",
		ps.CaloriesKcal, ps.ProteinG, ps.CarbsG, ps.FatG, ps.FiberG, ps.SugarG, ps.SodiumMg)
}

func init() {
	rootCmd.AddCommand(nutritionCmd)
	nutritionCmd.Flags().Float64Var(&nutritionServings, "servings", 0, "Override the recipe's serving count")
	nutritionCmd.Flags().BoolVar(&nutritionNoLookup, "no-lookup", false, "Disable the external USDA lookup for deterministic results")
	nutritionCmd.Flags().StringVar(&nutritionAPIKey, "api-key", "", "USDA API key (fallback: PLATECALC_USDA_API_KEY)")
	nutritionCmd.Flags().DurationVar(&nutritionTimeout, "timeout", 0, "Per-ingredient lookup timeout")
	nutritionCmd.Flags().BoolVar(&nutritionJSON, "json", false, "Output as JSON")
}
