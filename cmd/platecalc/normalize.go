package platecalc

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/platecalc/internal/service"
)

var normalizeCompare string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <ingredient>",
	Short: "Show the canonical form of an ingredient name",
	Long: `Normalizes a free-text ingredient line the same way the nutrition engine
does before any cache or lookup step. With --compare, also reports the
similarity score and band against a second name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		normalizer := service.NewNormalizer()
		normalized := normalizer.Normalize(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), normalized)

		if normalizeCompare != "" {
			score := normalizer.Similarity(args[0], normalizeCompare)
			fmt.Fprintf(cmd.OutOrStdout(), "similarity to %q: %.2f (%s)\n",
				normalizer.Normalize(normalizeCompare), score, service.SimilarityBand(score))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVar(&normalizeCompare, "compare", "", "Second name to score similarity against")
}
