package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var recipeContext string

var substituteCmd = &cobra.Command{
	Use:   "substitute [ingredient]",
	Short: "Find substitutes for an ingredient",
	Long: `Find substitutes for an ingredient. Use --context to describe the dish
so the suggestions fit it, e.g. --context "chocolate chip cookies".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.client.GetSubstitution(cmd.Context(), strings.Join(args, " "), recipeContext)
		if err != nil {
			return fmt.Errorf("error finding substitutes: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

var substituteBulkCmd = &cobra.Command{
	Use:   "bulk [ingredient...]",
	Short: "Find substitutes for several ingredients at once",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.client.GetBulkSubstitutions(cmd.Context(), args, recipeContext)
		if err != nil {
			return fmt.Errorf("error finding substitutes: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

var substituteBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse every known substitution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.client.BrowseSubstitutions(cmd.Context())
		if err != nil {
			return fmt.Errorf("error browsing substitutions: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

func init() {
	substituteCmd.PersistentFlags().StringVar(&recipeContext, "context", "", "What you are cooking")
	substituteCmd.AddCommand(substituteBulkCmd)
	substituteCmd.AddCommand(substituteBrowseCmd)
	rootCmd.AddCommand(substituteCmd)
}
