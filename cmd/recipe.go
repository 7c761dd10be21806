package cmd

import (
	"fmt"

	"hungie/render"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var rawMarkdown bool

var recipeCmd = &cobra.Command{
	Use:   "recipe [id]",
	Short: "Show the full recipe for an id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()

		recipe, err := a.client.GetRecipe(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(out, render.NotFound)
			return fmt.Errorf("error loading recipe %s: %w", args[0], err)
		}
		if recipe.Name == "" {
			fmt.Fprintln(out, render.NotFound)
			return nil
		}

		md := render.RecipeMarkdown(recipe)
		if rawMarkdown {
			fmt.Fprint(out, md)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			a.logger.Warn().Err(err).Msg("markdown renderer unavailable")
			fmt.Fprint(out, md)
			return nil
		}

		rendered, err := renderer.Render(md)
		if err != nil {
			a.logger.Warn().Err(err).Msg("markdown render failed")
			fmt.Fprint(out, md)
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	recipeCmd.Flags().BoolVar(&rawMarkdown, "raw", false, "Print markdown without terminal styling")
	rootCmd.AddCommand(recipeCmd)
}
