package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search recipes by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.client.SearchRecipes(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("error searching recipes: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List recipe categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.client.GetCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading categories: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), raw)
	},
}

// printJSON pretty-prints a backend payload as-is
func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoriesCmd)
}
