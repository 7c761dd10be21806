package cmd

import (
	"errors"
	"fmt"
	"strings"

	"hungie/render"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message to Hungie and print the reply",
	Long: `Send a single message through smart search and print Hungie's reply,
including any suggested recipes and ingredient substitutions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, ok := a.conversation().Send(cmd.Context(), strings.Join(args, " "))
		if !ok {
			return errors.New("nothing to send")
		}

		fmt.Fprintln(cmd.OutOrStdout(), render.Plain(render.Interpret(reply)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
