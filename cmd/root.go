package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"hungie/api"
	"hungie/chat"
	"hungie/config"
	"hungie/debug"
	"hungie/metrics"
	"hungie/render"
	"hungie/tui"
	"hungie/workspace"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	apiURL      string
	logLevel    string
	metricsAddr string
	plainMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "hungie",
	Short: "Hungie is a terminal chat with your personal chef assistant",
	Long: `Hungie is a terminal chat front-end for the Hungie cooking assistant.
Ask for recipes, ingredient substitutions and cooking advice; Hungie keeps
the last few turns as context so follow-up questions just work.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if plainMode {
			return runPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a.conversation())
		}

		if err := tui.StartTUI(cmd.Context(), a.client, a.cfg.ContextWindow, a.logger); err != nil {
			return fmt.Errorf("error starting chat: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "Line-by-line chat without the full-screen interface")

	rootCmd.AddCommand(configCmd)
}

// app bundles what every command needs
type app struct {
	workspace string
	cfg       *config.Config
	client    *api.Client
	logger    zerolog.Logger

	logFile     io.Closer
	stopMetrics context.CancelFunc
}

// newApp resolves configuration once and builds the client from it
func newApp(cmd *cobra.Command) (*app, error) {
	workspacePath, err := workspace.DetectWorkspace()
	if err != nil {
		return nil, fmt.Errorf("error detecting workspace: %w", err)
	}

	cfg, err := config.LoadConfig(workspacePath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	a := &app{workspace: workspacePath, cfg: cfg}

	logger, logFile, err := debug.LogToFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		// Never fail a command over logging
		logger = debug.Console(cmd.ErrOrStderr(), "warn")
		logger.Warn().Err(err).Msg("file logging unavailable")
	}
	a.logger = logger
	a.logFile = logFile

	a.client = api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout(),
	}, api.WithLogger(logger))

	if metricsAddr != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		a.stopMetrics = cancel
		go func() {
			if err := metrics.Serve(ctx, metricsAddr); err != nil {
				logger.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
			}
		}()
	}

	logger.Debug().
		Str("command", cmd.Name()).
		Str("workspace", workspacePath).
		Str("api_base_url", cfg.APIBaseURL).
		Msg("starting")

	return a, nil
}

func (a *app) conversation() *chat.Conversation {
	return chat.NewConversation(a.client,
		chat.WithWindow(a.cfg.ContextWindow),
		chat.WithLogger(a.logger),
	)
}

// Close releases the log file and stops the metrics server
func (a *app) Close() error {
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// runPlain is the line-mode chat: one turn per input line
func runPlain(ctx context.Context, in io.Reader, out io.Writer, conv *chat.Conversation) error {
	fmt.Fprintln(out, strings.Trim(figure.NewFigure("HUNGIE", "", true).String(), "\n"))
	fmt.Fprintln(out)
	if last, ok := conv.State().Last(); ok {
		fmt.Fprintln(out, render.Plain(render.Interpret(last)))
	}
	fmt.Fprintln(out, `Type a message and press Enter. "/reset" starts over, "/quit" exits.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			conv.Reset()
			last, _ := conv.State().Last()
			fmt.Fprintln(out, render.Plain(render.Interpret(last)))
			continue
		}

		fmt.Fprintln(out, "Hungie is cooking up a response...")
		reply, ok := conv.Send(ctx, line)
		if !ok {
			continue
		}
		fmt.Fprintln(out, render.Plain(render.Interpret(reply)))
	}
}
