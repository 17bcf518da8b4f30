// Package cmd provides the CLI for frickbooks.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/frickbooks/internal/adapters/console"
	"github.com/PabloGalante/frickbooks/internal/adapters/llm"
	"github.com/PabloGalante/frickbooks/internal/adapters/storage/memory"
	"github.com/PabloGalante/frickbooks/internal/app/conversation"
	"github.com/PabloGalante/frickbooks/internal/app/session"
	"github.com/PabloGalante/frickbooks/internal/assets"
	"github.com/PabloGalante/frickbooks/internal/config"
	"github.com/PabloGalante/frickbooks/internal/domain"
	"github.com/PabloGalante/frickbooks/internal/observability"
)

// breakerOpenFor is how long the backend is skipped once the breaker trips.
const breakerOpenFor = 30 * time.Second

type options struct {
	envFile string
	debug   bool
	backend string
	noColor bool
}

// NewRootCmd builds the frickbooks command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "frickbooks",
		Short: "A startup story told through double-entry bookkeeping",
		Long: `frickbooks is a console game. Name your startup, then record
balanced accounting entries; a language model narrates what each
entry sets in motion until the company meets its end.

Example:
  frickbooks
  frickbooks --backend mock --no-color
  frickbooks --env-file ./game.env`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelInfo
			if opts.debug {
				logLevel = slog.LevelDebug
			}
			observability.Init(os.Stderr, logLevel, false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file (default is .env)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.Flags().StringVar(&opts.backend, "backend", "", "narrative backend: openai, vertex or mock (overrides FRICKBOOKS_BACKEND)")
	root.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with a background context.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		if cfg.Backend, err = config.ParseBackend(opts.backend); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := assets.Load(cfg.PromptFile, cfg.InstructionsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}

	log := observability.Logger()
	log.Info("starting frickbooks", "backend", cfg.Backend, "model", cfg.Model(), "timeout", cfg.Timeout)

	colored := !cfg.NoColor && !opts.noColor
	cons := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), colored)
	defer cons.Close()

	loop := session.NewLoop(client, memory.NewSessionStore(), cons, session.Config{
		Settings: conversation.Settings{
			Model:        cfg.Model(),
			SystemPrompt: a.SystemPrompt,
			Timeout:      cfg.Timeout,
		},
		Instructions: a.Instructions,
		NewHistory: func() domain.HistoryStore {
			return memory.NewHistory(cfg.HistorySize)
		},
	})

	if err := loop.Run(ctx); err != nil {
		log.Error("game stopped", "error", err)
		return err
	}
	return nil
}

func newLLMClient(ctx context.Context, cfg *config.Config) (domain.LLMClient, error) {
	log := observability.Logger()

	var (
		client domain.LLMClient
		err    error
	)

	switch cfg.Backend {
	case config.BackendMock:
		log.Info("using mock LLM client")
		client = llm.NewMockLLM()
	case config.BackendVertex:
		log.Info("using Vertex LLM client", "project", cfg.GCPProjectID, "location", cfg.GCPLocation)
		client, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
	case config.BackendOpenAI:
		log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
		client, err = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s client: %w", cfg.Backend, err)
	}

	client = llm.NewTracingClient(client, string(cfg.Backend), nil)
	if cfg.BreakerFailures > 0 {
		client = llm.NewBreakerClient(client, cfg.BreakerFailures, breakerOpenFor)
	}
	return client, nil
}
