package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/guardian/internal/logging"
	"github.com/dshills/guardian/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI and review API",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["addr"] = flagAddr
		}
		cfg, err := loadConfigWith(overrides)
		if err != nil {
			return err
		}

		log := logging.New(cfg.LogLevel, os.Stderr)
		engine, err := newEngine(cfg, log)
		if err != nil {
			fail(err)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "Code Guardian listening on %s (%s/%s)\n", cfg.Server.Addr, engine.Provider(), cfg.Model)
		if err := server.New(engine, cfg, log).ListenAndServe(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, anthropic, openai, ollama)")
	serveCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	serveCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of reviewable files per upload")
	serveCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	serveCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the review cache")
}
