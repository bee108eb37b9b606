package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/guardian/internal/cache"
	"github.com/dshills/guardian/internal/config"
	"github.com/dshills/guardian/internal/gitctx"
	"github.com/dshills/guardian/internal/intake"
	"github.com/dshills/guardian/internal/logging"
	"github.com/dshills/guardian/internal/output"
	"github.com/dshills/guardian/internal/providers"
	"github.com/dshills/guardian/internal/redact"
	"github.com/dshills/guardian/internal/review"
)

// Shared review flags
var (
	flagProvider    string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagLogLevel    string
	flagMaxFiles    int
	flagContext     string
	flagContextFile string
	flagNoRedact    bool
	flagNoCache     bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, anthropic, openai, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, html)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flagContext, "context", "", "Project context to include with the code")
	cmd.Flags().StringVar(&flagContextFile, "context-file", "", "Read project context from a file")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the review cache")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagMaxFiles > 0 {
		m["maxFiles"] = strconv.Itoa(flagMaxFiles)
	}
	return m
}

// loadConfig resolves the effective config and applies the flags that only
// make sense for one invocation.
func loadConfig() (config.Config, error) {
	return loadConfigWith(buildOverrides())
}

func loadConfigWith(overrides map[string]string) (config.Config, error) {
	cfg, err := config.Load(overrides)
	if err != nil {
		return config.Config{}, err
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// projectContext returns --context-file contents if set, otherwise --context.
func projectContext() (string, error) {
	if flagContextFile == "" {
		return flagContext, nil
	}
	data, err := os.ReadFile(flagContextFile)
	if err != nil {
		return "", fmt.Errorf("reading context file: %w", err)
	}
	return string(data), nil
}

// newEngine builds the review engine for cfg, with the file cache fronted by
// an in-memory LRU when caching is enabled.
func newEngine(cfg config.Config, log *logrus.Logger) (*review.Engine, error) {
	p, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	opts := []review.Option{review.WithLogger(log)}
	if cfg.Cache.Enabled {
		disk, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		layered, err := cache.NewLayered(disk, cfg.Cache.MemoryEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		opts = append(opts, review.WithCache(layered))
	}
	return review.NewEngine(p, cfg, opts...), nil
}

func bundleOptions(cfg config.Config) intake.BundleOptions {
	return intake.BundleOptions{
		Concurrency:   cfg.Intake.Concurrency,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		RedactPaths:   cfg.Privacy.RedactPaths,
	}
}

func runReview(ctx context.Context, req review.Request, cfg config.Config) {
	log := logging.New(cfg.LogLevel, os.Stderr)
	engine, err := newEngine(cfg, log)
	if err != nil {
		fail(err)
		return
	}

	result, err := engine.Review(ctx, req)
	if err != nil {
		fail(err)
		return
	}

	if err := output.WriteResult(result, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review code",
	Long:  "Review pasted code or a project folder using an LLM provider.",
}

var reviewSnippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Review code from stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pctx, err := projectContext()
		if err != nil {
			return err
		}

		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		req, err := review.FromPaste(string(content), pctx)
		if err != nil {
			fail(err)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		runReview(ctx, req, cfg)
		return nil
	},
}

var (
	flagDryRun bool
	flagGit    bool
)

// listFolder walks root, or asks git for its files when --git is set so
// ignored paths never reach the intake filter.
func listFolder(root string) ([]intake.Candidate, error) {
	if !flagGit {
		return intake.Walk(root)
	}
	meta, err := gitctx.GetRepoMeta(root)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Using git files from %s (%s)\n", meta.Root, meta.Branch)
	return gitctx.Tracked(root)
}

// ignoredRootHint explains an empty batch caused by the folder's own name,
// which leads every walked path and so matches the ignored-folder rule.
func ignoredRootHint(root string, rules intake.Rules) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	name := filepath.Base(abs)
	if !rules.IgnoredDir(name) {
		return ""
	}
	return fmt.Sprintf("Note: %q is an ignored folder name, so every file under it is skipped. "+
		"Rename the folder or copy the sources elsewhere to review them.", name)
}

var reviewDirCmd = &cobra.Command{
	Use:   "dir <path>",
	Short: "Review the source files in a project folder",
	Long: "Walk a folder, keep the reviewable source files, and send them for review. " +
		"Dependency, build and editor folders, lock files and non-source files are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pctx, err := projectContext()
		if err != nil {
			return err
		}

		candidates, err := listFolder(args[0])
		if err != nil {
			fail(err)
			return nil
		}
		rules := intake.DefaultRules()
		batch := intake.NewBatch(candidates, rules, cfg.Intake.MaxFiles)
		fmt.Fprintln(cmd.ErrOrStderr(), batch.Summary())
		if !flagGit {
			if hint := ignoredRootHint(args[0], rules); hint != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), hint)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if flagDryRun {
			if err := dryRun(ctx, cmd.OutOrStdout(), batch, cfg); err != nil {
				fail(err)
			}
			return nil
		}

		req, err := review.FromFiles(ctx, batch, pctx, bundleOptions(cfg))
		if err != nil {
			fail(err)
			return nil
		}
		runReview(ctx, req, cfg)
		return nil
	},
}

// dryRun lists the files that would be sent and the secrets redaction would
// remove from them, without calling a provider.
func dryRun(ctx context.Context, w io.Writer, batch intake.Batch, cfg config.Config) error {
	if err := batch.Err(); err != nil {
		return err
	}
	for _, p := range batch.Paths() {
		fmt.Fprintf(w, "  %s\n", p)
	}

	opts := bundleOptions(cfg)
	opts.RedactSecrets = false
	raw, err := intake.Bundle(ctx, batch.Accepted, opts)
	if err != nil {
		return fmt.Errorf("reading files: %w", err)
	}

	findings := redact.Scan(raw)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets detected.")
		return nil
	}
	verb := "would be redacted"
	if !cfg.Privacy.RedactSecrets {
		verb = "would be SENT (redaction disabled)"
	}
	for _, f := range findings {
		fmt.Fprintf(w, "%d %s match(es) %s\n", f.Count, f.Rule, verb)
	}
	return nil
}

func init() {
	reviewCmd.AddCommand(reviewSnippetCmd)
	reviewCmd.AddCommand(reviewDirCmd)

	for _, cmd := range []*cobra.Command{reviewSnippetCmd, reviewDirCmd} {
		addReviewFlags(cmd)
	}

	reviewDirCmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of reviewable files to send")
	reviewDirCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "List the files that would be sent and exit")
	reviewDirCmd.Flags().BoolVar(&flagGit, "git", false, "Only consider files git tracks or would track (honours .gitignore)")
}
