package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/guardian/internal/config"
	"github.com/dshills/guardian/internal/intake"
	"github.com/dshills/guardian/internal/providers"
	"github.com/dshills/guardian/internal/review"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitTooManyFiles = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "guardian",
	Short: "Friendly AI code review for pasted code and project folders",
	Long: "Guardian sends source code and optional project context to an LLM and renders " +
		"its review. Use the review subcommands from a terminal or serve the browser UI.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// exitCodeFor maps a review failure to the process exit code.
func exitCodeFor(err error) int {
	var inputErr *review.InputError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, intake.ErrTooManyFiles):
		return ExitTooManyFiles
	case errors.As(err, &inputErr), errors.Is(err, review.ErrEmptyCode):
		return ExitUsageError
	case providers.IsAuthError(err):
		return ExitAuthError
	default:
		return ExitRuntimeError
	}
}

// fail reports err on stderr and records its exit code.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = exitCodeFor(err)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print guardian version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "guardian version %s\n", version)
	},
}
