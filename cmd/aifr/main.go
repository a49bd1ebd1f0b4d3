// Package main provides the aifr CLI entry point: a terminal assistant
// that bridges a shell user's prompt, files, and command output to a
// remote LLM backend and prints the completed reply to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aifr/internal/banner"
	"aifr/internal/config"
	"aifr/internal/logger"
	"aifr/internal/orchestrator"
	"aifr/internal/output"
	"aifr/internal/session"
	"aifr/internal/version"
)

var (
	flagPrompt       string
	flagFiles        []string
	flagConsole      string
	flagModel        string
	flagContextLimit int
	flagAgent        string
	flagReset        bool
	flagStats        bool
	flagRaw          bool
	flagListModels   bool
	flagSession      string
	flagLogLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "aifr [prompt]",
	Short: "aifr - a terminal bridge to remote LLM backends",
	Long: `aifr sends a prompt, optionally enriched with file contents and captured
command output, to a configured LLM provider and prints the reply.
With no prompt argument and a TTY stdin, it drops into an interactive loop.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagPrompt, "prompt", "p", "", "prompt text (alternative to the positional argument)")
	rootCmd.Flags().StringArrayVarP(&flagFiles, "file", "f", nil, "attach a file's contents (repeatable)")
	rootCmd.Flags().StringVarP(&flagConsole, "console", "c", "", "run a shell command and attach its combined output")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "override the selected model (id, alias, or provider/id)")
	rootCmd.Flags().IntVar(&flagContextLimit, "context-limit", 0, "override the token budget for this invocation")
	rootCmd.Flags().StringVar(&flagAgent, "agent", "", "use the custom agent of this name from config (bypasses classification)")
	rootCmd.Flags().BoolVar(&flagReset, "reset", false, "clear the persisted session and exit")
	rootCmd.Flags().BoolVar(&flagReset, "new", false, "alias for --reset")
	rootCmd.Flags().BoolVar(&flagStats, "stats", false, "print an [Agent | Model | Tokens] line to stderr")
	rootCmd.Flags().BoolVar(&flagStats, "info", false, "alias for --stats")
	rootCmd.Flags().BoolVarP(&flagRaw, "raw", "r", false, "never colorize output, even on a TTY")
	rootCmd.Flags().BoolVar(&flagListModels, "list-models", false, "print the known model catalog and exit")
	rootCmd.Flags().StringVar(&flagSession, "session", "", "use a named session instead of the default")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "override AIFR_LOG_LEVEL (debug|info|warn|error)")
	rootCmd.Flags().Bool("version", false, "print version information and exit")
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	code := 0
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(exitCode); ok {
			return int(exitErr)
		}
		fmt.Fprintln(os.Stderr, err)
		code = orchestrator.ExitParseError
	}
	return code
}

// exitCode lets RunE communicate a specific process exit code (0, 1, or
// 130) through cobra's error return without printing anything extra.
type exitCode int

func (e exitCode) Error() string { return "" }

func run(cmd *cobra.Command, args []string) error {
	logger.Configure(flagLogLevel)

	if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
		printVersion()
		return nil
	}

	prompt := flagPrompt
	if prompt == "" && len(args) > 0 {
		prompt = args[0]
	}

	interactive := prompt == "" && !flagReset && !flagListModels && output.IsTerminal(os.Stdin)

	cliArgs := orchestrator.Args{
		Prompt:               prompt,
		FilePaths:            flagFiles,
		ConsoleCmd:           flagConsole,
		ModelOverride:        flagModel,
		ContextLimitOverride: flagContextLimit,
		AgentOverride:        flagAgent,
		Stats:                flagStats,
		Reset:                flagReset,
		Raw:                  flagRaw,
		ListModels:           flagListModels,
		Interactive:          interactive,
		SessionName:          flagSession,
	}

	store, err := resolveStore(flagSession)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(orchestrator.ExitUserError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --reset and --list-models are answered entirely from the session
	// store / static catalog, per spec.md §4.6's step order ("parse
	// arguments; if --reset, clear session and exit 0" comes before
	// "load config"). Neither touches AppConfig, so they must not be
	// gated behind config.Load()'s API-key check.
	if flagReset || flagListModels {
		orch := orchestrator.New(nil, store)
		code := orch.Run(ctx, cliArgs)
		if code != orchestrator.ExitOK {
			return exitCode(code)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(orchestrator.ExitUserError)
	}

	orch := orchestrator.New(cfg, store)
	code := orch.Run(ctx, cliArgs)
	if code != orchestrator.ExitOK {
		return exitCode(code)
	}
	return nil
}

func resolveStore(name string) (*session.Store, error) {
	if name != "" {
		return session.Named(name)
	}
	return session.Default()
}

func printVersion() {
	info, err := version.GetInfo()
	if err != nil {
		fmt.Fprintln(os.Stdout, version.GetFormattedVersion())
		return
	}
	if output.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stdout, banner.Version(info.Version))
		return
	}
	fmt.Fprintln(os.Stdout, version.GetDetailedVersion())
}
