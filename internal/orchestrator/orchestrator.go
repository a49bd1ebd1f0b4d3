// Package orchestrator wires the Agent Classifier, Model Selector,
// Context Manager, Session Store, and Provider Adapter Set into the
// single-shot request pipeline described in SPEC_FULL.md §4.6, plus its
// interactive read-a-line loop.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"aifr/internal/agent"
	"aifr/internal/config"
	"aifr/internal/convo"
	"aifr/internal/envelope"
	"aifr/internal/execcapture"
	"aifr/internal/fileloader"
	"aifr/internal/logger"
	"aifr/internal/model"
	"aifr/internal/output"
	"aifr/internal/provider"
	"aifr/internal/session"
)

// Exit codes per spec.md §6.
const (
	ExitOK          = 0
	ExitUserError   = 1
	ExitParseError  = 2
	ExitInterrupted = 130
)

// Orchestrator holds the collaborators one invocation wires together.
// Provider is normally left nil so runOnce resolves it from Config via
// provider.New; tests set it directly to inject a stub adapter.
type Orchestrator struct {
	Config   *config.AppConfig
	Store    *session.Store
	Provider provider.Provider
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    *os.File
}

// New builds an Orchestrator from a resolved config and session store.
func New(cfg *config.AppConfig, store *session.Store) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		Store:  store,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run executes the full pipeline for one CLI invocation and returns the
// process exit code.
func (o *Orchestrator) Run(ctx context.Context, args Args) int {
	requestID := uuid.NewString()
	reqLog := logger.With("request_id", requestID)

	if args.Reset {
		if err := o.Store.Clear(); err != nil {
			fmt.Fprintln(o.Stderr, err)
			return ExitUserError
		}
		return ExitOK
	}

	if args.ListModels {
		for _, m := range model.AllModels() {
			fmt.Fprintln(o.Stdout, m)
		}
		return ExitOK
	}

	if args.Interactive {
		return o.runInteractive(ctx, args, reqLog)
	}

	state := o.Store.Load()
	_, exitCode := o.runOnce(ctx, args, state, args.Prompt, reqLog)
	return exitCode
}

// runInteractive loops over readline input, running the pipeline for
// each non-empty line, per spec.md §4.6's interactive mode.
func (o *Orchestrator) runInteractive(ctx context.Context, args Args, reqLog *log.Logger) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "aifr> ",
		Stdin:       o.Stdin,
		Stdout:      o.Stdout,
		Stderr:      o.Stderr,
		HistoryFile: "",
	})
	if err != nil {
		fmt.Fprintln(o.Stderr, err)
		return ExitUserError
	}
	defer func() { _ = rl.Close() }()

	state := o.Store.Load()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return ExitOK
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return ExitOK
		}

		lineArgs := args
		lineArgs.Prompt = line
		newState, exitCode := o.runOnce(ctx, lineArgs, state, line, reqLog)
		if exitCode == ExitInterrupted {
			return exitCode
		}
		state = newState
	}
}

// runOnce implements spec.md §4.6 steps 3-12 for a single prompt,
// returning the (possibly updated) session state and an exit code.
func (o *Orchestrator) runOnce(ctx context.Context, args Args, state convo.State, prompt string, reqLog *log.Logger) (convo.State, int) {
	var fileEnvelopes []string
	var maxFileBytes int
	for _, path := range args.FilePaths {
		content, err := fileloader.Load(ctx, path, o.Config.FileReadTimeout)
		if err != nil {
			fmt.Fprintln(o.Stderr, err)
			return state, ExitUserError
		}
		fileEnvelopes = append(fileEnvelopes, envelope.File(path, content))
		if len(content) > maxFileBytes {
			maxFileBytes = len(content)
		}
	}

	var consoleEnvelope string
	if args.ConsoleCmd != "" {
		result, err := execcapture.Run(ctx, args.ConsoleCmd, o.Config.CommandTimeout)
		if err != nil {
			fmt.Fprintln(o.Stderr, err)
			return state, ExitUserError
		}
		consoleEnvelope = envelope.Console(result.CombinedOutput)
	}

	var stdinEnvelope, stdinPrefix string
	if !args.Interactive && !output.IsTerminal(o.Stdin) {
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			fmt.Fprintln(o.Stderr, err)
			return state, ExitUserError
		}
		text := strings.ToValidUTF8(string(data), "�")
		if text != "" {
			stdinEnvelope = envelope.Stdin(text)
			if len(text) > 4096 {
				stdinPrefix = text[:4096]
			} else {
				stdinPrefix = text
			}
		}
	}

	userMessage := envelope.Join(append(append([]string{prompt}, fileEnvelopes...), consoleEnvelope, stdinEnvelope)...)

	classification := agent.Classify(prompt, agent.Signals{
		HasFile:      len(args.FilePaths) > 0,
		FileBytes:    maxFileBytes,
		HasConsole:   args.ConsoleCmd != "",
		StdinPrefix:  stdinPrefix,
		OverrideName: args.AgentOverride,
	}, o.Config.CustomAgents)

	if classification.Kind == agent.Custom && classification.SystemPrompt == "" {
		fmt.Fprintf(o.Stderr, "unknown custom agent %q\n", classification.Name)
		return state, ExitUserError
	}

	contextLimit := o.Config.ContextLimit
	if args.ContextLimitOverride > 0 {
		contextLimit = args.ContextLimitOverride
	}

	selection := model.Select(model.Request{
		Prompt:                 prompt,
		Provider:               o.Config.Provider,
		AgentKind:              string(classification.Kind),
		ExplicitModel:          firstNonEmpty(args.ModelOverride, o.Config.ModelDefault),
		CustomAgentModel:       classification.Model,
		Aliases:                o.Config.ModelAliases,
		TotalContextCharsEstim: len(userMessage),
		ContextLimit:           contextLimit,
	})
	if selection.EscalationWarning {
		fmt.Fprintln(o.Stderr, "warning: context limit exceeded but an explicit model override is in effect")
	}

	providerName := o.Config.Provider
	if selection.ProviderOverride != "" {
		providerName = selection.ProviderOverride
	}

	messages, escalate := convo.BuildMessages(classification.SystemPrompt, state, userMessage, convo.DefaultMaxTurns, contextLimit)
	chosenModel := selection.Model
	if escalate && !selection.Explicit {
		chosenModel = model.LargeContextModel
	}

	adapter := o.Provider
	if adapter == nil {
		var err error
		adapter, err = provider.New(providerName, o.Config.BaseURL)
		if err != nil {
			fmt.Fprintln(o.Stderr, err)
			return state, ExitUserError
		}
	}

	requestCtx, cancel := context.WithTimeout(ctx, o.Config.RequestTimeout)
	defer cancel()

	resp, err := adapter.Call(requestCtx, provider.Request{
		Model:    chosenModel,
		Messages: messages,
		APIKey:   o.Config.APIKey,
		BaseURL:  o.Config.BaseURL,
	})
	if err != nil {
		if requestCtx.Err() == context.Canceled {
			return state, ExitInterrupted
		}
		var ctxErr *provider.ContextLengthError
		if errors.As(err, &ctxErr) {
			if selection.Explicit {
				fmt.Fprintln(o.Stderr, err)
				return state, ExitUserError
			}
			reqLog.Debug("retrying with large-context model after context length error", "model", model.LargeContextModel)
			resp, err = adapter.Call(requestCtx, provider.Request{
				Model:    model.LargeContextModel,
				Messages: messages,
				APIKey:   o.Config.APIKey,
				BaseURL:  o.Config.BaseURL,
			})
			if err != nil {
				fmt.Fprintln(o.Stderr, err)
				return state, ExitUserError
			}
			chosenModel = model.LargeContextModel
		} else {
			fmt.Fprintln(o.Stderr, err)
			return state, ExitUserError
		}
	}

	newState := state.AppendTurn(prompt, resp.Content)
	if err := o.Store.Append(state, prompt, resp.Content); err != nil {
		reqLog.Warn("failed to persist session", "error", err)
	}

	if args.Stats {
		fmt.Fprintln(o.Stderr, statsLine(classification.Kind, chosenModel, resp))
	}

	isTTY := output.IsTerminal(osStdoutFile(o.Stdout))
	renderer := output.New(o.Stdout, isTTY && !args.Raw)
	if err := renderer.Write(resp.Content); err != nil {
		fmt.Fprintln(o.Stderr, err)
		return newState, ExitUserError
	}

	return newState, ExitOK
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func statsLine(kind agent.Kind, modelID string, resp *provider.Response) string {
	p, c, tot := "?", "?", "?"
	if resp.PromptTokens != nil {
		p = fmt.Sprintf("%d", *resp.PromptTokens)
	}
	if resp.CompletionTokens != nil {
		c = fmt.Sprintf("%d", *resp.CompletionTokens)
	}
	if resp.TotalTokens != nil {
		tot = fmt.Sprintf("%d", *resp.TotalTokens)
	}
	return fmt.Sprintf("[Agent: %s | Model: %s | Tokens: %s/%s/%s]", kind, modelID, p, c, tot)
}

func osStdoutFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return os.Stdout
}
