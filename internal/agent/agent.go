// Package agent classifies a request into an AgentKind and resolves the
// matching system prompt, per SPEC_FULL.md §4.2. Classification is a pure
// function of its inputs; the fixed prompts are data, not code, following
// the teacher's embedded-YAML pattern for display/prompt text.
package agent

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies which system prompt a request should use.
type Kind string

const (
	Debugger  Kind = "DEBUGGER"
	Coder     Kind = "CODER"
	Creative  Kind = "CREATIVE"
	Summarizer Kind = "SUMMARIZER"
	Default   Kind = "DEFAULT"
	Custom    Kind = "CUSTOM"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptEntry struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

var registry map[string]promptEntry

func init() {
	registry = make(map[string]promptEntry)
	if err := yaml.Unmarshal(promptsYAML, &registry); err != nil {
		panic(fmt.Sprintf("agent: embedded prompts.yaml is malformed: %v", err))
	}
}

var (
	debugKeywords    = regexp.MustCompile(`(?i)\b(błąd|error|debug|fix|fail|exception|traceback|broken)\b`)
	coderKeywords    = regexp.MustCompile(`(?i)\b(kod|code|function|refactor|implement|klasa|class)\b`)
	creativeKeywords = regexp.MustCompile(`(?i)\b(opowiadanie|wiersz|story|poem|create|napisz|imagine)\b`)
	summaryKeywords  = regexp.MustCompile(`(?i)\b(podsumuj|streść|summarize|tldr|explain|wytłumacz)\b`)

	stderrMarkers = []string{"Traceback", "Error:", "Exception", "FAILED", "at line"}
)

// LargeFileThresholdBytes is the file-size trigger for SUMMARIZER, per
// spec.md §4.2 ("file bytes > threshold, e.g. ≥64 KiB").
const LargeFileThresholdBytes = 64 * 1024

// Signals captures everything the classifier needs beyond the raw prompt.
type Signals struct {
	HasFile      bool
	FileBytes    int
	HasConsole   bool
	StdinPrefix  string // first 4 KiB of captured stdin, if any
	OverrideName string // --agent <name>, empty when not set
}

// CustomAgents maps a --agent name to its user-supplied prompt/model, as
// parsed into AppConfig.custom_agents.
type CustomAgents map[string]CustomAgent

// CustomAgent is one entry of AppConfig.custom_agents.
type CustomAgent struct {
	SystemPrompt string
	Model        string
}

// Classification is the classifier's output.
type Classification struct {
	Kind         Kind
	Name         string // CUSTOM(name)'s name, empty otherwise
	SystemPrompt string
	Model        string // set only for CUSTOM agents with their own model
}

// Classify resolves an AgentKind and its system prompt. An explicit
// --agent override bypasses keyword classification entirely; an unknown
// override name still returns CUSTOM but with an empty system prompt,
// which the caller should treat as a config error.
func Classify(prompt string, s Signals, customAgents CustomAgents) Classification {
	if s.OverrideName != "" {
		if custom, ok := customAgents[s.OverrideName]; ok {
			return Classification{Kind: Custom, Name: s.OverrideName, SystemPrompt: custom.SystemPrompt, Model: custom.Model}
		}
		return Classification{Kind: Custom, Name: s.OverrideName}
	}

	normalized := strings.ToLower(prompt)

	if s.HasConsole || looksLikeStderr(s.StdinPrefix) || debugKeywords.MatchString(normalized) {
		return fromRegistry(Debugger)
	}
	if s.HasFile && coderKeywords.MatchString(normalized) {
		return fromRegistry(Coder)
	}
	if creativeKeywords.MatchString(normalized) {
		return fromRegistry(Creative)
	}
	if summaryKeywords.MatchString(normalized) || (s.HasFile && s.FileBytes > LargeFileThresholdBytes) {
		return fromRegistry(Summarizer)
	}
	return fromRegistry(Default)
}

func fromRegistry(kind Kind) Classification {
	entry := registry[strings.ToLower(string(kind))]
	return Classification{Kind: kind, SystemPrompt: entry.SystemPrompt}
}

func looksLikeStderr(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, marker := range stderrMarkers {
		if strings.Contains(prefix, marker) {
			return true
		}
	}
	return false
}

// Name returns the human-readable display name for a Kind, as listed in
// prompts.yaml ("Custom" for custom agents). The --stats line prints the
// Kind itself, not this name.
func Name(k Kind) string {
	if k == Custom {
		return "Custom"
	}
	entry, ok := registry[strings.ToLower(string(k))]
	if !ok {
		return string(k)
	}
	return entry.Name
}
