// Package config loads AppConfig by merging a config file, environment
// variables, and CLI overrides through spf13/viper, with an optional
// .env file (joho/godotenv) loaded first as an ambient convenience,
// grounded on original_source/aifr/config.py and the teacher's viper
// binding in cmd/neuro/main.go.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"aifr/internal/agent"
	"aifr/internal/logger"
	"aifr/internal/provider"
)

// DefaultContextLimit is the approximate token budget used when neither
// the config file nor a CLI override sets one.
const DefaultContextLimit = 6000

// Default suspension-point timeouts, per spec.md §5; configurable via
// AppConfig per SPEC_FULL.md §3 without changing these defaults.
const (
	DefaultRequestTimeout  = 120 * time.Second
	DefaultCommandTimeout  = 30 * time.Second
	DefaultFileReadTimeout = 10 * time.Second
)

// AppConfig is the fully resolved, read-only configuration for one
// invocation, per spec.md §3.
type AppConfig struct {
	APIKey       string
	Provider     string
	ModelDefault string
	ContextLimit int
	BaseURL      string
	ModelAliases map[string]string
	CustomAgents agent.CustomAgents

	RequestTimeout  time.Duration
	CommandTimeout  time.Duration
	FileReadTimeout time.Duration
}

// Load reads a .env file (if present in the working directory), then the
// config file at <user-config>/aifr/config.json, merges environment
// variables, and returns the resolved AppConfig. Overrides (e.g. from
// CLI flags) can be applied to the returned struct by the caller.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	configDir, err := os.UserConfigDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(configDir, "aifr"))
	}

	v.SetDefault("context_limit", DefaultContextLimit)
	v.SetDefault("request_timeout_seconds", int(DefaultRequestTimeout.Seconds()))
	v.SetDefault("command_timeout_seconds", int(DefaultCommandTimeout.Seconds()))
	v.SetDefault("file_read_timeout_seconds", int(DefaultFileReadTimeout.Seconds()))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn("failed to read config file, using defaults", "error", err)
		}
	}

	// Auto-detect the provider from environment variables only when the
	// config file itself leaves "provider" unset, mirroring
	// original_source/aifr/config.py's `if provider == sherlock and not
	// data.get("provider")` check.
	resolvedProvider := v.GetString("provider")
	if resolvedProvider == "" {
		resolvedProvider = detectProviderFromEnv()
	}

	apiKey := resolveAPIKey(v, resolvedProvider)

	aliases := v.GetStringMapString("model_aliases")
	customAgents := parseCustomAgents(v.GetStringMap("custom_agents"))

	cfg := &AppConfig{
		APIKey:       apiKey,
		Provider:     resolvedProvider,
		ModelDefault: v.GetString("model"),
		ContextLimit: v.GetInt("context_limit"),
		BaseURL:      v.GetString("base_url"),
		ModelAliases: aliases,
		CustomAgents: customAgents,

		RequestTimeout:  time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
		CommandTimeout:  time.Duration(v.GetInt("command_timeout_seconds")) * time.Second,
		FileReadTimeout: time.Duration(v.GetInt("file_read_timeout_seconds")) * time.Second,
	}

	if cfg.APIKey == "" {
		return nil, &provider.ConfigError{Reason: "no API key set (SHERLOCK_API_KEY/OPENAI_API_KEY/BRAVE_API_KEY/OPENWEBUI_API_KEY or config api_key)"}
	}
	if cfg.Provider == string(provider.OpenWebUI) && cfg.BaseURL == "" {
		return nil, &provider.ConfigError{Reason: "openwebui provider requires base_url"}
	}

	return cfg, nil
}

// detectProviderFromEnv implements spec.md §6's priority order when the
// config file leaves provider unset: explicit config wins (handled by
// the caller before this is invoked); otherwise OPENAI > BRAVE >
// OPENWEBUI > SHERLOCK.
func detectProviderFromEnv() string {
	switch {
	case os.Getenv("OPENAI_API_KEY") != "":
		return string(provider.OpenAI)
	case os.Getenv("BRAVE_API_KEY") != "":
		return string(provider.Brave)
	case os.Getenv("OPENWEBUI_API_KEY") != "":
		return string(provider.OpenWebUI)
	default:
		return string(provider.Sherlock)
	}
}

func resolveAPIKey(v *viper.Viper, resolvedProvider string) string {
	if configKey := v.GetString("api_key"); configKey != "" {
		return configKey
	}
	switch resolvedProvider {
	case string(provider.OpenAI):
		return os.Getenv("OPENAI_API_KEY")
	case string(provider.Brave):
		return os.Getenv("BRAVE_API_KEY")
	case string(provider.OpenWebUI):
		return os.Getenv("OPENWEBUI_API_KEY")
	default:
		return os.Getenv("SHERLOCK_API_KEY")
	}
}

func parseCustomAgents(raw map[string]interface{}) agent.CustomAgents {
	out := make(agent.CustomAgents, len(raw))
	for name, v := range raw {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		var custom agent.CustomAgent
		if sp, ok := entry["system_prompt"].(string); ok {
			custom.SystemPrompt = sp
		}
		if model, ok := entry["model"].(string); ok {
			custom.Model = model
		}
		out[name] = custom
	}
	return out
}

// Path returns the on-disk config file location, for diagnostics.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "aifr", "config.json"), nil
}
