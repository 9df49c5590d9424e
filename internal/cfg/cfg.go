// Package cfg holds Triago's application configuration, registered as
// flags and filled from TRIAGO_-prefixed environment variables by main.
package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Supported -llm-provider values.
const (
	ProviderOpenRouter = "openrouter"
	ProviderClaude     = "claude"
)

// Supported -audit-store values.
const (
	AuditStorePostgres = "postgres"
	AuditStoreMemory   = "memory"
)

// Config adds app-specific configuration fields to the common
// cfg.Registerable and cfg.Validatable interfaces.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	LLMProvider           string
	LLMTimeoutSeconds     int
	OpenRouterAPIKey      string
	OpenRouterModel       string
	OpenRouterBaseURL     string
	ClaudeAPIKey          string
	ClaudeModel           string
	AuditStore            string
	DatabaseURL           string
	AdminAPIToken         string
	SlackWebhookURL       string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.LLMProvider, "llm-provider", ProviderOpenRouter, "LLM backend for triage assessments (openrouter or claude)")
	fs.IntVar(&c.LLMTimeoutSeconds, "llm-timeout-seconds", 30, "upper bound for a single model call (1..300); expiry counts as upstream failure")
	fs.StringVar(&c.OpenRouterAPIKey, "openrouter-api-key", "", "API key for the OpenRouter chat-completions endpoint")
	fs.StringVar(&c.OpenRouterModel, "openrouter-model", "openai/gpt-4o-mini", "model for the OpenRouter provider")
	fs.StringVar(&c.OpenRouterBaseURL, "openrouter-base-url", "", "override for the OpenAI-compatible API root (empty = OpenRouter)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for the Claude provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "model for the Claude provider")
	fs.StringVar(&c.AuditStore, "audit-store", AuditStorePostgres, "audit trail backend (postgres or memory); memory is for dev only and must be chosen explicitly")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL for the audit trail (required with -audit-store=postgres)")
	fs.StringVar(&c.AdminAPIToken, "admin-api-token", "", "bearer token for the audit listing endpoint (empty disables the endpoint)")
	fs.StringVar(&c.SlackWebhookURL, "slack-webhook-url", "", "Slack webhook URL for high-urgency notifications")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	if c.LLMTimeoutSeconds <= 0 || c.LLMTimeoutSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid LLM_TIMEOUT_SECONDS %d (must be 1..300)", c.LLMTimeoutSeconds))
	}

	// The selected provider's credential is required; a missing key is
	// a startup failure, never a silent default.
	switch c.LLMProvider {
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			errs = append(errs, errors.New("OPENROUTER_API_KEY is required with -llm-provider=openrouter"))
		}
		if c.OpenRouterModel == "" {
			errs = append(errs, errors.New("OPENROUTER_MODEL is required with -llm-provider=openrouter"))
		}
	case ProviderClaude:
		if c.ClaudeAPIKey == "" {
			errs = append(errs, errors.New("CLAUDE_API_KEY is required with -llm-provider=claude"))
		}
		if c.ClaudeModel == "" {
			errs = append(errs, errors.New("CLAUDE_MODEL is required with -llm-provider=claude"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid LLM_PROVIDER %q (must be %s or %s)", c.LLMProvider, ProviderOpenRouter, ProviderClaude))
	}

	switch c.AuditStore {
	case AuditStorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required with -audit-store=postgres"))
		}
	case AuditStoreMemory:
		// dev only, nothing further to check
	default:
		errs = append(errs, fmt.Errorf("invalid AUDIT_STORE %q (must be %s or %s)", c.AuditStore, AuditStorePostgres, AuditStoreMemory))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
