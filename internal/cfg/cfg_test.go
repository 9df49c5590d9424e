package cfg

import (
	"flag"
	"strings"
	"testing"
)

// validBase returns a Config with all required fields set to valid values.
func validBase() Config {
	return Config{
		DrainSeconds:          60,
		ShutdownBudgetSeconds: 90,
		APIPort:               8080,
		LLMProvider:           ProviderOpenRouter,
		LLMTimeoutSeconds:     30,
		OpenRouterAPIKey:      "sk-or-test-key",
		OpenRouterModel:       "openai/gpt-4o-mini",
		AuditStore:            AuditStoreMemory,
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse empty args: %v", err)
	}

	if c.DrainSeconds != 60 {
		t.Errorf("DrainSeconds = %d, want 60", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 90 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 90", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.LLMProvider != ProviderOpenRouter {
		t.Errorf("LLMProvider = %q, want %q", c.LLMProvider, ProviderOpenRouter)
	}
	if c.LLMTimeoutSeconds != 30 {
		t.Errorf("LLMTimeoutSeconds = %d, want 30", c.LLMTimeoutSeconds)
	}
	if c.OpenRouterModel != "openai/gpt-4o-mini" {
		t.Errorf("OpenRouterModel = %q, want %q", c.OpenRouterModel, "openai/gpt-4o-mini")
	}
	if c.ClaudeModel != "claude-sonnet-4-20250514" {
		t.Errorf("ClaudeModel = %q, want %q", c.ClaudeModel, "claude-sonnet-4-20250514")
	}
	if c.AuditStore != AuditStorePostgres {
		t.Errorf("AuditStore = %q, want %q", c.AuditStore, AuditStorePostgres)
	}
	if c.AdminAPIToken != "" {
		t.Errorf("AdminAPIToken = %q, want empty", c.AdminAPIToken)
	}
}

func TestRegisterFlags_Override(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	args := []string{
		"-drain-seconds", "30",
		"-shutdown-budget-seconds", "120",
		"-http-port", "9090",
		"-llm-provider", "claude",
		"-llm-timeout-seconds", "45",
		"-claude-api-key", "sk-override",
		"-claude-model", "claude-opus-4-20250514",
		"-audit-store", "memory",
		"-admin-api-token", "t0ken",
		"-slack-webhook-url", "https://hooks.slack.com/services/T/B/X",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if c.DrainSeconds != 30 {
		t.Errorf("DrainSeconds = %d, want 30", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 120 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 120", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", c.APIPort)
	}
	if c.LLMProvider != ProviderClaude {
		t.Errorf("LLMProvider = %q, want %q", c.LLMProvider, ProviderClaude)
	}
	if c.LLMTimeoutSeconds != 45 {
		t.Errorf("LLMTimeoutSeconds = %d, want 45", c.LLMTimeoutSeconds)
	}
	if c.ClaudeAPIKey != "sk-override" {
		t.Errorf("ClaudeAPIKey = %q, want %q", c.ClaudeAPIKey, "sk-override")
	}
	if c.AuditStore != AuditStoreMemory {
		t.Errorf("AuditStore = %q, want %q", c.AuditStore, AuditStoreMemory)
	}
	if c.AdminAPIToken != "t0ken" {
		t.Errorf("AdminAPIToken = %q, want %q", c.AdminAPIToken, "t0ken")
	}
	if c.SlackWebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("SlackWebhookURL = %q", c.SlackWebhookURL)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	claudeBase := validBase()
	claudeBase.LLMProvider = ProviderClaude
	claudeBase.ClaudeAPIKey = "sk-test"
	claudeBase.ClaudeModel = "claude-sonnet-4-20250514"

	pgBase := validBase()
	pgBase.AuditStore = AuditStorePostgres
	pgBase.DatabaseURL = "postgres://triago:pw@localhost:5432/triago"

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errSubstr []string
	}{
		{
			name:    "base is valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "minimum valid values",
			mutate: func(c *Config) {
				c.DrainSeconds = 1
				c.ShutdownBudgetSeconds = 2
				c.APIPort = 1
				c.LLMTimeoutSeconds = 1
			},
			wantErr: false,
		},
		{
			name: "maximum valid values",
			mutate: func(c *Config) {
				c.DrainSeconds = 299
				c.ShutdownBudgetSeconds = 300
				c.APIPort = 65535
				c.LLMTimeoutSeconds = 300
			},
			wantErr: false,
		},
		{
			name:      "drain zero",
			mutate:    func(c *Config) { c.DrainSeconds = 0 },
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name:      "drain too large",
			mutate:    func(c *Config) { c.DrainSeconds = 301 },
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name:      "shutdown budget not greater than drain",
			mutate:    func(c *Config) { c.ShutdownBudgetSeconds = 60 },
			wantErr:   true,
			errSubstr: []string{"SHUTDOWN_BUDGET_SECONDS", "DRAIN_SECONDS"},
		},
		{
			name:      "port zero",
			mutate:    func(c *Config) { c.APIPort = 0 },
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "port too large",
			mutate:    func(c *Config) { c.APIPort = 70000 },
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "llm timeout zero",
			mutate:    func(c *Config) { c.LLMTimeoutSeconds = 0 },
			wantErr:   true,
			errSubstr: []string{"LLM_TIMEOUT_SECONDS"},
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.LLMProvider = "bard" },
			wantErr:   true,
			errSubstr: []string{"LLM_PROVIDER"},
		},
		{
			name:      "openrouter without key",
			mutate:    func(c *Config) { c.OpenRouterAPIKey = "" },
			wantErr:   true,
			errSubstr: []string{"OPENROUTER_API_KEY"},
		},
		{
			name:      "openrouter without model",
			mutate:    func(c *Config) { c.OpenRouterModel = "" },
			wantErr:   true,
			errSubstr: []string{"OPENROUTER_MODEL"},
		},
		{
			name:      "unknown audit store",
			mutate:    func(c *Config) { c.AuditStore = "sqlite" },
			wantErr:   true,
			errSubstr: []string{"AUDIT_STORE"},
		},
		{
			name: "multiple errors joined",
			mutate: func(c *Config) {
				c.DrainSeconds = 0
				c.APIPort = 0
				c.OpenRouterAPIKey = ""
			},
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS", "HTTP_PORT", "OPENROUTER_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validBase()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			for _, sub := range tt.errSubstr {
				if !strings.Contains(err.Error(), sub) {
					t.Errorf("error %q missing substring %q", err.Error(), sub)
				}
			}
		})
	}

	t.Run("claude provider requires key", func(t *testing.T) {
		t.Parallel()
		c := claudeBase
		c.ClaudeAPIKey = ""
		err := c.Validate()
		if err == nil || !strings.Contains(err.Error(), "CLAUDE_API_KEY") {
			t.Errorf("Validate() = %v, want CLAUDE_API_KEY error", err)
		}
	})

	t.Run("claude provider valid with key", func(t *testing.T) {
		t.Parallel()
		if err := claudeBase.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("postgres store requires url", func(t *testing.T) {
		t.Parallel()
		c := pgBase
		c.DatabaseURL = ""
		err := c.Validate()
		if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
			t.Errorf("Validate() = %v, want DATABASE_URL error", err)
		}
	})

	t.Run("postgres store valid with url", func(t *testing.T) {
		t.Parallel()
		if err := pgBase.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}
