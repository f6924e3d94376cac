package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of planning task being performed.
type TaskType string

const (
	TaskBreakdown  TaskType = "breakdown"
	TaskSchedule   TaskType = "schedule"
	TaskAdaptation TaskType = "adaptation"
	TaskSummary    TaskType = "summary"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the planning client.
type Config struct {
	Enabled    bool
	Endpoint   string
	APIKey     string
	Model      string
	Referer    string
	Title      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The client is
// enabled only when an API key is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Endpoint:   "https://openrouter.ai/api/v1",
		Model:      "openai/gpt-4o",
		Referer:    "http://localhost:5000",
		Title:      "cramplan",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskBreakdown:  {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 30000},
			TaskSchedule:   {Temperature: 0.7, MaxTokens: 2000, TimeoutMs: 30000},
			TaskAdaptation: {Temperature: 0.7, MaxTokens: 2000, TimeoutMs: 30000},
			TaskSummary:    {Temperature: 0.7, MaxTokens: 1000, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CRAMPLAN_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.Enabled = true
	}
	if v := os.Getenv("CRAMPLAN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CRAMPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CRAMPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CRAMPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CRAMPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type, in
// milliseconds. Uses the task-specific timeout if set, otherwise the global
// timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
