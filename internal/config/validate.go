package config

import (
	"fmt"
	"strings"
)

// Validate checks startup preconditions. A missing OpenAI credential is fatal:
// the proxy cannot serve traffic without it.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		return fmt.Errorf("openai.api_key is required (set OPENAI_API_KEY)")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0, got %d", c.HistoryLimit)
	}
	if c.SnapshotRows <= 0 {
		return fmt.Errorf("snapshot_rows must be > 0, got %d", c.SnapshotRows)
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("openai.max_tokens must be > 0, got %d", c.OpenAI.MaxTokens)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("openai.temperature must be within [0,2], got %f", c.OpenAI.Temperature)
	}
	if c.OpenAI.Timeout <= 0 {
		return fmt.Errorf("openai.timeout must be > 0, got %s", c.OpenAI.Timeout)
	}
	return nil
}
