package agents

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/clinsim/interview-controller/internal/llm"
)

// #region retry

const (
	maxGenerateRetries = 2
	retryBackoff       = 500 * time.Millisecond
)

// generateWithFallback runs one completion with bounded retry and backoff.
// After exhausting retries it returns the deterministic fallback string and
// degraded=true instead of propagating the fault into the state machine.
func generateWithFallback(
	ctx context.Context,
	gen Generator,
	role Role,
	language string,
	messages []llm.Message,
	fallback string,
) (text string, degraded bool) {
	cfg := RoleConfigs[role]
	system := SystemPrompt(role, language)
	params := llm.Params{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

	backoff := retryBackoff
	for attempt := 0; attempt <= maxGenerateRetries; attempt++ {
		out, err := gen.Generate(ctx, system, messages, params)
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out), false
		}
		if err != nil {
			log.Printf("[LLM] %s generate failed (attempt %d/%d): %v",
				role, attempt+1, maxGenerateRetries+1, err)
		}
		if attempt < maxGenerateRetries {
			select {
			case <-ctx.Done():
				return fallback, true
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	log.Printf("[LLM] %s generate exhausted retries, using fallback", role)
	return fallback, true
}

// #endregion retry
