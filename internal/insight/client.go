// Package insight turns recent sales into a short natural-language
// advisory using an external text-generation provider. The package never
// surfaces provider failures to its callers: every precondition and
// error path degrades to one of three fixed strings.
package insight

import (
	"context"
)

// Client defines the interface for text-generation providers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds provider configuration.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
