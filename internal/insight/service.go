package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"
)

// Fixed responses returned without contacting the provider, plus the
// fallback used when a call fails. Callers can display any of these
// directly.
const (
	FallbackNoKey       = "Tip: set an API key to enable AI analysis."
	FallbackNoSales     = "No sales recorded yet, nothing to analyze."
	FallbackUnavailable = "AI analysis is temporarily unavailable."
)

// maxSummarized caps how many recent sales are sent to the provider.
const maxSummarized = 10

// Service produces sales advisories with the full fallback contract:
// no credential and no sales short-circuit locally, and any provider
// failure degrades to a fixed string instead of an error.
type Service struct {
	newClient func(Config) (Client, error)
	cfg       Config
}

// NewService creates an insight service for the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, newClient: NewGeminiClient}
}

// Summarize returns a short advisory for the most recent sales. It never
// returns an error; every failure path resolves to a fallback string.
func (s *Service) Summarize(ctx context.Context, transactions []model.Transaction) string {
	if s.cfg.APIKey == "" {
		return FallbackNoKey
	}
	if len(transactions) == 0 {
		return FallbackNoSales
	}

	client, err := s.newClient(s.cfg)
	if err != nil {
		common.LogError(err, "failed to create insight client", nil)
		return FallbackUnavailable
	}

	prompt, err := buildPrompt(transactions)
	if err != nil {
		common.LogError(err, "failed to build insight prompt", nil)
		return FallbackUnavailable
	}

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		common.LogError(err, "insight request failed", nil)
		return FallbackUnavailable
	}
	return text
}

// saleSummary is the reduced form of a transaction sent to the provider.
type saleSummary struct {
	Items string `json:"items"`
	Time  string `json:"time"`
	Total int64  `json:"total"`
}

func buildPrompt(transactions []model.Transaction) (string, error) {
	recent := transactions
	if len(recent) > maxSummarized {
		recent = recent[:maxSummarized]
	}

	summaries := make([]saleSummary, 0, len(recent))
	for _, txn := range recent {
		parts := make([]string, 0, len(txn.Items))
		for _, item := range txn.Items {
			parts = append(parts, fmt.Sprintf("%sx%d", item.Name, item.Quantity))
		}
		summaries = append(summaries, saleSummary{
			Total: txn.Total,
			Items: strings.Join(parts, ", "),
			Time:  txn.Time().Format("15:04:05"),
		})
	}

	data, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("failed to encode sale summaries: %w", err)
	}

	return fmt.Sprintf(
		"You are an experienced food-and-beverage consultant. Based on the recent sales below, offer one short, actionable piece of business advice (about 50 words):\n%s",
		string(data),
	), nil
}
