// Package llm provides the optional chat-completion rephraser that turns
// structured agent output into conversational prose. The orchestrator
// works without it; a nil rephraser keeps replies structured.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ninthbase/shopmate/agent/prompt"
)

type Config struct {
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	MaxTokens   int64         `envconfig:"MAX_TOKENS" split_words:"true" default:"500"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.4"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Rephraser rewrites structured agent replies in a warmer register while
// keeping every fact intact.
type Rephraser struct {
	client      *openai.Client
	model       openai.ChatModel
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	system      string
}

func NewRephraser(cfg Config) (*Rephraser, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	client := openai.NewClient(opts...)
	return &Rephraser{
		client:      &client,
		model:       openai.ChatModel(strings.TrimSpace(cfg.Model)),
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		system:      prompt.Load().Rephraser,
	}, nil
}

func (r *Rephraser) Rephrase(ctx context.Context, structured string) (string, error) {
	if strings.TrimSpace(structured) == "" {
		return structured, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(r.system),
			openai.UserMessage(structured),
		},
		MaxTokens:   openai.Int(r.maxTokens),
		Temperature: openai.Float(r.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("rephrase completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("rephrase completion: empty choices")
	}

	polished := strings.TrimSpace(resp.Choices[0].Message.Content)
	if polished == "" {
		return "", errors.New("rephrase completion: empty content")
	}
	return polished, nil
}
