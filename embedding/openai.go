package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultEmbedTimeout = 30 * time.Second

// OpenAIConfig configures the OpenAI-backed embedder.
type OpenAIConfig struct {
	APIKey    string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL   string        `envconfig:"BASE_URL" split_words:"true"`
	Model     string        `envconfig:"EMBEDDING_MODEL" split_words:"true" default:"text-embedding-3-small"`
	Dimension int           `envconfig:"EMBEDDING_DIMENSION" split_words:"true" default:"1536"`
	Timeout   time.Duration `envconfig:"EMBEDDING_TIMEOUT" split_words:"true" default:"30s"`
}

// OpenAIEmbedder calls the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
	timeout   time.Duration
}

func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.Dimension <= 0 {
		return nil, errors.New("embedding dimension must be > 0")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}

	model := openai.EmbeddingModel(strings.TrimSpace(cfg.Model))
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}

	client := openai.NewClient(opts...)
	return &OpenAIEmbedder{
		client:    &client,
		model:     model,
		dimension: cfg.Dimension,
		timeout:   timeout,
	}, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrUnavailable)
	}

	raw := resp.Data[0].Embedding
	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}
	if len(vec) != e.dimension {
		return nil, fmt.Errorf("embedding has length %d, expected %d", len(vec), e.dimension)
	}
	return vec, nil
}
