package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	orderagent "github.com/ninthbase/shopmate/agent/agents/order"
	productagent "github.com/ninthbase/shopmate/agent/agents/product"
	supportagent "github.com/ninthbase/shopmate/agent/agents/support"
	contractx "github.com/ninthbase/shopmate/agent/contract"
	"github.com/ninthbase/shopmate/agent/llm"
	"github.com/ninthbase/shopmate/agent/orchestrator"
	"github.com/ninthbase/shopmate/catalog"
	"github.com/ninthbase/shopmate/embedding"
	"github.com/ninthbase/shopmate/orders"
	configx "github.com/ninthbase/shopmate/pkg/config"
	"github.com/ninthbase/shopmate/rag"
)

// AppConfig selects the backing implementations. Everything defaults to
// the fully offline setup: hash embedder, embedded catalog, in-memory
// orders, no cache, no rephraser.
type AppConfig struct {
	LogLevel  string `envconfig:"LOG_LEVEL" split_words:"true" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" split_words:"true" default:"false"`

	Embedder    string `envconfig:"EMBEDDER" default:"hash"`
	CatalogPath string `envconfig:"CATALOG_PATH" split_words:"true"`
	Metric      string `envconfig:"SIMILARITY_METRIC" split_words:"true" default:"cosine"`
	TopK        int    `envconfig:"TOP_K" split_words:"true" default:"5"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" split_words:"true"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" split_words:"true"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" split_words:"true" default:"5m"`

	OrderStore   string        `envconfig:"ORDER_STORE" split_words:"true" default:"memory"`
	OrderTimeout time.Duration `envconfig:"ORDER_TIMEOUT" split_words:"true" default:"5s"`

	Rephrase bool `envconfig:"REPHRASE" default:"false"`
}

type app struct {
	orch     *orchestrator.Service
	products []catalog.Product
	closers  []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

func buildApp(ctx context.Context, cfg *AppConfig) (*app, error) {
	a := &app{}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	products, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	a.products = products

	metric, err := rag.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	index, err := rag.NewIndex(embedder.Dimension(), metric)
	if err != nil {
		return nil, err
	}
	if err := catalog.BuildIndex(ctx, embedder, index, products, 0); err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	log.Info().Int("products", index.Len()).Str("metric", string(metric)).Msg("catalog indexed")

	retrieverOpts := []rag.RetrieverOption{}
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		cache, err := rag.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, cache.Close)
		retrieverOpts = append(retrieverOpts, rag.WithCache(cache, cfg.CacheTTL))
	}
	retriever, err := rag.NewRetriever(embedder, index, retrieverOpts...)
	if err != nil {
		return nil, err
	}

	orderStore, err := buildOrderStore(cfg, a)
	if err != nil {
		return nil, err
	}

	var rephraser contractx.Rephraser
	if cfg.Rephrase {
		r, err := llm.NewRephraser(*configx.MustNew[llm.Config]("OPENAI"))
		if err != nil {
			return nil, fmt.Errorf("build rephraser: %w", err)
		}
		rephraser = r
	}

	orchCfg := configx.MustNew[orchestrator.Config]("ORCHESTRATOR")
	orch, err := orchestrator.New(
		[]contractx.Agent{
			orderagent.New(orderStore, cfg.OrderTimeout),
			productagent.New(retriever, cfg.TopK, products),
			supportagent.New(),
		},
		contractx.AgentSupport,
		rephraser,
		*orchCfg,
	)
	if err != nil {
		return nil, err
	}
	a.orch = orch

	return a, nil
}

func buildEmbedder(cfg *AppConfig) (embedding.Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Embedder)) {
	case "hash", "":
		return embedding.NewHashEmbedder(0), nil
	case "openai":
		return embedding.NewOpenAIEmbedder(*configx.MustNew[embedding.OpenAIConfig]("OPENAI"))
	default:
		return nil, fmt.Errorf("unknown embedder %q", cfg.Embedder)
	}
}

func loadCatalog(path string) ([]catalog.Product, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Sample(), nil
	}
	products, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return products, nil
}

func buildOrderStore(cfg *AppConfig, a *app) (orders.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.OrderStore)) {
	case "memory", "":
		return orders.NewMemoryStore(orders.Fixtures()), nil
	case "postgres":
		store, err := orders.NewPostgresStore(*configx.MustNew[orders.PostgresConfig]("POSTGRES"))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown order store %q", cfg.OrderStore)
	}
}
