// Package app wires configuration, stores, the completion client and the
// HTTP surface together.
package app

import (
	"context"
	"fmt"
	"log"

	"stocklens/internal/config"
	"stocklens/internal/handler"
	"stocklens/internal/insights"
	"stocklens/internal/llmclient"
	productrepo "stocklens/internal/repository/product"
	reportrepo "stocklens/internal/repository/report"
	"stocklens/internal/server"
)

type App struct {
	server *server.Server
	client llmclient.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := newProductStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init product store: %w", err)
	}

	client, err := newCompletionClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init completion client: %w", err)
	}

	archive := newReportStore(cfg)
	broker := insights.NewEventBroker()
	pipeline := insights.New(store, client, archive, broker)

	productHandler := handler.NewProductHandler(store)
	insightsHandler := handler.NewInsightsHandler(pipeline)
	eventsHandler := handler.NewEventsHandler(broker)

	mux := server.NewMux(productHandler, insightsHandler, eventsHandler)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, client: client}, nil
}

func newProductStore(cfg *config.Config) (productrepo.Store, error) {
	var origin productrepo.Store
	if cfg.ProductStoreDSN != "" {
		pg, err := productrepo.NewPostgres(cfg.ProductStoreDSN)
		if err != nil {
			return nil, err
		}
		origin = pg
	} else {
		log.Printf("no PRODUCT_STORE_PG_DSN configured, using in-memory product store")
		origin = productrepo.NewMemoryStore()
	}
	return productrepo.NewCached(origin, 1024)
}

func newCompletionClient(ctx context.Context, cfg *config.Config) (llmclient.Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return llmclient.NewGeminiClient(ctx, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	case "fake":
		return llmclient.NewFakeClient(""), nil
	default:
		return llmclient.NewGroqClient(llmclient.GroqConfig{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		})
	}
}

func newReportStore(cfg *config.Config) reportrepo.Store {
	if !cfg.Archive.Enabled {
		return reportrepo.NewMemoryStore()
	}
	s3, err := reportrepo.NewS3Store(reportrepo.S3Config{
		Endpoint:  cfg.Archive.Endpoint,
		Region:    cfg.Archive.Region,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
		Bucket:    cfg.Archive.Bucket,
		UseSSL:    cfg.Archive.UseSSL,
	})
	if err != nil {
		log.Printf("diagnostics archive disabled: %v", err)
		return reportrepo.NewMemoryStore()
	}
	return s3
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	_ = a.client.Close()
	return a.server.Shutdown(ctx)
}
