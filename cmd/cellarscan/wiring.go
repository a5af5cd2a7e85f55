package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaresco/cellarscan/internal/llm"
	"github.com/dmaresco/cellarscan/internal/llm/anthropic"
	"github.com/dmaresco/cellarscan/internal/match"
	"github.com/dmaresco/cellarscan/internal/ocr"
	"github.com/dmaresco/cellarscan/internal/pipeline"
	"github.com/dmaresco/cellarscan/internal/repository"
)

// env bundles the wired stages every command needs.
type env struct {
	Pool     *pgxpool.Pool
	Wines    repository.WineRepository
	Pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

func (e *env) Close() {
	repository.Close(e.Pool, e.logger)
}

// initEnv connects the database and builds the extraction pipeline from the
// loaded configuration.
func initEnv(ctx context.Context) (*env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := repository.HealthCheck(ctx, pool, 3*time.Second, logger); err != nil {
		repository.Close(pool, logger)
		return nil, fmt.Errorf("database health: %w", err)
	}

	detector, err := ocr.NewVisionDetector(ctx, ocr.Config{
		CredentialsFile: cfg.Vision.CredentialsFile,
		APIKey:          cfg.Vision.APIKey,
	}, logger)
	if err != nil {
		repository.Close(pool, logger)
		return nil, fmt.Errorf("init vision: %w", err)
	}

	completer := anthropic.NewClient(anthropic.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	interpreter := llm.NewInterpreter(completer, logger)

	wines := repository.NewWineRepository(pool, logger)
	extractions := repository.NewExtractionRepository(pool, logger)
	matcher := match.NewMatcher(wines, logger)

	p := pipeline.New(detector, interpreter, extractions, matcher, cfg.Pipeline.MinTextLength, logger)

	return &env{
		Pool:     pool,
		Wines:    wines,
		Pipeline: p,
		logger:   logger,
	}, nil
}
