package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/veridex/internal/cache"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/provider"
	"github.com/ppiankov/veridex/internal/research"
	"github.com/ppiankov/veridex/internal/store"
	"github.com/ppiankov/veridex/internal/verify"
)

// app wires the configured collaborators together for a command invocation
type app struct {
	cfg        *model.Config
	logger     *zap.Logger
	store      *store.Store
	aggregator *research.Aggregator
	checker    *verify.FactChecker
}

// newApp builds the aggregator and fact checker from configuration
func newApp() (*app, error) {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	providers := provider.Build(cfg.Providers, logger)
	memory := cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
	aggregator := research.NewAggregator(cfg, providers, memory, st, logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		aggregator: aggregator,
		checker:    verify.NewFactChecker(cfg, aggregator, logger),
	}, nil
}

// Close releases held resources
func (a *app) Close() {
	_ = a.logger.Sync()
	_ = a.store.Close()
}

// loadConfig assembles configuration from defaults, config file, environment
// variables, and flags - highest priority last
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("database.path"); v != "" {
		cfg.Database.Path = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetInt("research.max_results"); v > 0 {
		cfg.Research.MaxResults = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetString("providers.answer_engine.model"); v != "" {
		cfg.Providers.AnswerEngine.Model = v
	}
	if v := viper.GetString("providers.news_index.endpoint"); v != "" {
		cfg.Providers.NewsIndex.Endpoint = v
	}

	// Credentials come from the environment, never from the config file
	cfg.Providers.AnswerEngine.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Providers.NewsIndex.APIKey = os.Getenv("NEWS_API_KEY")

	cfg.Output.Verbose = viper.GetBool("verbose")

	return cfg
}

// newLogger returns a development logger under --verbose, production
// otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return logCfg.Build()
}
