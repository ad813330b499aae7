package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"research-agents/internal/analyzer"
	"research-agents/internal/cache"
	"research-agents/internal/config"
	"research-agents/internal/logger"
	"research-agents/internal/pipeline"
	"research-agents/internal/queue"
	"research-agents/internal/store"
	"research-agents/internal/topic"
	"research-agents/internal/wiki"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Pipeline *pipeline.Orchestrator
	Cache    cache.Cache
	Queue    queue.Queue
	Store    store.Store
}

// Build loads env, config, and the logger shared by every service.
func Build() (Deps, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	return Deps{Config: cfg, Log: log}, nil
}

// BuildServer wires everything the HTTP server needs.
func BuildServer() (Deps, error) {
	deps, err := Build()
	if err != nil {
		return Deps{}, err
	}

	deps.Pipeline = buildPipeline(deps.Config, deps.Log)

	c, err := buildCache(deps.Config, deps.Log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	deps.Cache = c

	q, err := buildQueue(deps.Config, deps.Log, false)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	deps.Queue = q

	st, err := buildStore(deps.Config, deps.Log, false)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	deps.Store = st

	return deps, nil
}

// BuildRecorder wires the recorder worker; it requires a real queue and a
// real store since persisting history is its whole job.
func BuildRecorder() (Deps, error) {
	deps, err := Build()
	if err != nil {
		return Deps{}, err
	}

	q, err := buildQueue(deps.Config, deps.Log, true)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	deps.Queue = q

	st, err := buildStore(deps.Config, deps.Log, true)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	deps.Store = st

	return deps, nil
}

func buildPipeline(cfg config.Config, log *slog.Logger) *pipeline.Orchestrator {
	fetcher := wiki.NewClient(cfg.WikiBaseURL, cfg.WikiUserAgent, time.Duration(cfg.WikiTimeout)*time.Second)
	an := analyzer.New(analyzer.Options{
		BeginnerMin: cfg.BeginnerMin,
		AdvancedMin: cfg.AdvancedMin,
	})
	return pipeline.New(topic.NewExtractor(), fetcher, an, log)
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		log.Info("using Redis cache")
		return c, nil
	case "noop":
		log.Info("caching disabled")
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger, required bool) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	case "noop":
		if required {
			return nil, fmt.Errorf("this service needs a real queue; set QUEUE_PROVIDER=nats")
		}
		log.Info("queue publishing disabled")
		return queue.NewNoOpQueue(), nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid options: nats, noop)", cfg.QueueProvider)
	}
}

func buildStore(cfg config.Config, log *slog.Logger, required bool) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	case "noop":
		if required {
			return nil, fmt.Errorf("this service needs a real store; set STORE_PROVIDER=postgres")
		}
		log.Info("history persistence disabled")
		return store.NewNoOpStore(), nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: postgres, noop)", cfg.StoreProvider)
	}
}
