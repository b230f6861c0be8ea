package bootstrap

import (
	"context"
	"log"

	"vpp-configurator/internal/config"
	"vpp-configurator/internal/controller"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/cache"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/implementation"
	"vpp-configurator/internal/repository/memory"
	"vpp-configurator/internal/service"
	"vpp-configurator/pkg/batch"
	pktNats "vpp-configurator/pkg/nats"
	"vpp-configurator/pkg/validation"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	StorefrontController controller.IStorefrontController
	QuoteController      controller.IQuoteController
	AdminController      controller.IAdminController

	// Background Services (Exposed for main.go to run)
	CacheInvalidator *service.CacheInvalidator

	Logger logger.ILogger

	closers []func()
}

// BatchConfig converts the env-driven batch settings for the committer
func BatchConfig(cfg *config.Config) batch.Config {
	attempts := cfg.Batch.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return batch.Config{
		MaxBatchSize:    cfg.Batch.MaxBatchSize,
		MaxAttempts:     uint(attempts),
		InitialInterval: cfg.Batch.InitialInterval,
		MaxInterval:     cfg.Batch.MaxInterval,
	}
}

// NewCatalogRepository picks the GORM document store, or the in-memory store
// seeded with the demo dataset when db is nil.
func NewCatalogRepository(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) contract.CatalogRepository {
	if db != nil {
		return implementation.NewCatalogRepository(db, BatchConfig(cfg))
	}

	log.Printf("[WARN] No DB_CONNECTION_STRING set, serving the catalog from memory")
	repo := memory.NewCatalogRepository(BatchConfig(cfg))
	seeder := service.NewMigrationService(repo, nil, nil, sysLogger)
	if _, err := seeder.Seed(context.Background()); err != nil {
		log.Printf("[WARN] Failed to seed in-memory catalog: %v", err)
	}
	return repo
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	validator := validation.New(sysLogger)
	repo := NewCatalogRepository(db, cfg, sysLogger)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS, optional. Untyped nils keep the interfaces nil-comparable.
	var natsPub service.EventPublisher
	var natsSub service.EventSubscriber
	if pub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		natsPub = pub
		c.closers = append(c.closers, pub.Close)
	}
	if sub, err := pktNats.NewSubscriber(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		natsSub = sub
		c.closers = append(c.closers, sub.Close)
	}

	// Redis, falling back to the in-process cache
	var snapshotCache contract.SnapshotCache
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process snapshot cache", err)
		_ = rdb.Close()
		snapshotCache = memory.NewSnapshotCache(cfg.Cache.SnapshotTTL)
	} else {
		snapshotCache = cache.NewRedisSnapshotCache(rdb, sysLogger)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	eventLogger := logger.NewIsolatedLogger("logs/catalog_events.log")
	eventBus := service.NewCatalogEventBus(pubSub, natsPub, eventLogger)
	c.CacheInvalidator = service.NewCacheInvalidator(pubSub, natsSub, snapshotCache, eventLogger)

	// 4. Services
	loader := service.NewCatalogLoader(repo, snapshotCache, validator, sysLogger, cfg.Cache.SnapshotTTL)
	storefrontService := service.NewStorefrontService(loader)
	quoteService := service.NewQuoteService(loader)
	adminService := service.NewAdminService(repo, loader, validator, eventBus, sysLogger)

	// 5. Controllers
	c.StorefrontController = controller.NewStorefrontController(storefrontService)
	c.QuoteController = controller.NewQuoteController(quoteService)
	c.AdminController = controller.NewAdminController(adminService)

	return c
}

// Close releases the broker and cache connections in reverse order
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
