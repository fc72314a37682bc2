package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/clob"
	"github.com/jvaldes/pairbot/internal/execution"
	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/internal/markets"
	"github.com/jvaldes/pairbot/internal/report"
	"github.com/jvaldes/pairbot/internal/scanner"
	"github.com/jvaldes/pairbot/internal/storage"
	"github.com/jvaldes/pairbot/pkg/cache"
	"github.com/jvaldes/pairbot/pkg/config"
	"github.com/jvaldes/pairbot/pkg/healthprobe"
	"github.com/jvaldes/pairbot/pkg/httpserver"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	clobClient, err := setupClobClient(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup clob client: %w", err)
	}

	metaCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	store, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	led := setupLedger(logger)
	httpServer := setupHTTPServer(cfg, logger, healthChecker, led)
	cat := setupCatalog(cfg, logger, clobClient, opts)
	detector := setupDetector(cfg, logger)
	engine := setupEngine(cfg, logger, clobClient, metaCache, led)
	reporter := setupReporter(cfg, logger)

	driver := scanner.New(&scanner.Config{
		Catalog:           cat,
		Prices:            clobClient,
		Detector:          detector,
		Engine:            engine,
		Ledger:            led,
		Storage:           store,
		Reporter:          reporter,
		Interval:          cfg.ScanInterval,
		RefreshEveryScans: int64(cfg.RefreshEveryScans),
		Cooldown:          cfg.FaultCooldown,
		Logger:            logger,
	})

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		driver:        driver,
		store:         store,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupClobClient(cfg *config.Config, logger *zap.Logger) (*clob.Client, error) {
	return clob.NewClient(&clob.ClientConfig{
		Host:       cfg.ClobHost,
		ChainID:    cfg.ChainID,
		PrivateKey: cfg.PrivateKey,
		Funder:     cfg.Funder,
		APIKey:     cfg.APIKey,
		Secret:     cfg.Secret,
		Passphrase: cfg.Passphrase,
		Logger:     logger,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items (1000 tokens)
		MaxCost:     1000,  // Maximum 1000 items in cache
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	led *ledger.Ledger,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Ledger:        led,
	})
}

func setupLedger(logger *zap.Logger) *ledger.Ledger {
	return ledger.New(timeNowUTC(), logger)
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}

func setupCatalog(cfg *config.Config, logger *zap.Logger, lister catalog.MarketLister, opts *Options) *catalog.Catalog {
	keywords := cfg.MarketKeywords
	if opts.SingleKeyword != "" {
		keywords = []string{opts.SingleKeyword}
	}

	return catalog.New(&catalog.Config{
		Lister:             lister,
		Keywords:           keywords,
		InvertOutcomeOrder: cfg.InvertOutcomeOrder,
		Logger:             logger,
	})
}

func setupDetector(cfg *config.Config, logger *zap.Logger) *arbitrage.Detector {
	return arbitrage.New(arbitrage.Config{
		Threshold: cfg.ArbThreshold,
		Logger:    logger,
	})
}

func setupEngine(
	cfg *config.Config,
	logger *zap.Logger,
	clobClient *clob.Client,
	metaCache cache.Cache,
	led *ledger.Ledger,
) *execution.Engine {
	metadataClient := markets.NewMetadataClient(cfg.ClobHost)
	cachedMetadata := markets.NewCachedMetadataClient(metadataClient, metaCache)

	return execution.New(&execution.Config{
		Mode:       cfg.ExecutionMode,
		Placer:     clobClient,
		Metadata:   cachedMetadata,
		Ledger:     led,
		TradeSize:  cfg.SharesPerTrade,
		FeeHaircut: cfg.FeeHaircut,
		Logger:     logger,
	})
}

func setupReporter(cfg *config.Config, logger *zap.Logger) report.Reporter {
	if cfg.DiscordWebhookURL == "" {
		logger.Info("reporter-disabled",
			zap.String("reason", "DISCORD_WEBHOOK_URL not set"))
		return report.NopReporter{}
	}

	return report.NewDiscordReporter(cfg.DiscordWebhookURL, logger)
}
