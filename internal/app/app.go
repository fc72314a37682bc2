package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/scanner"
	"github.com/jvaldes/pairbot/internal/storage"
	"github.com/jvaldes/pairbot/pkg/config"
	"github.com/jvaldes/pairbot/pkg/healthprobe"
	"github.com/jvaldes/pairbot/pkg/httpserver"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	driver        *scanner.Driver
	store         storage.Storage
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	// SingleKeyword overrides the configured keyword list with a single
	// keyword, for debugging one slice of the catalog.
	SingleKeyword string
}
