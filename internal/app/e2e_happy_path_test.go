package app

import (
	"context"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/clob"
	"github.com/jvaldes/pairbot/internal/execution"
	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/internal/scanner"
	"github.com/jvaldes/pairbot/internal/storage"
	"github.com/jvaldes/pairbot/internal/testutil"
	"github.com/jvaldes/pairbot/pkg/config"
	"github.com/jvaldes/pairbot/pkg/types"
)

// TestEndToEndPaperHappyPath wires the real components against a mock CLOB
// server and checks that a mispriced pair flows all the way from the
// market listing through detection into a paper execution that lands on
// the ledger.
func TestEndToEndPaperHappyPath(t *testing.T) {
	logger := zap.NewNop()

	mock := testutil.NewMockClobAPI(
		[]types.SimplifiedMarket{
			testutil.CreateTestMarket("cond-btc", "Bitcoin above 60k in 15 minutes?"),
			{
				ConditionID:  "cond-other",
				Question:     "Who wins the election?",
				Active:       true,
				ClobTokenIDs: `["a","b"]`,
			},
		},
		map[string]string{
			"cond-btc-yes": "0.45",
			"cond-btc-no":  "0.50",
		},
	)
	defer mock.Close()

	clobClient, err := clob.NewClient(&clob.ClientConfig{
		Host:   mock.URL,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("create clob client: %v", err)
	}

	cat := catalog.New(&catalog.Config{
		Lister:   clobClient,
		Keywords: []string{"bitcoin"},
		Logger:   logger,
	})

	led := ledger.New(time.Now().UTC(), logger)
	engine := execution.New(&execution.Config{
		Mode:       "paper",
		Ledger:     led,
		TradeSize:  25.0,
		FeeHaircut: 0.02,
		Logger:     logger,
	})

	reporter := &testutil.MockReporter{}
	driver := scanner.New(&scanner.Config{
		Catalog:           cat,
		Prices:            clobClient,
		Detector:          arbitrage.New(arbitrage.Config{Threshold: 0.98, Logger: logger}),
		Engine:            engine,
		Ledger:            led,
		Storage:           storage.NewConsoleStorage(logger),
		Reporter:          reporter,
		Interval:          5 * time.Millisecond,
		RefreshEveryScans: 50,
		Cooldown:          5 * time.Millisecond,
		Logger:            logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := driver.Run(ctx); err != nil {
		t.Fatalf("driver run: %v", err)
	}

	// Only the keyword-matching market is cataloged.
	if cat.Len() != 1 {
		t.Errorf("expected exactly 1 cataloged pair, got %d", cat.Len())
	}

	snap := led.Snapshot()
	if snap.SuccessfulTrades == 0 {
		t.Fatal("expected at least one paper trade")
	}

	// Every trade has the same fixed economics: 25 shares, combined 0.95,
	// fee haircut 0.02.
	trades := float64(snap.SuccessfulTrades)
	if math.Abs(snap.TotalProfit-trades*0.75) > 1e-6 {
		t.Errorf("expected profit of 0.75 per trade, got %f over %d trades",
			snap.TotalProfit, snap.SuccessfulTrades)
	}
	if math.Abs(snap.Invested-trades*23.75) > 1e-6 {
		t.Errorf("expected cost of 23.75 per trade, got %f over %d trades",
			snap.Invested, snap.SuccessfulTrades)
	}

	// Shutdown delivered a final report.
	if reporter.ReportCount() == 0 {
		t.Error("expected a final report on shutdown")
	}
}

func TestNewAppPaperMode(t *testing.T) {
	t.Setenv("EXECUTION_MODE", "paper")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("STORAGE_MODE", "console")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	application, err := New(cfg, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	if application.driver == nil {
		t.Error("expected a wired scan driver")
	}
	if application.httpServer == nil {
		t.Error("expected a wired http server")
	}

	application.cancel()
}
