package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/execution"
	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/pkg/types"
)

type fakeLister struct {
	markets []types.SimplifiedMarket
	err     error
	calls   int
}

func (f *fakeLister) SimplifiedMarkets(_ context.Context) ([]types.SimplifiedMarket, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.markets, nil
}

type fakePrices struct {
	mu     sync.Mutex
	prices map[string]float64
	errFor string
	calls  []string
}

func (f *fakePrices) BuyPrice(_ context.Context, tokenID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tokenID)
	if tokenID == f.errFor {
		return 0, errors.New("price unavailable")
	}
	return f.prices[tokenID], nil
}

type fakeExecutor struct {
	executed []*arbitrage.Opportunity
	success  bool
}

func (f *fakeExecutor) Execute(_ context.Context, opp *arbitrage.Opportunity) *execution.Result {
	f.executed = append(f.executed, opp)
	return &execution.Result{
		OpportunityID: opp.ID,
		Success:       f.success,
		ExecutedAt:    time.Now(),
	}
}

type fakeStorage struct {
	opportunities []*arbitrage.Opportunity
	trades        []*execution.Result
	oppErr        error
}

func (f *fakeStorage) StoreOpportunity(_ context.Context, opp *arbitrage.Opportunity) error {
	f.opportunities = append(f.opportunities, opp)
	return f.oppErr
}

func (f *fakeStorage) StoreTrade(_ context.Context, _ *arbitrage.Opportunity, res *execution.Result) error {
	f.trades = append(f.trades, res)
	return nil
}

func (f *fakeStorage) Close() error { return nil }

type fakeReporter struct {
	mu    sync.Mutex
	sent  []ledger.Snapshot
	fail  bool
	calls int
}

func (f *fakeReporter) SendDailyReport(_ context.Context, snap ledger.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.sent = append(f.sent, snap)
	if f.fail {
		return errors.New("webhook unreachable")
	}
	return nil
}

func btcMarket() types.SimplifiedMarket {
	return types.SimplifiedMarket{
		ConditionID:  "cond-1",
		Question:     "Bitcoin above 60k in 15 minutes?",
		Active:       true,
		Closed:       false,
		ClobTokenIDs: `["no-token","yes-token"]`,
	}
}

type driverFixture struct {
	driver   *Driver
	lister   *fakeLister
	prices   *fakePrices
	executor *fakeExecutor
	store    *fakeStorage
	reporter *fakeReporter
	ledger   *ledger.Ledger
}

func newFixture(t *testing.T, prices map[string]float64) *driverFixture {
	t.Helper()
	logger := zap.NewNop()

	lister := &fakeLister{markets: []types.SimplifiedMarket{btcMarket()}}
	cat := catalog.New(&catalog.Config{
		Lister:   lister,
		Keywords: []string{"bitcoin"},
		Logger:   logger,
	})

	fx := &driverFixture{
		lister:   lister,
		prices:   &fakePrices{prices: prices},
		executor: &fakeExecutor{success: true},
		store:    &fakeStorage{},
		reporter: &fakeReporter{},
		ledger:   ledger.New(time.Now().UTC(), logger),
	}

	fx.driver = New(&Config{
		Catalog:           cat,
		Prices:            fx.prices,
		Detector:          arbitrage.New(arbitrage.Config{Threshold: 0.98, Logger: logger}),
		Engine:            fx.executor,
		Ledger:            fx.ledger,
		Storage:           fx.store,
		Reporter:          fx.reporter,
		Interval:          time.Millisecond,
		RefreshEveryScans: 50,
		Cooldown:          time.Millisecond,
		Logger:            logger,
	})

	return fx
}

// runFor drives the loop for a bounded wall-clock window.
func runFor(t *testing.T, d *Driver, duration time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestDriverDetectsAndExecutes(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.45, "no-token": 0.50})

	runFor(t, fx.driver, 50*time.Millisecond)

	if len(fx.executor.executed) == 0 {
		t.Fatal("expected at least one execution for a 0.95 combined price")
	}
	if len(fx.store.opportunities) == 0 {
		t.Error("expected opportunities to be persisted")
	}
	if len(fx.store.trades) != len(fx.executor.executed) {
		t.Errorf("every execution should be persisted: %d trades vs %d executions",
			len(fx.store.trades), len(fx.executor.executed))
	}

	snap := fx.ledger.Snapshot()
	if snap.Scans == 0 {
		t.Error("expected scans to be recorded")
	}
	if snap.Opportunities != int64(len(fx.executor.executed)) {
		t.Errorf("opportunity count %d should match executions %d",
			snap.Opportunities, len(fx.executor.executed))
	}
}

func TestDriverNoOpportunityAboveThreshold(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.55, "no-token": 0.50})

	runFor(t, fx.driver, 30*time.Millisecond)

	if len(fx.executor.executed) != 0 {
		t.Errorf("no execution expected at combined 1.05, got %d", len(fx.executor.executed))
	}
	if fx.ledger.Snapshot().Opportunities != 0 {
		t.Error("no opportunities expected")
	}
}

func TestDriverSurvivesPriceFaults(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.45})
	fx.prices.errFor = "no-token"

	runFor(t, fx.driver, 50*time.Millisecond)

	// Faulted ticks cool down and retry; the loop itself stays alive and
	// keeps recording scans.
	if fx.ledger.Snapshot().Scans < 2 {
		t.Errorf("expected the loop to keep scanning through faults, got %d scans",
			fx.ledger.Snapshot().Scans)
	}
	if len(fx.executor.executed) != 0 {
		t.Error("no execution may happen when a leg price is unavailable")
	}
}

func TestDriverFinalReportOnShutdown(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.55, "no-token": 0.50})

	runFor(t, fx.driver, 20*time.Millisecond)

	fx.reporter.mu.Lock()
	defer fx.reporter.mu.Unlock()
	if fx.reporter.calls == 0 {
		t.Fatal("expected a final report on shutdown")
	}
	last := fx.reporter.sent[len(fx.reporter.sent)-1]
	if last.Scans == 0 {
		t.Error("final report should carry the day's scan count")
	}
}

func TestDriverReporterFailureIsNotFatal(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.55, "no-token": 0.50})
	fx.reporter.fail = true

	// Run must still return cleanly even though every report errors.
	runFor(t, fx.driver, 20*time.Millisecond)

	if fx.ledger.Snapshot().Scans == 0 {
		t.Error("loop should have kept scanning despite reporter failures")
	}
}

func TestDriverStoreFailureIsNotFatal(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.45, "no-token": 0.50})
	fx.store.oppErr = errors.New("db down")

	runFor(t, fx.driver, 30*time.Millisecond)

	if len(fx.executor.executed) == 0 {
		t.Error("execution must proceed when opportunity persistence fails")
	}
}

func TestDriverRefreshCadence(t *testing.T) {
	fx := newFixture(t, map[string]float64{"yes-token": 0.55, "no-token": 0.50})
	fx.driver.refreshEvry = 2

	runFor(t, fx.driver, 50*time.Millisecond)

	// One startup refresh plus one per two scans.
	scans := fx.ledger.Snapshot().Scans
	want := int(1 + scans/2)
	if fx.lister.calls != want {
		t.Errorf("expected %d catalog refreshes for %d scans, got %d", want, scans, fx.lister.calls)
	}
}

func TestDriverDayRolloverReportsClosingDay(t *testing.T) {
	logger := zap.NewNop()

	lister := &fakeLister{markets: []types.SimplifiedMarket{btcMarket()}}
	cat := catalog.New(&catalog.Config{Lister: lister, Keywords: []string{"bitcoin"}, Logger: logger})

	yesterday := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	led := ledger.New(yesterday, logger)
	led.ApplyTrade(12.50, 100.0)

	reporter := &fakeReporter{}
	d := New(&Config{
		Catalog:           cat,
		Prices:            &fakePrices{prices: map[string]float64{"yes-token": 0.55, "no-token": 0.50}},
		Detector:          arbitrage.New(arbitrage.Config{Threshold: 0.98, Logger: logger}),
		Engine:            &fakeExecutor{},
		Ledger:            led,
		Storage:           &fakeStorage{},
		Reporter:          reporter,
		Interval:          time.Millisecond,
		RefreshEveryScans: 50,
		Cooldown:          time.Millisecond,
		Logger:            logger,
	})
	// Freeze time on the day after the ledger's day.
	d.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC) }

	runFor(t, d, 20*time.Millisecond)

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if len(reporter.sent) < 2 {
		t.Fatalf("expected a rollover report plus the final report, got %d", len(reporter.sent))
	}

	closing := reporter.sent[0]
	if closing.Date != "2026-08-31" {
		t.Errorf("rollover must report the closing day, got %s", closing.Date)
	}
	if closing.DailyProfit != 12.50 {
		t.Errorf("closing day's profit must be reported before the reset, got %f", closing.DailyProfit)
	}

	// After the rollover the new day starts clean while totals persist.
	snap := led.Snapshot()
	if snap.DailyProfit != 0 {
		t.Errorf("daily profit should reset after rollover, got %f", snap.DailyProfit)
	}
	if snap.TotalProfit != 12.50 {
		t.Errorf("total profit must survive rollover, got %f", snap.TotalProfit)
	}
}
