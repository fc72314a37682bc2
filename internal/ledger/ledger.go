package ledger

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// dateLayout is the UTC calendar day the daily counters belong to.
const dateLayout = "2006-01-02"

// Snapshot is a point-in-time copy of the ledger counters.
type Snapshot struct {
	Date             string  `json:"date"`
	Scans            int64   `json:"scans"`
	Opportunities    int64   `json:"opportunities"`
	SuccessfulTrades int64   `json:"successful_trades"`
	DailyProfit      float64 `json:"daily_profit"`
	TotalProfit      float64 `json:"total_profit"`
	Invested         float64 `json:"invested"`
}

// Ledger holds the running financial state of the bot. Scans, total profit
// and invested capital are cumulative for the process lifetime; opportunity,
// trade and daily-profit counters reset at UTC date rollover.
//
// The scanner is the only writer, but the ops HTTP server reads snapshots
// from its own goroutine, so all access goes through the mutex. Multi-field
// updates (ApplyTrade, Rollover) run inside a single critical section:
// total profit must always equal the sum of every closed day's profit plus
// the current day's running value.
type Ledger struct {
	mu               sync.Mutex
	currentDate      string
	scans            int64
	opportunities    int64
	successfulTrades int64
	dailyProfit      float64
	totalProfit      float64
	invested         float64
	logger           *zap.Logger
}

// New creates a Ledger whose daily counters belong to now's UTC date.
func New(now time.Time, logger *zap.Logger) *Ledger {
	return &Ledger{
		currentDate: now.UTC().Format(dateLayout),
		logger:      logger,
	}
}

// RecordScan increments the cumulative scan counter and returns the new
// value, which the scanner uses for its catalog refresh cadence.
func (l *Ledger) RecordScan() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scans++
	ScansTotal.Inc()
	return l.scans
}

// RecordOpportunity increments the daily opportunity counter.
func (l *Ledger) RecordOpportunity() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.opportunities++
}

// ApplyTrade records one fully executed arbitrage pair. All four fields
// change in a single critical section: daily and total profit move by the
// same amount, invested grows by the combined cost, and the trade counter
// increments. There is no state where only some of them have been applied.
func (l *Ledger) ApplyTrade(profit, cost float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dailyProfit += profit
	l.totalProfit += profit
	l.invested += cost
	l.successfulTrades++

	DailyProfitUSD.Set(l.dailyProfit)
	TotalProfitUSD.Set(l.totalProfit)
	InvestedUSD.Set(l.invested)

	l.logger.Info("ledger-trade-applied",
		zap.Float64("profit", profit),
		zap.Float64("cost", cost),
		zap.Float64("daily-profit", l.dailyProfit),
		zap.Float64("total-profit", l.totalProfit),
		zap.Int64("successful-trades", l.successfulTrades))
}

// Rollover compares now's UTC date with the date the daily counters belong
// to. On a date change it returns a snapshot of the day that just closed
// and then zeroes the daily fields; the caller reports the snapshot, so the
// report always reflects the expired day and never the freshly reset state.
// Returns false when the date is unchanged.
func (l *Ledger) Rollover(now time.Time) (Snapshot, bool) {
	today := now.UTC().Format(dateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	if today == l.currentDate {
		return Snapshot{}, false
	}

	closing := l.snapshotLocked()

	l.opportunities = 0
	l.successfulTrades = 0
	l.dailyProfit = 0
	l.currentDate = today

	DailyProfitUSD.Set(0)

	l.logger.Info("ledger-daily-rollover",
		zap.String("closed-date", closing.Date),
		zap.String("new-date", today),
		zap.Float64("closed-daily-profit", closing.DailyProfit))

	return closing, true
}

// Snapshot returns a copy of the current counters.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	return Snapshot{
		Date:             l.currentDate,
		Scans:            l.scans,
		Opportunities:    l.opportunities,
		SuccessfulTrades: l.successfulTrades,
		DailyProfit:      l.dailyProfit,
		TotalProfit:      l.totalProfit,
		Invested:         l.invested,
	}
}
