// Package execution implements the two-leg order execution protocol: both
// sides of a detected opportunity are bought sequentially with
// fill-or-kill orders, and a partial execution is unwound with a
// best-effort cancellation before the attempt is reported as failed.
package execution

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/internal/markets"
	"github.com/jvaldes/pairbot/pkg/types"
)

// executeTimeout bounds one full two-leg attempt.
const executeTimeout = 30 * time.Second

// OrderPlacer is the slice of the trading API the engine consumes.
type OrderPlacer interface {
	SubmitBuyFOK(ctx context.Context, tokenID string, price, size float64) (*types.OrderSubmissionResponse, error)
	Cancel(ctx context.Context, orderID string) (bool, error)
}

// MetadataSource supplies per-token trading constraints.
type MetadataSource interface {
	GetTokenMetadata(ctx context.Context, tokenID string) (markets.TokenMetadata, error)
}

// CleanupStatus records what happened to an already-executed leg after the
// other leg failed. Cancellation is fire-and-forget: a failed cleanup is
// logged and carried in the result, never escalated.
type CleanupStatus int

const (
	// CleanupNotNeeded means no leg had executed when the attempt failed.
	CleanupNotNeeded CleanupStatus = iota
	// CleanupSucceeded means the executed leg was canceled.
	CleanupSucceeded
	// CleanupFailed means the cancellation was attempted but did not land,
	// usually because the resting side already settled.
	CleanupFailed
)

func (s CleanupStatus) String() string {
	switch s {
	case CleanupSucceeded:
		return "succeeded"
	case CleanupFailed:
		return "failed"
	default:
		return "not_needed"
	}
}

// Result is the outcome of one execution attempt.
type Result struct {
	OpportunityID string
	Success       bool
	NoOrderID     string
	YesOrderID    string
	FailedLeg     string // "NO" or "YES" when Success is false
	Cleanup       CleanupStatus
	Profit        float64 // net of the fee haircut
	Cost          float64
	ExecutedAt    time.Time
}

// Engine executes arbitrage opportunities against the exchange and applies
// the economics to the ledger.
type Engine struct {
	mode       string // "paper" or "live"
	placer     OrderPlacer
	metadata   MetadataSource
	ledger     *ledger.Ledger
	tradeSize  float64
	feeHaircut float64
	logger     *zap.Logger
}

// Config holds engine configuration.
type Config struct {
	Mode string
	// Placer is required in live mode; paper mode simulates fills.
	Placer OrderPlacer
	// Metadata is optional. When present, leg prices are aligned to the
	// market tick grid and the trade size is checked against the market
	// minimum before any order is risked.
	Metadata MetadataSource
	Ledger   *ledger.Ledger
	// TradeSize is the number of shares bought on each leg.
	TradeSize float64
	// FeeHaircut is subtracted from the edge when computing realized
	// profit, a conservative cut so guaranteed profit is never overstated.
	FeeHaircut float64
	Logger     *zap.Logger
}

// New creates an execution engine.
func New(cfg *Config) *Engine {
	return &Engine{
		mode:       cfg.Mode,
		placer:     cfg.Placer,
		metadata:   cfg.Metadata,
		ledger:     cfg.Ledger,
		tradeSize:  cfg.TradeSize,
		feeHaircut: cfg.FeeHaircut,
		logger:     cfg.Logger,
	}
}

type leg struct {
	side    string
	tokenID string
	price   float64
	orderID string
}

// Execute attempts to lock in the opportunity with two sequential
// fill-or-kill buys. The NO leg goes first and the YES leg second, the same
// order as the catalog's token convention: a failed first leg must be
// observable before the second is risked. On any failure after a fill, the
// executed leg is cancelled best-effort and the attempt counts as failed.
// On full success the ledger is updated once with profit, cost and the
// trade counter together.
func (e *Engine) Execute(ctx context.Context, opp *arbitrage.Opportunity) *Result {
	ctx, cancel := context.WithTimeout(ctx, executeTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		ExecutionDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	result := &Result{
		OpportunityID: opp.ID,
		ExecutedAt:    start,
		Cleanup:       CleanupNotNeeded,
	}

	legs := []*leg{
		{side: "NO", tokenID: opp.NoTokenID, price: opp.NoPrice},
		{side: "YES", tokenID: opp.YesTokenID, price: opp.YesPrice},
	}

	var executed *leg
	for _, l := range legs {
		err := e.buyLeg(ctx, l)
		if err != nil {
			e.logger.Warn("leg-failed",
				zap.String("opportunity-id", opp.ID),
				zap.String("side", l.side),
				zap.Error(err))

			result.FailedLeg = l.side
			if executed != nil {
				result.Cleanup = e.cleanup(ctx, executed)
			}

			ExecutionsTotal.WithLabelValues("failed").Inc()
			return result
		}

		executed = l
		if l.side == "NO" {
			result.NoOrderID = l.orderID
		} else {
			result.YesOrderID = l.orderID
		}

		e.logger.Info("leg-filled",
			zap.String("opportunity-id", opp.ID),
			zap.String("side", l.side),
			zap.Float64("price", l.price),
			zap.Float64("size", e.tradeSize),
			zap.String("order-id", l.orderID))
	}

	combined := opp.CombinedPrice
	edgePerShare := 1.0 - combined - e.feeHaircut
	result.Profit = e.tradeSize * edgePerShare
	result.Cost = e.tradeSize * combined
	result.Success = true

	e.ledger.ApplyTrade(result.Profit, result.Cost)

	ExecutionsTotal.WithLabelValues("success").Inc()
	RealizedProfitUSD.Add(result.Profit)

	e.logger.Info("arbitrage-locked",
		zap.String("opportunity-id", opp.ID),
		zap.Float64("combined", combined),
		zap.Float64("edge-per-share", edgePerShare),
		zap.Float64("profit", result.Profit),
		zap.Float64("cost", result.Cost))

	return result
}

// buyLeg submits one fill-or-kill buy. A transport fault, a missing
// response, an explicit non-success flag or an error message all count as
// the same thing: the leg did not execute.
func (e *Engine) buyLeg(ctx context.Context, l *leg) error {
	price := l.price

	if e.metadata != nil {
		meta, err := e.metadata.GetTokenMetadata(ctx, l.tokenID)
		if err == nil {
			if e.tradeSize < meta.MinOrderSize {
				return fmt.Errorf("trade size %.2f below market minimum %.2f", e.tradeSize, meta.MinOrderSize)
			}
			price = alignToTick(price, meta.TickSize)
		}
	}

	if e.mode == "paper" {
		l.orderID = fmt.Sprintf("paper-%s-%d", l.side, time.Now().UnixNano())
		return nil
	}

	resp, err := e.placer.SubmitBuyFOK(ctx, l.tokenID, price, e.tradeSize)
	if err != nil {
		return fmt.Errorf("submit %s leg: %w", l.side, err)
	}
	if resp.Failed() {
		return &types.LegError{Side: l.side, TokenID: l.tokenID, Message: resp.ErrorMsg}
	}

	l.orderID = resp.OrderID
	return nil
}

// cleanup cancels an executed leg after the other leg failed. Errors are
// swallowed: crashing the process over a cleanup call would be worse than
// carrying the position, and the market may have settled the order before
// the cancellation lands anyway.
func (e *Engine) cleanup(ctx context.Context, executed *leg) CleanupStatus {
	if e.mode == "paper" {
		return CleanupSucceeded
	}

	canceled, err := e.placer.Cancel(ctx, executed.orderID)
	if err != nil {
		e.logger.Error("cleanup-cancellation-error",
			zap.String("side", executed.side),
			zap.String("order-id", executed.orderID),
			zap.Error(err))
		CleanupsTotal.WithLabelValues("failed").Inc()
		return CleanupFailed
	}
	if !canceled {
		e.logger.Warn("cleanup-cancellation-rejected",
			zap.String("side", executed.side),
			zap.String("order-id", executed.orderID))
		CleanupsTotal.WithLabelValues("failed").Inc()
		return CleanupFailed
	}

	e.logger.Info("cleanup-cancellation-succeeded",
		zap.String("side", executed.side),
		zap.String("order-id", executed.orderID))
	CleanupsTotal.WithLabelValues("succeeded").Inc()
	return CleanupSucceeded
}

// alignToTick snaps a price onto the market tick grid.
func alignToTick(price, tick float64) float64 {
	if tick <= 0 {
		return price
	}
	return math.Round(price/tick) * tick
}
