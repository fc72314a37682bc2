package storage

import (
	"context"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/execution"
)

// Storage is the interface for persisting detected opportunities and
// executed trades.
type Storage interface {
	// StoreOpportunity stores an arbitrage opportunity.
	StoreOpportunity(ctx context.Context, opp *arbitrage.Opportunity) error

	// StoreTrade stores the outcome of an execution attempt.
	StoreTrade(ctx context.Context, opp *arbitrage.Opportunity, res *execution.Result) error

	// Close closes the storage connection.
	Close() error
}
