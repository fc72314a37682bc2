package storage

import (
	"context"
	"fmt"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/execution"
	"go.uber.org/zap"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreOpportunity pretty-prints an arbitrage opportunity to console.
func (c *ConsoleStorage) StoreOpportunity(ctx context.Context, opp *arbitrage.Opportunity) error {
	fmt.Println("\n" + rule)
	fmt.Printf("🎯 ARBITRAGE OPPORTUNITY DETECTED\n")
	fmt.Println(rule)
	fmt.Printf("ID:       %s\n", opp.ID[:8])
	fmt.Printf("Question: %s\n", opp.Question)
	fmt.Printf("Time:     %s\n", opp.DetectedAt.Format("2006-01-02 15:04:05"))
	fmt.Println(rule)
	fmt.Printf("📊 PRICES\n")
	fmt.Printf("  YES Ask:  %.4f\n", opp.YesPrice)
	fmt.Printf("  NO Ask:   %.4f\n", opp.NoPrice)
	fmt.Printf("  Combined: %.4f (threshold: %.4f)\n", opp.CombinedPrice, opp.Threshold)
	fmt.Printf("  Edge:     %.4f per share\n", opp.Edge)
	fmt.Println(rule)

	return nil
}

// StoreTrade pretty-prints an execution result to console.
func (c *ConsoleStorage) StoreTrade(ctx context.Context, opp *arbitrage.Opportunity, res *execution.Result) error {
	fmt.Println("\n" + rule)
	if res.Success {
		fmt.Printf("✅ TRADE EXECUTED\n")
	} else {
		fmt.Printf("❌ TRADE FAILED (leg: %s, cleanup: %s)\n", res.FailedLeg, res.Cleanup)
	}
	fmt.Println(rule)
	fmt.Printf("ID:       %s\n", res.OpportunityID[:8])
	fmt.Printf("Question: %s\n", opp.Question)
	fmt.Printf("Time:     %s\n", res.ExecutedAt.Format("2006-01-02 15:04:05"))
	if res.Success {
		fmt.Printf("Profit:   $%.2f\n", res.Profit)
		fmt.Printf("Cost:     $%.2f\n", res.Cost)
	}
	fmt.Println(rule)

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
