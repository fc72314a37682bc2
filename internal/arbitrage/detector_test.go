package arbitrage

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/pkg/types"
)

func testPair() types.MarketPair {
	return types.MarketPair{
		Question:   "Will BTC be above $100k at 3:15pm ET?",
		YesTokenID: "yes-token",
		NoTokenID:  "no-token",
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		threshold  float64
		yesPrice   float64
		noPrice    float64
		expectOpp  bool
		expectEdge float64
	}{
		{
			name:      "efficient-market-no-opportunity",
			threshold: 0.98,
			yesPrice:  0.50,
			noPrice:   0.50,
			expectOpp: false,
		},
		{
			name:       "combined-below-threshold",
			threshold:  0.98,
			yesPrice:   0.45,
			noPrice:    0.50,
			expectOpp:  true,
			expectEdge: 0.05,
		},
		{
			name:      "combined-exactly-at-threshold",
			threshold: 0.98,
			yesPrice:  0.49,
			noPrice:   0.49,
			expectOpp: false, // strict inequality: combined must be below
		},
		{
			name:      "combined-just-above-threshold",
			threshold: 0.98,
			yesPrice:  0.49,
			noPrice:   0.4901,
			expectOpp: false,
		},
		{
			name:       "combined-just-below-threshold",
			threshold:  0.98,
			yesPrice:   0.49,
			noPrice:    0.4899,
			expectOpp:  true,
			expectEdge: 0.0201,
		},
		{
			name:       "deep-mispricing",
			threshold:  0.98,
			yesPrice:   0.30,
			noPrice:    0.30,
			expectOpp:  true,
			expectEdge: 0.40,
		},
		{
			name:      "tight-threshold-rejects-small-edge",
			threshold: 0.90,
			yesPrice:  0.46,
			noPrice:   0.46,
			expectOpp: false, // 0.92 >= 0.90
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			detector := New(Config{Threshold: tt.threshold, Logger: logger})

			opp, exists := detector.Check(testPair(), tt.yesPrice, tt.noPrice)

			if exists != tt.expectOpp {
				t.Fatalf("expected opportunity=%v, got=%v", tt.expectOpp, exists)
			}
			if !tt.expectOpp {
				if opp != nil {
					t.Fatal("expected nil opportunity when none detected")
				}
				return
			}

			if math.Abs(opp.Edge-tt.expectEdge) > 1e-9 {
				t.Errorf("expected edge %f, got %f", tt.expectEdge, opp.Edge)
			}
			if math.Abs(opp.CombinedPrice-(tt.yesPrice+tt.noPrice)) > 1e-9 {
				t.Errorf("combined price mismatch: %f", opp.CombinedPrice)
			}
			if opp.YesTokenID != "yes-token" || opp.NoTokenID != "no-token" {
				t.Errorf("token ids not carried through: %+v", opp)
			}
		})
	}
}

// Check is a pure function: the same inputs must give the same decision
// every time.
func TestCheckIdempotent(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	detector := New(Config{Threshold: 0.98, Logger: logger})
	pair := testPair()

	first, firstExists := detector.Check(pair, 0.45, 0.50)
	second, secondExists := detector.Check(pair, 0.45, 0.50)

	if firstExists != secondExists {
		t.Fatal("detection decision changed between identical calls")
	}
	if first.CombinedPrice != second.CombinedPrice || first.Edge != second.Edge {
		t.Error("detection values changed between identical calls")
	}
}
