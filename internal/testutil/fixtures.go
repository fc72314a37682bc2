package testutil

import (
	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/pkg/types"
)

// CreateTestMarket creates a binary market with the index-0 NO / index-1
// YES token convention.
func CreateTestMarket(conditionID, question string) types.SimplifiedMarket {
	return types.SimplifiedMarket{
		ConditionID:  conditionID,
		Question:     question,
		Active:       true,
		Closed:       false,
		ClobTokenIDs: `["` + conditionID + `-no","` + conditionID + `-yes"]`,
	}
}

// CreateTestPair creates a market pair directly, skipping catalog admission.
func CreateTestPair(conditionID, question string) types.MarketPair {
	return types.MarketPair{
		Question:   question,
		YesTokenID: conditionID + "-yes",
		NoTokenID:  conditionID + "-no",
	}
}

// CreateTestOpportunity creates an opportunity with a 0.95 combined price,
// comfortably inside the default 0.98 threshold.
func CreateTestOpportunity(conditionID string) *arbitrage.Opportunity {
	return arbitrage.NewOpportunity(
		"Test market: "+conditionID,
		conditionID+"-yes",
		conditionID+"-no",
		0.45, 0.50, 0.98,
	)
}
