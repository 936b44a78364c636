package service

import (
	"time"

	"power-store/dto"
	"power-store/entities"
)

// ActiveModifier reports which price modifier applies to buyerID. Black
// market beats inflation; the two never stack.
func ActiveModifier(buyer entities.Status, state entities.GameState, buyerID int64, now time.Time) dto.PriceModifier {
	switch {
	case buyer.BlackMarketActive(now):
		return dto.ModifierBlackMarket
	case state.InflationAppliesTo(buyerID, now):
		return dto.ModifierInflation
	default:
		return dto.ModifierNone
	}
}

func EffectivePrice(basePrice int, buyer entities.Status, state entities.GameState, buyerID int64, now time.Time) int {
	switch ActiveModifier(buyer, state, buyerID, now) {
	case dto.ModifierBlackMarket:
		return basePrice / 2
	case dto.ModifierInflation:
		return basePrice * 2
	default:
		return basePrice
	}
}
