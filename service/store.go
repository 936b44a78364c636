package service

import (
	"context"
	"errors"
	"fmt"

	"power-store/dto"
	"power-store/entities"
	"power-store/repository"
)

// Buy prices the card and debits the buyer from the same snapshot the write
// is based on.
func (e *Engine) Buy(ctx context.Context, buyerID int64, cardID string) (dto.Outcome, error) {
	card, ok := e.catalog.Get(cardID)
	if !ok {
		return dto.Outcome{}, e.fail("buy", gameErr(KindUnknownCard, "Card '%s' not found.", cardID))
	}

	var (
		price int
		name  string
	)
	err := e.store.Transact(ctx, repository.PlayerScope(buyerID).WithGameState(), func(tx repository.Tx) error {
		buyer, err := tx.Player(buyerID)
		if err != nil {
			return notFoundAs(err, gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join."))
		}
		state, err := tx.GameState()
		if err != nil {
			return err
		}

		price = EffectivePrice(card.Price, buyer.Status, *state, buyerID, e.now())
		if buyer.Coins < price {
			return gameErr(KindInsufficientFunds,
				"Insufficient funds! You need %d PC but only have %d PC.", price, buyer.Coins)
		}
		buyer.Coins -= price
		buyer.AddCard(card.ID)
		name = buyer.DisplayName()
		return tx.PutPlayer(buyer)
	})
	if err != nil {
		return dto.Outcome{}, e.fail("buy "+card.ID, err)
	}

	public := fmt.Sprintf("🛒 %s bought a %s card.", name, card.Name)
	e.record(ctx, buyerID, entities.ActivityPurchase, public)
	return dto.Outcome{
		Success:        true,
		Tag:            dto.TagResolved,
		PublicMessage:  public,
		PrivateMessage: fmt.Sprintf("✅ Success! You bought a %s card for %d PC.", card.Name, price),
	}, nil
}

// GetEffectivePrice is for browsing only; Buy recomputes the price inside
// its transaction. Unregistered players see prices without a personal
// modifier.
func (e *Engine) GetEffectivePrice(ctx context.Context, playerID int64, cardID string) (int, error) {
	card, ok := e.catalog.Get(cardID)
	if !ok {
		return 0, e.fail("price", gameErr(KindUnknownCard, "Card '%s' not found.", cardID))
	}
	status, state, err := e.pricingInputs(ctx, playerID)
	if err != nil {
		return 0, e.fail("price", err)
	}
	return EffectivePrice(card.Price, status, *state, playerID, e.now()), nil
}

// StoreListing is the store menu for one player: every card at the price
// that player would pay now.
func (e *Engine) StoreListing(ctx context.Context, playerID int64) (dto.StoreView, error) {
	status, state, err := e.pricingInputs(ctx, playerID)
	if err != nil {
		return dto.StoreView{}, e.fail("store listing", err)
	}
	now := e.now()

	view := dto.StoreView{Modifier: ActiveModifier(status, *state, playerID, now)}
	switch view.Modifier {
	case dto.ModifierBlackMarket:
		view.Banner = "💰 Black Market prices are active! All cards are 50% off for you!"
	case dto.ModifierInflation:
		view.Banner = "📈 Inflation is active! Prices are doubled!"
	}
	for _, card := range e.catalog.All() {
		view.Cards = append(view.Cards, dto.StoreCard{
			ID:             card.ID,
			Name:           card.Name,
			Icon:           card.Icon,
			Description:    card.Description,
			BasePrice:      card.Price,
			Price:          EffectivePrice(card.Price, status, *state, playerID, now),
			RequiresTarget: card.RequiresTarget,
		})
	}
	return view, nil
}

func (e *Engine) pricingInputs(ctx context.Context, playerID int64) (entities.Status, *entities.GameState, error) {
	var status entities.Status
	p, err := e.store.ReadPlayer(ctx, playerID)
	switch {
	case err == nil:
		status = p.Status
	case errors.Is(err, repository.ErrNotFound):
	default:
		return status, nil, err
	}
	state, err := e.store.ReadGameState(ctx)
	if err != nil {
		return status, nil, err
	}
	return status, state, nil
}
