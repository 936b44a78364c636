package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"power-store/dto"
	"power-store/entities"
	"power-store/repository"
)

const (
	PowerBlessing = "blessing"
	PowerSmite    = "smite"
	PowerTribute  = "tribute"

	tributeAmount = 5
)

// PlayGod uses one of the God card's three powers. God powers are never
// intercepted by karma or a forcefield.
func (e *Engine) PlayGod(ctx context.Context, actorID int64, power string, targetID *int64) (dto.Outcome, error) {
	power = strings.ToLower(strings.TrimSpace(power))
	switch power {
	case PowerBlessing, PowerSmite:
		if targetID == nil {
			return dto.Outcome{}, e.fail("god "+power, gameErr(KindTargetRequired,
				"The '%s' power requires a target.", power))
		}
		if power == PowerSmite && *targetID == actorID {
			return dto.Outcome{}, e.fail("god "+power, gameErr(KindSelfTargetForbidden,
				"You cannot smite yourself."))
		}
		return e.godOnTarget(ctx, actorID, power, *targetID)
	case PowerTribute:
		return e.tribute(ctx, actorID)
	default:
		return dto.Outcome{}, e.fail("god", gameErr(KindInvalidPower,
			"Invalid God power '%s'. Choose Blessing, Smite or Tribute.", power))
	}
}

// godOnTarget handles blessing and smite. The God card is consumed in the
// same transaction as the effect.
func (e *Engine) godOnTarget(ctx context.Context, actorID int64, power string, targetID int64) (dto.Outcome, error) {
	scope := repository.PlayerScope(actorID)
	if targetID != actorID {
		scope.PlayerIDs = append(scope.PlayerIDs, targetID)
	}

	var msg string
	err := e.store.Transact(ctx, scope, func(tx repository.Tx) error {
		actor, err := tx.Player(actorID)
		if err != nil {
			return notFoundAs(err, gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join."))
		}
		target := actor
		if targetID != actorID {
			target, err = tx.Player(targetID)
			if err != nil {
				return notFoundAs(err, gameErr(KindTargetNotFound, "Target player not found."))
			}
		}
		if !actor.RemoveCard(entities.CardGod) {
			return gameErr(KindCardNotOwned, "You don't have a God card.")
		}

		switch power {
		case PowerBlessing:
			target.AddCard(entities.CardForcefield)
			msg = fmt.Sprintf("🛐 %s used God's Blessing on %s, granting them a Forcefield card!",
				actor.DisplayName(), target.DisplayName())
		case PowerSmite:
			lost := 0
			if target.Coins > 0 {
				lost = target.Coins / 2
			}
			target.Coins -= lost
			msg = fmt.Sprintf("🛐 %s used God's Smite on %s, destroying half their coins (%d PC)!",
				actor.DisplayName(), target.DisplayName(), lost)
		}

		if err := tx.PutPlayer(actor); err != nil {
			return err
		}
		if target != actor {
			return tx.PutPlayer(target)
		}
		return nil
	})
	if err != nil {
		return dto.Outcome{}, e.fail("god "+power, err)
	}

	e.record(ctx, actorID, entities.ActivityGod, msg)
	return dto.Outcome{Success: true, Tag: dto.TagResolved, PublicMessage: msg}, nil
}

// tribute collects from every other player in two phases. The scan computes
// each contribution as min(5, balance) from a snapshot; the commit then
// debits every contributor a flat 5 from their current balance and credits
// the actor the snapshot sum. Balances can move between the two phases, and
// the flat debit may push a low balance below zero.
//
// All debits and the credit commit in one transaction over every player, so
// a store that cannot hold that many records fails the whole tribute. The
// commit re-checks that the actor still holds a God card, but the card is
// consumed afterwards in its own update, so two tributes racing on one card
// can both collect. The loser only logs that its card was already gone.
func (e *Engine) tribute(ctx context.Context, actorID int64) (dto.Outcome, error) {
	actor, err := e.store.ReadPlayer(ctx, actorID)
	if err != nil {
		return dto.Outcome{}, e.fail("god tribute", notFoundAs(err,
			gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join.")))
	}
	if !actor.HasCard(entities.CardGod) {
		return dto.Outcome{}, e.fail("god tribute", gameErr(KindCardNotOwned, "You don't have a God card."))
	}

	var (
		contributors []int64
		total        int
	)
	err = e.store.StreamPlayers(ctx, func(p *entities.Player) error {
		if p.ID == actorID {
			return nil
		}
		contributors = append(contributors, p.ID)
		total += capped(p.Coins, tributeAmount)
		return nil
	})
	if err != nil {
		return dto.Outcome{}, e.fail("god tribute", fmt.Errorf("scan players: %w", err))
	}

	scope := repository.PlayerScope(append([]int64{actorID}, contributors...)...)
	err = e.store.Transact(ctx, scope, func(tx repository.Tx) error {
		a, err := tx.Player(actorID)
		if err != nil {
			return notFoundAs(err, gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join."))
		}
		if !a.HasCard(entities.CardGod) {
			return gameErr(KindCardNotOwned, "You don't have a God card.")
		}
		for _, id := range contributors {
			p, err := tx.Player(id)
			if err != nil {
				return fmt.Errorf("tribute from %d: %w", id, err)
			}
			p.Coins -= tributeAmount
			if err := tx.PutPlayer(p); err != nil {
				return err
			}
		}
		a.Coins += total
		return tx.PutPlayer(a)
	})
	if err != nil {
		return dto.Outcome{}, e.fail("god tribute", err)
	}

	if err := e.consumeCard(ctx, actorID, entities.CardGod); err != nil {
		e.logger.Warn("tribute committed but the God card was not consumed",
			zap.Int64("actor", actorID), zap.Error(err))
	}

	msg := fmt.Sprintf("🛐 %s used God's Tribute, collecting a total of %d coins from all other players!",
		actor.DisplayName(), total)
	e.record(ctx, actorID, entities.ActivityGod, msg)
	return dto.Outcome{Success: true, Tag: dto.TagResolved, PublicMessage: msg}, nil
}

func (e *Engine) consumeCard(ctx context.Context, playerID int64, cardID string) error {
	return e.store.Transact(ctx, repository.PlayerScope(playerID), func(tx repository.Tx) error {
		p, err := tx.Player(playerID)
		if err != nil {
			return err
		}
		if !p.RemoveCard(cardID) {
			return gameErr(KindCardNotOwned, "card %s already gone", cardID)
		}
		return tx.PutPlayer(p)
	})
}
