package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"power-store/dto"
	"power-store/entities"
	"power-store/repository"
)

// play is one card resolution: by applies the card's effect to on. When karma
// reflects a card the roles are mirrored and only the actor is changed.
type play struct {
	card entities.Card
	by   *entities.Player
	on   *entities.Player // nil for cards without a target
	now  time.Time
	tx   repository.Tx
}

// PlayCard plays one unit of cardID from the actor's hand, optionally on a
// target. Every precondition is checked inside the same transaction that
// applies the effect, so a card that vanished concurrently fails cleanly.
func (e *Engine) PlayCard(ctx context.Context, actorID int64, cardID string, targetID *int64) (dto.Outcome, error) {
	card, ok := e.catalog.Get(cardID)
	if !ok {
		return dto.Outcome{}, e.fail("play card", gameErr(KindUnknownCard, "Card '%s' not found. Please use the exact card name or ID.", cardID))
	}
	if card.ID == entities.CardGod {
		return dto.Outcome{}, e.fail("play card", gameErr(KindInvalidPower,
			"You must specify a power. Use the God card with Blessing, Smite or Tribute."))
	}

	scope := repository.PlayerScope(actorID)
	if card.RequiresTarget && targetID != nil && *targetID != actorID {
		scope.PlayerIDs = append(scope.PlayerIDs, *targetID)
	}
	if card.ID == entities.CardInflation {
		scope = scope.WithGameState()
	}

	var out dto.Outcome
	err := e.store.Transact(ctx, scope, func(tx repository.Tx) error {
		actor, err := tx.Player(actorID)
		if err != nil {
			return notFoundAs(err, gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join."))
		}
		if !actor.HasCard(card.ID) {
			return gameErr(KindCardNotOwned, "You don't have a %s card.", card.Name)
		}

		p := &play{card: card, by: actor, now: e.now(), tx: tx}
		if card.RequiresTarget {
			switch {
			case targetID == nil:
				return gameErr(KindTargetRequired,
					"To use the %s card, you must choose the player you want to target.", card.Name)
			case *targetID == actorID:
				return gameErr(KindSelfTargetForbidden, "You cannot target yourself with this card.")
			}
			p.on, err = tx.Player(*targetID)
			if err != nil {
				return notFoundAs(err, gameErr(KindTargetNotFound, "Target player not found."))
			}
		}
		actor.RemoveCard(card.ID)

		res, err := e.resolve(p)
		if err != nil {
			return err
		}
		if err := tx.PutPlayer(actor); err != nil {
			return err
		}
		if p.on != nil {
			if err := tx.PutPlayer(p.on); err != nil {
				return err
			}
		}
		out = res
		return nil
	})
	if err != nil {
		return dto.Outcome{}, e.fail("play "+card.ID, err)
	}

	msg := out.PublicMessage
	if msg == "" {
		msg = out.PrivateMessage
	}
	e.record(ctx, actorID, entities.ActivityPlay, msg)
	return out, nil
}

// resolve applies interception before the card's own effect. Karma is checked
// before the forcefield, and at most one of the three paths runs.
func (e *Engine) resolve(p *play) (dto.Outcome, error) {
	if p.card.Negative && p.on != nil {
		switch {
		case p.on.Status.KarmaActive:
			return e.reflect(p)
		case p.on.Status.Protected:
			p.on.Status.Protected = false
			return dto.Outcome{
				Success:       true,
				Tag:           dto.TagBlocked,
				PublicMessage: fmt.Sprintf("🛡️ Blocked! %s's Forcefield deflected the %s card!", p.on.DisplayName(), p.card.Name),
			}, nil
		}
	}

	res, err := effects[p.card.ID](e, p)
	if err != nil {
		return dto.Outcome{}, err
	}
	return dto.Outcome{
		Success:        true,
		Tag:            dto.TagResolved,
		PublicMessage:  res.public,
		PrivateMessage: res.private,
	}, nil
}

// reflect turns a negative card back on its player. The effect runs with the
// roles mirrored, or through reflectedEffects when the normal effect would
// also change the karma holder. The karma holder keeps karma; only Time Warp
// ends it.
func (e *Engine) reflect(p *play) (dto.Outcome, error) {
	mirrored := &play{card: p.card, by: p.on, on: p.by, now: p.now, tx: p.tx}
	msg := fmt.Sprintf("⚖️ Karma! %s's karma reflected the %s card back onto %s!",
		p.on.DisplayName(), p.card.Name, p.by.DisplayName())

	run, ok := reflectedEffects[p.card.ID]
	if !ok {
		run = effects[p.card.ID]
	}
	res, err := run(e, mirrored)
	switch {
	case errors.Is(err, ErrNoEligibleCards):
		msg += " It found nothing to take."
	case err != nil:
		return dto.Outcome{}, err
	case res.detail != "":
		msg += " " + res.detail
	}
	return dto.Outcome{Success: true, Tag: dto.TagReflected, PublicMessage: msg}, nil
}

func notFoundAs(err error, replacement *GameError) error {
	if errors.Is(err, repository.ErrNotFound) {
		replacement.Err = err
		return replacement
	}
	return err
}
