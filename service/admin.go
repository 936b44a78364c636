package service

import (
	"context"
	"fmt"

	"power-store/dto"
	"power-store/entities"
	"power-store/repository"
)

// AdminAward adds amount (negative to take) to a player's balance, bypassing
// every game rule.
func (e *Engine) AdminAward(ctx context.Context, callerID int64, handle string, amount int) (dto.Outcome, error) {
	if !e.isAdmin(callerID) {
		return dto.Outcome{}, ErrNotAuthorized
	}
	if amount == 0 {
		return dto.Outcome{}, gameErr(KindInvalidAmount, "Usage: /award <amount> @username")
	}

	p, err := e.adminTarget(ctx, handle, func(p *entities.Player) {
		p.Coins += amount
	})
	if err != nil {
		return dto.Outcome{}, e.fail("admin award", err)
	}

	e.record(ctx, callerID, entities.ActivityAdmin, fmt.Sprintf("👑 Admin awarded %d PC to @%s.", amount, p.Username))
	return dto.Outcome{
		Success:        true,
		Tag:            dto.TagResolved,
		PrivateMessage: fmt.Sprintf("✅ Successfully awarded %d PC to @%s.", amount, p.Username),
	}, nil
}

func (e *Engine) AdminGiveCard(ctx context.Context, callerID int64, handle, cardNameOrID string) (dto.Outcome, error) {
	if !e.isAdmin(callerID) {
		return dto.Outcome{}, ErrNotAuthorized
	}
	card, err := e.LookupCard(cardNameOrID)
	if err != nil {
		return dto.Outcome{}, err
	}

	p, err := e.adminTarget(ctx, handle, func(p *entities.Player) {
		p.AddCard(card.ID)
	})
	if err != nil {
		return dto.Outcome{}, e.fail("admin give card", err)
	}

	e.record(ctx, callerID, entities.ActivityAdmin, fmt.Sprintf("👑 Admin gave a %s card to @%s.", card.Name, p.Username))
	return dto.Outcome{
		Success:        true,
		Tag:            dto.TagResolved,
		PrivateMessage: fmt.Sprintf("✅ Successfully gave a %s card to @%s.", card.Name, p.Username),
	}, nil
}

// adminTarget finds the player by handle and applies mutate in a transaction.
func (e *Engine) adminTarget(ctx context.Context, handle string, mutate func(*entities.Player)) (*entities.Player, error) {
	found, err := e.store.FindPlayerByHandle(ctx, handle)
	if err != nil {
		return nil, notFoundAs(err, gameErr(KindTargetNotFound,
			"Player @%s not found in the database. They must use /start first.", repository.NormalizeHandle(handle)))
	}

	var updated *entities.Player
	err = e.store.Transact(ctx, repository.PlayerScope(found.ID), func(tx repository.Tx) error {
		p, err := tx.Player(found.ID)
		if err != nil {
			return err
		}
		mutate(p)
		updated = p
		return tx.PutPlayer(p)
	})
	return updated, err
}
