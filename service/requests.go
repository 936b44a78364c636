package service

import (
	"context"
	"strings"

	"power-store/dto"
)

// Play is PlayCard for front-end requests: the card may be named by id or
// display name and the target by id or handle.
func (e *Engine) Play(ctx context.Context, actorID int64, req dto.PlayCardRequest) (dto.Outcome, error) {
	card, err := e.LookupCard(req.Card)
	if err != nil {
		return dto.Outcome{}, err
	}
	target, err := e.ResolveTarget(ctx, req.TargetID, req.TargetHandle)
	if err != nil {
		return dto.Outcome{}, err
	}
	return e.PlayCard(ctx, actorID, card.ID, target)
}

func (e *Engine) God(ctx context.Context, actorID int64, req dto.PlayGodRequest) (dto.Outcome, error) {
	target, err := e.ResolveTarget(ctx, req.TargetID, req.TargetHandle)
	if err != nil {
		return dto.Outcome{}, err
	}
	return e.PlayGod(ctx, actorID, req.Power, target)
}

func (e *Engine) BuyNamed(ctx context.Context, buyerID int64, nameOrID string) (dto.Outcome, error) {
	card, err := e.LookupCard(nameOrID)
	if err != nil {
		return dto.Outcome{}, err
	}
	return e.Buy(ctx, buyerID, card.ID)
}

// ResolveTarget prefers an explicit id; a blank handle means no target.
func (e *Engine) ResolveTarget(ctx context.Context, id *int64, handle string) (*int64, error) {
	if id != nil {
		return id, nil
	}
	if strings.TrimSpace(handle) == "" {
		return nil, nil
	}
	resolved, err := e.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
