package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"power-store/dto"
	"power-store/entities"
	"power-store/repository"
)

// Register creates the player on first contact with the starting balance.
// A known player only has their names refreshed.
func (e *Engine) Register(ctx context.Context, id int64, username, firstName string) (dto.PlayerView, bool, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")

	var (
		player  *entities.Player
		created bool
	)
	err := e.store.Transact(ctx, repository.PlayerScope(id), func(tx repository.Tx) error {
		p, err := tx.Player(id)
		created = errors.Is(err, repository.ErrNotFound)
		switch {
		case created:
			p = &entities.Player{
				ID:        id,
				Username:  username,
				FirstName: firstName,
				Coins:     e.startingCoins,
				Cards:     []string{},
				CreatedAt: e.now(),
			}
		case err != nil:
			return err
		default:
			p.Username = username
			p.FirstName = firstName
		}
		player = p
		return tx.PutPlayer(p)
	})
	if err != nil {
		return dto.PlayerView{}, false, e.fail("register", err)
	}

	if created {
		e.record(ctx, id, entities.ActivityJoin,
			fmt.Sprintf("🎉 %s (@%s) has joined the game.", player.DisplayName(), player.Username))
	}
	state, err := e.store.ReadGameState(ctx)
	if err != nil {
		return dto.PlayerView{}, created, e.fail("register", err)
	}
	return e.view(player, state), created, nil
}

func (e *Engine) GetProfile(ctx context.Context, playerID int64) (dto.PlayerView, error) {
	p, err := e.store.ReadPlayer(ctx, playerID)
	if err != nil {
		return dto.PlayerView{}, e.fail("profile", notFoundAs(err,
			gameErr(KindPlayerNotFound, "You are not registered yet. Use /start to join.")))
	}
	state, err := e.store.ReadGameState(ctx)
	if err != nil {
		return dto.PlayerView{}, e.fail("profile", err)
	}
	return e.view(p, state), nil
}

// ListPlayers is the admin report of every player, ordered by handle.
func (e *Engine) ListPlayers(ctx context.Context, callerID int64) ([]dto.PlayerView, error) {
	if !e.isAdmin(callerID) {
		return nil, ErrNotAuthorized
	}
	state, err := e.store.ReadGameState(ctx)
	if err != nil {
		return nil, e.fail("list players", err)
	}
	var views []dto.PlayerView
	err = e.store.StreamPlayers(ctx, func(p *entities.Player) error {
		views = append(views, e.view(p, state))
		return nil
	})
	if err != nil {
		return nil, e.fail("list players", err)
	}
	slices.SortFunc(views, func(a, b dto.PlayerView) int {
		if c := strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return views, nil
}

// ResolveHandle maps an @handle to a player id for targeting.
func (e *Engine) ResolveHandle(ctx context.Context, handle string) (int64, error) {
	p, err := e.store.FindPlayerByHandle(ctx, handle)
	if err != nil {
		return 0, e.fail("resolve handle", notFoundAs(err, gameErr(KindTargetNotFound,
			"Player @%s not found.", repository.NormalizeHandle(handle))))
	}
	return p.ID, nil
}

func (e *Engine) view(p *entities.Player, state *entities.GameState) dto.PlayerView {
	now := e.now()
	v := dto.PlayerView{
		ID:                p.ID,
		Username:          p.Username,
		FirstName:         p.FirstName,
		Coins:             p.Coins,
		CardIDs:           append([]string{}, p.Cards...),
		Cards:             e.catalog.Names(p.Cards),
		Status:            []string{},
		Protected:         p.Status.Protected,
		KarmaActive:       p.Status.KarmaActive,
		BlackoutActive:    p.Status.BlackoutActive(now),
		MirageActive:      p.Status.MirageActive(now),
		BlackMarketActive: p.Status.BlackMarketActive(now),
		InflationAffected: state.InflationAppliesTo(p.ID, now),
	}
	if v.Protected {
		v.Status = append(v.Status, "Protected 🛡️")
	}
	if v.KarmaActive {
		v.Status = append(v.Status, "Karma Active ⚖️")
	}
	if v.BlackoutActive {
		v.Status = append(v.Status, "Blackout Active 🕶️")
	}
	if v.MirageActive {
		v.Status = append(v.Status, "Mirage Active 🏜️")
	}
	if v.BlackMarketActive {
		v.Status = append(v.Status, "In the Black Market 💰")
	}
	if v.InflationAffected {
		v.Status = append(v.Status, "Affected by Inflation 📈")
	}
	return v
}
