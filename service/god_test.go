package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"power-store/entities"
	"power-store/repository"
)

func TestBlessing(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 0, entities.CardGod)
	f.addPlayer(2, "bob", 0)

	out, err := f.engine.PlayGod(f.ctx, 1, "Blessing", tgt(2))
	if err != nil {
		t.Fatalf("blessing: %v", err)
	}
	if !sameCards(f.player(2).Cards, entities.CardForcefield) {
		t.Fatalf("target should get a Forcefield card, got %v", f.player(2).Cards)
	}
	if f.player(1).HasCard(entities.CardGod) {
		t.Fatal("god card must be consumed")
	}
	if !strings.Contains(out.PublicMessage, "alice used God's Blessing on bob") {
		t.Fatalf("unexpected message %q", out.PublicMessage)
	}
}

func TestBlessingOnSelf(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 0, entities.CardGod)

	if _, err := f.engine.PlayGod(f.ctx, 1, PowerBlessing, tgt(1)); err != nil {
		t.Fatalf("blessing: %v", err)
	}
	if !sameCards(f.player(1).Cards, entities.CardForcefield) {
		t.Fatalf("expected God swapped for Forcefield, got %v", f.player(1).Cards)
	}
}

func TestSmite(t *testing.T) {
	tests := []struct {
		name  string
		coins int
		want  int
	}{
		{"even", 100, 50},
		{"odd rounds the loss down", 7, 4},
		{"zero", 0, 0},
		{"negative untouched", -10, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addPlayer(1, "alice", 0, entities.CardGod)
			f.addPlayer(2, "bob", tt.coins)
			f.mutate(2, func(p *entities.Player) {
				p.Status.KarmaActive = true
				p.Status.Protected = true
			})

			if _, err := f.engine.PlayGod(f.ctx, 1, PowerSmite, tgt(2)); err != nil {
				t.Fatalf("smite: %v", err)
			}
			b := f.player(2)
			if b.Coins != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, b.Coins)
			}
			if !b.Status.Protected {
				t.Fatal("god powers do not spend a forcefield")
			}
			if f.player(1).Coins != 0 {
				t.Fatal("god powers are never reflected")
			}
		})
	}
}

func TestPlayGodRejections(t *testing.T) {
	tests := []struct {
		name   string
		actor  int64
		power  string
		target *int64
		want   error
	}{
		{"unknown power", 1, "lightning", nil, ErrInvalidPower},
		{"blessing without target", 1, PowerBlessing, nil, ErrTargetRequired},
		{"smite self", 1, PowerSmite, tgt(1), ErrSelfTargetForbidden},
		{"missing target", 1, PowerSmite, tgt(42), ErrTargetNotFound},
		{"no god card", 2, PowerSmite, tgt(1), ErrCardNotOwned},
		{"no god card for tribute", 2, PowerTribute, nil, ErrCardNotOwned},
		{"unregistered", 9, PowerTribute, nil, ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addPlayer(1, "alice", 40, entities.CardGod)
			f.addPlayer(2, "bob", 40)

			_, err := f.engine.PlayGod(f.ctx, tt.actor, tt.power, tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !f.player(1).HasCard(entities.CardGod) {
				t.Fatal("god card must survive a rejected power")
			}
			if f.player(1).Coins != 40 || f.player(2).Coins != 40 {
				t.Fatal("balances changed")
			}
		})
	}
}

func TestTribute(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 10, entities.CardGod)
	f.addPlayer(2, "bob", 3)
	f.addPlayer(3, "carol", 10)
	f.addPlayer(4, "dave", 0)

	out, err := f.engine.PlayGod(f.ctx, 1, PowerTribute, nil)
	if err != nil {
		t.Fatalf("tribute: %v", err)
	}
	if got := f.player(1).Coins; got != 18 {
		t.Fatalf("expected actor to collect 3+5+0, got %d", got)
	}
	for id, want := range map[int64]int{2: -2, 3: 5, 4: -5} {
		if got := f.player(id).Coins; got != want {
			t.Errorf("player %d: expected %d, got %d", id, want, got)
		}
	}
	if f.player(1).HasCard(entities.CardGod) {
		t.Fatal("god card must be consumed after tribute")
	}
	if !strings.Contains(out.PublicMessage, "collecting a total of 8 coins") {
		t.Fatalf("unexpected message %q", out.PublicMessage)
	}
}

func TestTributeAlone(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 10, entities.CardGod)

	if _, err := f.engine.PlayGod(f.ctx, 1, PowerTribute, nil); err != nil {
		t.Fatalf("tribute: %v", err)
	}
	p := f.player(1)
	if p.Coins != 10 || p.HasCard(entities.CardGod) {
		t.Fatalf("expected unchanged balance and consumed card, got %+v", p)
	}
}

// scanHookStore runs after once the player scan has finished.
type scanHookStore struct {
	repository.Store
	after func()
}

func (s scanHookStore) StreamPlayers(ctx context.Context, fn func(*entities.Player) error) error {
	if err := s.Store.StreamPlayers(ctx, fn); err != nil {
		return err
	}
	s.after()
	return nil
}

func TestTributeRechecksGodCardAtCommit(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 10, entities.CardGod)
	f.addPlayer(2, "bob", 10)

	store := scanHookStore{Store: f.store, after: func() {
		f.mutate(1, func(p *entities.Player) { p.RemoveCard(entities.CardGod) })
	}}
	engine := NewEngine(store, entities.DefaultCatalog(), Options{Logger: zap.NewNop()})

	_, err := engine.PlayGod(f.ctx, 1, PowerTribute, nil)
	if !errors.Is(err, ErrCardNotOwned) {
		t.Fatalf("expected CardNotOwned, got %v", err)
	}
	if a, b := f.player(1).Coins, f.player(2).Coins; a != 10 || b != 10 {
		t.Fatalf("balances changed: %d/%d", a, b)
	}
}

func TestTributeTooLarge(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 10, entities.CardGod)
	f.addPlayer(2, "bob", 10)
	f.addPlayer(3, "carol", 10)

	small := repository.NewRedisStore(f.rdb, "artifacts:test", repository.StoreOptions{MaxRetries: 3, MaxKeys: 2}, zap.NewNop())
	engine := NewEngine(small, entities.DefaultCatalog(), Options{Logger: zap.NewNop()})

	_, err := engine.PlayGod(f.ctx, 1, PowerTribute, nil)
	if !errors.Is(err, ErrTransactionTooLarge) {
		t.Fatalf("expected TransactionTooLarge, got %v", err)
	}
	for id := int64(1); id <= 3; id++ {
		if got := f.player(id).Coins; got != 10 {
			t.Errorf("player %d balance changed to %d", id, got)
		}
	}
	if !f.player(1).HasCard(entities.CardGod) {
		t.Fatal("god card must survive a failed tribute")
	}
}
