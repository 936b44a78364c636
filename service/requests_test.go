package service

import (
	"errors"
	"testing"

	"power-store/dto"
	"power-store/entities"
)

type recordingNotifier struct {
	public  []string
	private map[int64][]string
}

func (n *recordingNotifier) Public(text string) { n.public = append(n.public, text) }

func (n *recordingNotifier) Private(id int64, text string) {
	if n.private == nil {
		n.private = make(map[int64][]string)
	}
	n.private[id] = append(n.private[id], text)
}

func TestPlayByNameAndHandle(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 0, entities.CardFlame)
	f.addPlayer(2, "bob", 20)

	_, err := f.engine.Play(f.ctx, 1, dto.PlayCardRequest{Card: "FLAME", TargetHandle: "@Bob"})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := f.player(2).Coins; got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	_, err = f.engine.Play(f.ctx, 1, dto.PlayCardRequest{Card: "Flame", TargetHandle: "@ghost"})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected TargetNotFound, got %v", err)
	}
	_, err = f.engine.Play(f.ctx, 1, dto.PlayCardRequest{Card: "Time Warp", TargetID: tgt(2)})
	if !errors.Is(err, ErrCardNotOwned) {
		t.Fatalf("expected CardNotOwned, got %v", err)
	}
}

func TestGodAndBuyNamed(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(1, "alice", 100, entities.CardGod)
	f.addPlayer(2, "bob", 100)

	if _, err := f.engine.God(f.ctx, 1, dto.PlayGodRequest{Power: "Smite", TargetHandle: "bob"}); err != nil {
		t.Fatalf("god: %v", err)
	}
	if got := f.player(2).Coins; got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if _, err := f.engine.BuyNamed(f.ctx, 2, "time warp"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if !sameCards(f.player(2).Cards, entities.CardTimeWarp) {
		t.Fatalf("unexpected hand %v", f.player(2).Cards)
	}
}

func TestDeliver(t *testing.T) {
	n := &recordingNotifier{}
	Deliver(n, 7, dto.Outcome{Success: true, PublicMessage: "hello all", PrivateMessage: "psst"})
	Deliver(n, 7, Failed(gameErr(KindNoEligibleCards, "nothing")))

	if len(n.public) != 1 || n.public[0] != "hello all" {
		t.Fatalf("unexpected public %v", n.public)
	}
	if got := n.private[7]; len(got) != 2 || got[0] != "psst" || got[1] != "nothing" {
		t.Fatalf("unexpected private %v", got)
	}
}
