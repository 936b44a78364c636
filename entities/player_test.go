package entities

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   string
	}{
		{"first name wins", Player{FirstName: "Alice", Username: "alice"}, "Alice"},
		{"handle fallback", Player{Username: "bob"}, "@bob"},
		{"anonymous", Player{}, "A player"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.DisplayName(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRemoveCardTakesOneUnit(t *testing.T) {
	p := &Player{Cards: []string{CardFlame, CardSpeed, CardFlame}}
	if !p.RemoveCard(CardFlame) {
		t.Fatal("expected a flame to be removed")
	}
	if p.CountCard(CardFlame) != 1 || len(p.Cards) != 2 {
		t.Fatalf("unexpected hand %v", p.Cards)
	}
	if p.RemoveCard(CardGod) {
		t.Fatal("god was never held")
	}
}
