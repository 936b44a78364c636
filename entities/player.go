package entities

import "time"

type Status struct {
	Protected        bool      `json:"protected"`
	KarmaActive      bool      `json:"karma_active"`
	BlackoutUntil    time.Time `json:"blackout_until"`
	MirageUntil      time.Time `json:"mirage_until"`
	BlackMarketUntil time.Time `json:"black_market_until"`
}

func (s Status) BlackoutActive(now time.Time) bool    { return s.BlackoutUntil.After(now) }
func (s Status) MirageActive(now time.Time) bool      { return s.MirageUntil.After(now) }
func (s Status) BlackMarketActive(now time.Time) bool { return s.BlackMarketUntil.After(now) }

type Player struct {
	ID        int64     `json:"userId"`
	Username  string    `json:"username"`   // handle, without '@'
	FirstName string    `json:"first_name"` // display name
	Coins     int       `json:"coins"`
	Cards     []string  `json:"cards"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName prefers the first name, then the @handle.
func (p *Player) DisplayName() string {
	switch {
	case p.FirstName != "":
		return p.FirstName
	case p.Username != "":
		return "@" + p.Username
	default:
		return "A player"
	}
}

func (p *Player) CountCard(cardID string) int {
	n := 0
	for _, c := range p.Cards {
		if c == cardID {
			n++
		}
	}
	return n
}

func (p *Player) HasCard(cardID string) bool {
	return p.CountCard(cardID) > 0
}

func (p *Player) AddCard(cardID string) {
	p.Cards = append(p.Cards, cardID)
}

// RemoveCard removes a single unit of cardID and reports whether one was held.
func (p *Player) RemoveCard(cardID string) bool {
	for i, c := range p.Cards {
		if c == cardID {
			p.Cards = append(p.Cards[:i:i], p.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCardAt removes the card at index i and returns its id.
func (p *Player) RemoveCardAt(i int) string {
	id := p.Cards[i]
	p.Cards = append(p.Cards[:i:i], p.Cards[i+1:]...)
	return id
}

func (p *Player) Clone() *Player {
	cp := *p
	cp.Cards = append([]string(nil), p.Cards...)
	return &cp
}
