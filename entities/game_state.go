package entities

import "time"

// GameState is the single process-wide record shared by every player.
type GameState struct {
	InflationUntil  time.Time `json:"inflation_until"`
	InflationUserID int64     `json:"inflation_user_id"`
}

// InflationAppliesTo reports whether inflation is running and playerID is
// not the player who started it.
func (g GameState) InflationAppliesTo(playerID int64, now time.Time) bool {
	return g.InflationUntil.After(now) && playerID != g.InflationUserID
}

func (g *GameState) Clone() *GameState {
	cp := *g
	return &cp
}
