package entities

import "time"

type ActivityKind string

const (
	ActivityJoin     ActivityKind = "join"
	ActivityPlay     ActivityKind = "play"
	ActivityGod      ActivityKind = "god"
	ActivityPurchase ActivityKind = "purchase"
	ActivityAdmin    ActivityKind = "admin"
)

// Activity is one line of the game's public history.
type Activity struct {
	ID      string       `json:"id"`
	At      time.Time    `json:"at"`
	ActorID int64        `json:"actorId"`
	Kind    ActivityKind `json:"kind"`
	Message string       `json:"message"`
}
