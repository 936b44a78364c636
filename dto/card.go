package dto

// PlayCardRequest names the card by id or display name. TargetID and
// TargetHandle are alternatives; TargetID wins when both are set.
type PlayCardRequest struct {
	Card         string `json:"card" mapstructure:"card" binding:"required"`
	TargetID     *int64 `json:"targetId" mapstructure:"targetId"`
	TargetHandle string `json:"targetHandle" mapstructure:"targetHandle"`
}

type PlayGodRequest struct {
	Power        string `json:"power" mapstructure:"power" binding:"required"`
	TargetID     *int64 `json:"targetId" mapstructure:"targetId"`
	TargetHandle string `json:"targetHandle" mapstructure:"targetHandle"`
}

type AwardRequest struct {
	Handle string `json:"handle" binding:"required"`
	Amount int    `json:"amount"`
}

type GiveCardRequest struct {
	Handle string `json:"handle" binding:"required"`
	Card   string `json:"card" binding:"required"`
}
