package dto

type PlayerView struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	Coins     int      `json:"coins"`
	CardIDs   []string `json:"cardIds"`
	Cards     []string `json:"cards"`  // display names
	Status    []string `json:"status"` // human readable labels, empty when normal

	Protected         bool `json:"protected"`
	KarmaActive       bool `json:"karmaActive"`
	BlackoutActive    bool `json:"blackoutActive"`
	MirageActive      bool `json:"mirageActive"`
	BlackMarketActive bool `json:"blackMarketActive"`
	InflationAffected bool `json:"inflationAffected"`
}

type StartRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

type StartResponse struct {
	Created bool       `json:"created"`
	Token   string     `json:"token"`
	Player  PlayerView `json:"player"`
}
