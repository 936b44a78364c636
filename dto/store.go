package dto

type PriceModifier string

const (
	ModifierNone        PriceModifier = ""
	ModifierBlackMarket PriceModifier = "black_market"
	ModifierInflation   PriceModifier = "inflation"
)

type StoreCard struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Description    string `json:"description"`
	BasePrice      int    `json:"basePrice"`
	Price          int    `json:"price"`
	RequiresTarget bool   `json:"requiresTarget"`
}

type StoreView struct {
	Banner   string        `json:"banner,omitempty"`
	Modifier PriceModifier `json:"modifier,omitempty"`
	Cards    []StoreCard   `json:"cards"`
}

type PriceResponse struct {
	CardID string `json:"cardId"`
	Price  int    `json:"price"`
}

type BuyRequest struct {
	CardID string `json:"cardId" mapstructure:"cardId" binding:"required"`
}
