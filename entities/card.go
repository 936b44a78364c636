package entities

import "strings"

const (
	CardSpeed       = "speed"
	CardVision      = "vision"
	CardAngel       = "angel"
	CardBlackout    = "blackout"
	CardReroll      = "reroll"
	CardBlackMarket = "black_market"
	CardFlame       = "flame"
	CardGlitch      = "glitch"
	CardSpotlight   = "spotlight"
	CardTimeWarp    = "time_warp"
	CardMirage      = "mirage"
	CardForcefield  = "forcefield"
	CardDevil       = "devil"
	CardKarma       = "karma"
	CardSwap        = "swap"
	CardInflation   = "inflation"
	CardGod         = "god"
)

type Card struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	Price          int    `json:"price"`          // base price in Power Coins
	RequiresTarget bool   `json:"requiresTarget"` // must be played on another player
	Negative       bool   `json:"negative"`       // subject to karma / forcefield
}

// Catalog is the immutable set of card definitions. It is built once and
// only read afterwards, so it is safe to share between goroutines.
type Catalog struct {
	cards  map[string]Card
	order  []string
	byName map[string]string
}

func NewCatalog(cards []Card) *Catalog {
	c := &Catalog{
		cards:  make(map[string]Card, len(cards)),
		byName: make(map[string]string, len(cards)),
	}
	for _, card := range cards {
		c.cards[card.ID] = card
		c.order = append(c.order, card.ID)
		c.byName[strings.ToLower(card.Name)] = card.ID
	}
	return c
}

// Get returns the card with the given id.
func (c *Catalog) Get(id string) (Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Lookup accepts either a card id or its display name, case-insensitively.
func (c *Catalog) Lookup(nameOrID string) (Card, bool) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if card, ok := c.cards[key]; ok {
		return card, true
	}
	if id, ok := c.byName[key]; ok {
		return c.cards[id], true
	}
	return Card{}, false
}

// IDs returns the card ids in store order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

func (c *Catalog) All() []Card {
	cards := make([]Card, 0, len(c.order))
	for _, id := range c.order {
		cards = append(cards, c.cards[id])
	}
	return cards
}

// Names maps card ids to display names, skipping unknown ids.
func (c *Catalog) Names(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if card, ok := c.cards[id]; ok {
			names = append(names, card.Name)
		}
	}
	return names
}

func DefaultCatalog() *Catalog {
	return NewCatalog(PowerCards())
}

func PowerCards() []Card {
	return []Card{
		// utility
		{ID: CardSpeed, Name: "Speed", Icon: "⚡️", Price: 15,
			Description: "Instantly gain 20 Power Coins. A quick boost to get you ahead!"},
		{ID: CardVision, Name: "Vision", Icon: "👁️", Price: 20, RequiresTarget: true,
			Description: "Secretly view the card inventory of a target player."},
		{ID: CardAngel, Name: "Angel", Icon: "👼", Price: 10, RequiresTarget: true,
			Description: "Gift 20 of your own Power Coins to another player."},
		{ID: CardBlackout, Name: "Blackout", Icon: "🕶️", Price: 15,
			Description: "For 4 hours, you are immune to Vision and Spotlight cards."},
		{ID: CardReroll, Name: "Re-roll", Icon: "♻️", Price: 15,
			Description: "Discard your entire hand to gain back 75% of its total coin value."},
		{ID: CardBlackMarket, Name: "Black Market", Icon: "💰", Price: 10,
			Description: "For 1 hour, all items in the store are 50% off for you."},

		// direct interaction
		{ID: CardFlame, Name: "Flame", Icon: "🔥", Price: 25, RequiresTarget: true, Negative: true,
			Description: "Burn 10 Power Coins from a target player."},
		{ID: CardGlitch, Name: "Glitch", Icon: "🌀", Price: 30, RequiresTarget: true, Negative: true,
			Description: "Force a target player to randomly discard one of their cards."},
		{ID: CardSpotlight, Name: "Spotlight", Icon: "💡", Price: 25, RequiresTarget: true, Negative: true,
			Description: "Publicly reveal a target player's entire card inventory to the group."},
		{ID: CardTimeWarp, Name: "Time Warp", Icon: "⏳", Price: 25, RequiresTarget: true,
			Description: "Immediately end an active Karma effect on a target player."},
		{ID: CardMirage, Name: "Mirage", Icon: "🏜️", Price: 25,
			Description: "For 1 hour, Vision/Spotlight used on you will show a fake hand."},

		// powerful effects
		{ID: CardForcefield, Name: "Forcefield", Icon: "🛡️", Price: 35,
			Description: "Block the next negative card used on you."},
		{ID: CardDevil, Name: "Devil", Icon: "😈", Price: 40, RequiresTarget: true, Negative: true,
			Description: "Steal 25 Power Coins from an opponent."},
		{ID: CardKarma, Name: "Karma", Icon: "⚖️", Price: 45,
			Description: "Any negative card used on you is reflected back to the sender until a Time Warp ends it."},
		{ID: CardSwap, Name: "Swap", Icon: "🔄", Price: 35, RequiresTarget: true, Negative: true,
			Description: "Swap a random card from your hand with a random card from a target's hand."},
		{ID: CardInflation, Name: "Inflation", Icon: "📈", Price: 40,
			Description: "For 1 hour, all card prices in the store are doubled for everyone but you."},

		{ID: CardGod, Name: "God", Icon: "🛐", Price: 60,
			Description: "Choose one of three powers: Blessing (give a Forcefield), Smite (target loses half their coins), or Tribute (all other players pay you 5 coins)."},
	}
}
