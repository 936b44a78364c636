package service

import (
	"fmt"
	"strings"

	"power-store/entities"
)

const (
	speedGain  = 20
	angelGift  = 20
	flameBurn  = 10
	devilSteal = 25
)

type effectResult struct {
	public  string
	private string
	// detail describes the effect without naming who played it; karma
	// appends it to the reflection notice.
	detail string
}

type effect func(e *Engine, p *play) (effectResult, error)

var effects = map[string]effect{
	entities.CardSpeed:       speedEffect,
	entities.CardReroll:      rerollEffect,
	entities.CardFlame:       flameEffect,
	entities.CardAngel:       angelEffect,
	entities.CardDevil:       devilEffect,
	entities.CardKarma:       karmaEffect,
	entities.CardForcefield:  forcefieldEffect,
	entities.CardVision:      visionEffect,
	entities.CardSpotlight:   spotlightEffect,
	entities.CardBlackout:    blackoutEffect,
	entities.CardMirage:      mirageEffect,
	entities.CardTimeWarp:    timeWarpEffect,
	entities.CardGlitch:      glitchEffect,
	entities.CardSwap:        swapEffect,
	entities.CardInflation:   inflationEffect,
	entities.CardBlackMarket: blackMarketEffect,
}

// reflectedEffects replace the normal effect under karma for cards whose
// normal effect would also change the karma holder. They receive the mirrored
// play, so p.on is the actor. Flame, Glitch and Spotlight already touch only
// p.on and need no entry.
var reflectedEffects = map[string]effect{
	entities.CardDevil: reflectedDevilEffect,
	entities.CardSwap:  reflectedSwapEffect,
}

func speedEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Coins += speedGain
	return effectResult{
		public: fmt.Sprintf("⚡️ %s used a Speed card and instantly gained %d Power Coins!", p.by.DisplayName(), speedGain),
	}, nil
}

// rerollEffect runs after the played Re-roll left the hand, so any further
// Re-roll cards are kept.
func rerollEffect(e *Engine, p *play) (effectResult, error) {
	var kept, discarded []string
	for _, id := range p.by.Cards {
		if id == entities.CardReroll {
			kept = append(kept, id)
		} else {
			discarded = append(discarded, id)
		}
	}
	if len(discarded) == 0 {
		return effectResult{}, gameErr(KindNoEligibleCards, "You have no other cards to re-roll!")
	}

	value := 0
	for _, id := range discarded {
		card, _ := e.catalog.Get(id)
		value += card.Price
	}
	gained := value * 3 / 4

	p.by.Cards = kept
	p.by.Coins += gained
	return effectResult{
		public: fmt.Sprintf("♻️ %s used Re-roll, discarded %d cards, and regained %d coins!",
			p.by.DisplayName(), len(discarded), gained),
	}, nil
}

// flameEffect does not clamp at zero, unlike Devil and Smite, so a balance
// can go negative.
func flameEffect(_ *Engine, p *play) (effectResult, error) {
	p.on.Coins -= flameBurn
	return effectResult{
		public: fmt.Sprintf("🔥 %s used Flame on %s, burning %d Power Coins!", p.by.DisplayName(), p.on.DisplayName(), flameBurn),
		detail: fmt.Sprintf("%s lost %d Power Coins to the flames.", p.on.DisplayName(), flameBurn),
	}, nil
}

func angelEffect(_ *Engine, p *play) (effectResult, error) {
	if p.by.Coins < angelGift {
		return effectResult{}, gameErr(KindInsufficientFunds, "You need at least %d coins to use the Angel card.", angelGift)
	}
	p.by.Coins -= angelGift
	p.on.Coins += angelGift
	return effectResult{
		public: fmt.Sprintf("👼 %s used an Angel card to gift %d Power Coins to %s!", p.by.DisplayName(), angelGift, p.on.DisplayName()),
	}, nil
}

func devilEffect(_ *Engine, p *play) (effectResult, error) {
	stolen := capped(p.on.Coins, devilSteal)
	p.on.Coins -= stolen
	p.by.Coins += stolen
	return effectResult{
		public: fmt.Sprintf("😈 %s used a Devil card and stole %d Power Coins from %s!", p.by.DisplayName(), stolen, p.on.DisplayName()),
		detail: fmt.Sprintf("%s stole %d Power Coins from %s.", p.by.DisplayName(), stolen, p.on.DisplayName()),
	}, nil
}

// reflectedDevilEffect only debits the actor; the karma holder gains nothing.
func reflectedDevilEffect(_ *Engine, p *play) (effectResult, error) {
	lost := capped(p.on.Coins, devilSteal)
	p.on.Coins -= lost
	return effectResult{
		detail: fmt.Sprintf("%s lost %d Power Coins.", p.on.DisplayName(), lost),
	}, nil
}

// karmaEffect has no time window: karma lasts until a Time Warp.
func karmaEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Status.KarmaActive = true
	return effectResult{
		public: fmt.Sprintf("⚖️ %s activated a Karma card! Negative cards will be reflected until a Time Warp ends it.", p.by.DisplayName()),
	}, nil
}

func forcefieldEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Status.Protected = true
	return effectResult{
		public: fmt.Sprintf("🛡️ %s activated a Forcefield and is now protected from the next negative card.", p.by.DisplayName()),
	}, nil
}

func visionEffect(e *Engine, p *play) (effectResult, error) {
	res := effectResult{public: fmt.Sprintf("👁️ %s used a Vision card on another player.", p.by.DisplayName())}
	kind, hand := e.readHand(p.on, p)
	switch kind {
	case handBlocked:
		res.private = fmt.Sprintf("🕶️ Your Vision was blocked! %s is under a Blackout.", p.on.DisplayName())
	case handMirage:
		res.private = fmt.Sprintf("🏜️ You used Vision on %s. A mirage shows they are holding: %s.", p.on.DisplayName(), hand)
	default:
		res.private = fmt.Sprintf("👁️ You used Vision on %s. They are holding: %s.", p.on.DisplayName(), hand)
	}
	return res, nil
}

func spotlightEffect(e *Engine, p *play) (effectResult, error) {
	by, on := p.by.DisplayName(), p.on.DisplayName()
	kind, hand := e.readHand(p.on, p)
	switch kind {
	case handBlocked:
		return effectResult{
			public: fmt.Sprintf("🕶️ %s's Spotlight was blocked! %s is under a Blackout.", by, on),
			detail: fmt.Sprintf("%s is under a Blackout, so nothing was revealed.", on),
		}, nil
	case handMirage:
		return effectResult{
			public: fmt.Sprintf("💡 %s used Spotlight on %s! A mirage shows their cards are: %s", by, on, hand),
			detail: fmt.Sprintf("A mirage shows %s's cards are: %s", on, hand),
		}, nil
	default:
		return effectResult{
			public: fmt.Sprintf("💡 %s used Spotlight on %s! Their cards are: %s", by, on, hand),
			detail: fmt.Sprintf("%s's cards are: %s", on, hand),
		}, nil
	}
}

func blackoutEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Status.BlackoutUntil = p.now.Add(blackoutWindow)
	return effectResult{
		public: fmt.Sprintf("🕶️ %s activated Blackout! They are immune to Vision and Spotlight for 4 hours.", p.by.DisplayName()),
	}, nil
}

func mirageEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Status.MirageUntil = p.now.Add(mirageWindow)
	return effectResult{
		public: fmt.Sprintf("🏜️ %s cast a Mirage on themself! Their hand will appear differently to spies for 1 hour.", p.by.DisplayName()),
	}, nil
}

// timeWarpEffect is not a negative card, so karma cannot reflect it.
func timeWarpEffect(_ *Engine, p *play) (effectResult, error) {
	p.on.Status.KarmaActive = false
	return effectResult{
		public: fmt.Sprintf("⏳ %s used Time Warp on %s, ending their Karma effect immediately!", p.by.DisplayName(), p.on.DisplayName()),
	}, nil
}

func glitchEffect(e *Engine, p *play) (effectResult, error) {
	by, on := p.by.DisplayName(), p.on.DisplayName()
	if len(p.on.Cards) == 0 {
		return effectResult{
			public: fmt.Sprintf("🌀 %s tried to glitch %s, but they had no cards to discard!", by, on),
			detail: fmt.Sprintf("%s had no cards to discard.", on),
		}, nil
	}
	discarded := p.on.RemoveCardAt(e.rng.Intn(len(p.on.Cards)))
	name := discarded
	if card, ok := e.catalog.Get(discarded); ok {
		name = card.Name
	}
	return effectResult{
		public: fmt.Sprintf("🌀 %s glitched %s's hand, forcing them to discard a %s card!", by, on, name),
		detail: fmt.Sprintf("%s was forced to discard a %s card.", on, name),
	}, nil
}

// swapEffect runs after the played Swap left the hand, which keeps it out of
// the pool.
func swapEffect(e *Engine, p *play) (effectResult, error) {
	if len(p.by.Cards) == 0 || len(p.on.Cards) == 0 {
		return effectResult{}, gameErr(KindNoEligibleCards,
			"The swap failed because one player had no cards to trade!")
	}
	fromBy := p.by.RemoveCardAt(e.rng.Intn(len(p.by.Cards)))
	fromOn := p.on.RemoveCardAt(e.rng.Intn(len(p.on.Cards)))
	p.by.AddCard(fromOn)
	p.on.AddCard(fromBy)

	by, on := p.by.DisplayName(), p.on.DisplayName()
	return effectResult{
		public: fmt.Sprintf("🔄 %s used a Swap card on %s! A random card was exchanged between them.", by, on),
		detail: fmt.Sprintf("%s and %s exchanged a random card.", by, on),
	}, nil
}

// reflectedSwapEffect exchanges nothing. The played Swap is still consumed.
func reflectedSwapEffect(_ *Engine, _ *play) (effectResult, error) {
	return effectResult{detail: "No cards changed hands."}, nil
}

func inflationEffect(_ *Engine, p *play) (effectResult, error) {
	state, err := p.tx.GameState()
	if err != nil {
		return effectResult{}, err
	}
	state.InflationUntil = p.now.Add(inflationWindow)
	state.InflationUserID = p.by.ID
	if err := p.tx.PutGameState(state); err != nil {
		return effectResult{}, err
	}
	return effectResult{
		public: fmt.Sprintf("📈 %s used Inflation! For the next 1 hour, card prices are doubled for everyone else.", p.by.DisplayName()),
	}, nil
}

func blackMarketEffect(_ *Engine, p *play) (effectResult, error) {
	p.by.Status.BlackMarketUntil = p.now.Add(blackMarketWindow)
	return effectResult{
		public: fmt.Sprintf("💰 %s used Black Market! For the next hour, all store prices are 50%% off for you.", p.by.DisplayName()),
	}, nil
}

type handKind int

const (
	handReal handKind = iota
	handBlocked
	handMirage
)

// readHand is what Vision and Spotlight see. Blackout hides everything and
// is checked before Mirage, which shows 1 to 3 random catalog cards.
func (e *Engine) readHand(victim *entities.Player, p *play) (handKind, string) {
	switch {
	case victim.Status.BlackoutActive(p.now):
		return handBlocked, ""
	case victim.Status.MirageActive(p.now):
		return handMirage, strings.Join(e.fakeHand(), ", ")
	}
	names := e.catalog.Names(victim.Cards)
	if len(names) == 0 {
		return handReal, "None"
	}
	return handReal, strings.Join(names, ", ")
}

func (e *Engine) fakeHand() []string {
	ids := e.catalog.IDs()
	n := 1 + e.rng.Intn(3)
	fake := make([]string, 0, n)
	for i := 0; i < n; i++ {
		card, _ := e.catalog.Get(ids[e.rng.Intn(len(ids))])
		fake = append(fake, card.Name)
	}
	return fake
}
