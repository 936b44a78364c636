package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"power-store/entities"
	"power-store/repository"
)

const (
	DefaultStartingCoins = 50

	blackoutWindow    = 4 * time.Hour
	mirageWindow      = time.Hour
	blackMarketWindow = time.Hour
	inflationWindow   = time.Hour
)

type Options struct {
	Activity      ActivityLog
	IsAdmin       func(playerID int64) bool
	Now           func() time.Time
	Rand          Randomizer
	// StartingCoins of zero or less means DefaultStartingCoins.
	StartingCoins int
	Logger        *zap.Logger
}

// Engine resolves every game operation. It holds no player state of its own;
// each call re-reads what it needs inside a store transaction.
type Engine struct {
	store         repository.Store
	catalog       *entities.Catalog
	activity      ActivityLog
	isAdmin       func(int64) bool
	now           func() time.Time
	rng           Randomizer
	startingCoins int
	logger        *zap.Logger
}

func NewEngine(store repository.Store, catalog *entities.Catalog, opts Options) *Engine {
	e := &Engine{
		store:         store,
		catalog:       catalog,
		activity:      opts.Activity,
		isAdmin:       opts.IsAdmin,
		now:           opts.Now,
		rng:           opts.Rand,
		startingCoins: opts.StartingCoins,
		logger:        opts.Logger,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.activity == nil {
		e.activity = NewMemoryActivityLog(200)
	}
	if e.isAdmin == nil {
		e.isAdmin = func(int64) bool { return false }
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.rng == nil {
		e.rng = newLockedRand()
	}
	if e.startingCoins <= 0 {
		e.startingCoins = DefaultStartingCoins
	}
	return e
}

// SingleAdmin authorizes exactly one player id.
func SingleAdmin(adminID int64) func(int64) bool {
	return func(id int64) bool { return adminID != 0 && id == adminID }
}

func (e *Engine) Catalog() *entities.Catalog { return e.catalog }

func (e *Engine) IsAdmin(playerID int64) bool { return e.isAdmin(playerID) }

// LookupCard resolves a card id or display name.
func (e *Engine) LookupCard(nameOrID string) (entities.Card, error) {
	card, ok := e.catalog.Lookup(nameOrID)
	if !ok {
		return entities.Card{}, gameErr(KindUnknownCard, "Card '%s' not found. Please use the exact card name or ID.", nameOrID)
	}
	return card, nil
}

// record writes an activity line. Failures are logged, never returned: the
// game action already committed.
func (e *Engine) record(ctx context.Context, actorID int64, kind entities.ActivityKind, message string) {
	if message == "" {
		return
	}
	a := entities.Activity{
		ID:      uuid.NewString(),
		At:      e.now(),
		ActorID: actorID,
		Kind:    kind,
		Message: message,
	}
	e.logger.Info("activity",
		zap.String("id", a.ID),
		zap.Int64("actor", actorID),
		zap.String("kind", string(kind)),
		zap.String("message", message))
	if err := e.activity.Record(ctx, a); err != nil {
		e.logger.Warn("activity log write failed", zap.String("id", a.ID), zap.Error(err))
	}
}

// fail logs internal causes before handing the classified error back.
func (e *Engine) fail(op string, err error) error {
	err = classify(err)
	switch KindOf(err) {
	case KindStoreConflict, KindStoreUnavailable, KindTransactionTooLarge:
		e.logger.Error(op+" failed", zap.Error(err))
	default:
		e.logger.Debug(op+" rejected", zap.Error(err))
	}
	return err
}
