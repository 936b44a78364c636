package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"power-store/entities"
	"power-store/repository"
)

const adminID = 1000

// scriptedRand returns its values in order, reduced modulo n, then zeros.
type scriptedRand struct {
	vals []int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	engine   *Engine
	store    *repository.RedisStore
	rdb      *redis.Client
	rng      *scriptedRand
	activity *MemoryActivityLog
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		rdb:      rdb,
		rng:      &scriptedRand{},
		activity: NewMemoryActivityLog(50),
		now:      time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	f.store = repository.NewRedisStore(rdb, "artifacts:test", repository.StoreOptions{MaxRetries: 3, MaxKeys: 500}, zap.NewNop())
	f.engine = NewEngine(f.store, entities.DefaultCatalog(), Options{
		Activity: f.activity,
		IsAdmin:  SingleAdmin(adminID),
		Now:      func() time.Time { return f.now },
		Rand:     f.rng,
		Logger:   zap.NewNop(),
	})
	return f
}

func (f *fixture) addPlayer(id int64, name string, coins int, cards ...string) {
	f.t.Helper()
	if cards == nil {
		cards = []string{}
	}
	p := &entities.Player{ID: id, Username: name, FirstName: name, Coins: coins, Cards: cards, CreatedAt: f.now}
	err := f.store.Transact(f.ctx, repository.PlayerScope(id), func(tx repository.Tx) error {
		return tx.PutPlayer(p)
	})
	if err != nil {
		f.t.Fatalf("add player %d: %v", id, err)
	}
}

func (f *fixture) player(id int64) *entities.Player {
	f.t.Helper()
	p, err := f.store.ReadPlayer(f.ctx, id)
	if err != nil {
		f.t.Fatalf("read player %d: %v", id, err)
	}
	return p
}

func (f *fixture) mutate(id int64, fn func(p *entities.Player)) {
	f.t.Helper()
	err := f.store.Transact(f.ctx, repository.PlayerScope(id), func(tx repository.Tx) error {
		p, err := tx.Player(id)
		if err != nil {
			return err
		}
		fn(p)
		return tx.PutPlayer(p)
	})
	if err != nil {
		f.t.Fatalf("mutate player %d: %v", id, err)
	}
}

func (f *fixture) setInflation(until time.Time, by int64) {
	f.t.Helper()
	err := f.store.Transact(f.ctx, repository.Scope{GameState: true}, func(tx repository.Tx) error {
		return tx.PutGameState(&entities.GameState{InflationUntil: until, InflationUserID: by})
	})
	if err != nil {
		f.t.Fatalf("set inflation: %v", err)
	}
}

func tgt(v int64) *int64 { return &v }

func sameCards(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	counts := make(map[string]int)
	for _, c := range got {
		counts[c]++
	}
	for _, c := range want {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}
