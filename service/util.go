package service

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Randomizer picks uniformly in [0, n). Tests swap in a scripted one.
type Randomizer interface {
	Intn(n int) int
}

// lockedRand guards an x/exp/rand source, which is not safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(uint64(time.Now().UnixNano())))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// capped is what a balance can actually give up to limit; never negative.
func capped(balance, limit int) int {
	if balance <= 0 {
		return 0
	}
	return minInt(limit, balance)
}
