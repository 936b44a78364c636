package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"power-store/entities"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("transaction conflict")
	ErrTxTooLarge    = errors.New("transaction too large")
	ErrUndeclaredKey = errors.New("key not declared in transaction")
)

// Scope declares the records a transaction reads and writes. Only declared
// records are watched, so only they may be touched inside the body.
type Scope struct {
	PlayerIDs []int64
	GameState bool
}

func PlayerScope(ids ...int64) Scope {
	return Scope{PlayerIDs: ids}
}

func (s Scope) WithGameState() Scope {
	s.GameState = true
	return s
}

func (s Scope) size() int {
	n := len(s.PlayerIDs)
	if s.GameState {
		n++
	}
	return n
}

// Tx is the view a transaction body gets. Reads return buffered copies; the
// body publishes changes with Put*, and all of them commit together or not at all.
type Tx interface {
	Player(id int64) (*entities.Player, error)
	GameState() (*entities.GameState, error)
	PutPlayer(p *entities.Player) error
	PutGameState(s *entities.GameState) error
}

type Store interface {
	ReadPlayer(ctx context.Context, id int64) (*entities.Player, error)
	// ReadGameState returns the zero state when the record was never written.
	ReadGameState(ctx context.Context) (*entities.GameState, error)
	FindPlayerByHandle(ctx context.Context, handle string) (*entities.Player, error)
	// StreamPlayers calls fn for every player, fetching them in batches.
	// Returning an error from fn stops the stream.
	StreamPlayers(ctx context.Context, fn func(*entities.Player) error) error
	// Transact runs fn atomically over scope, rerunning it on conflict.
	Transact(ctx context.Context, scope Scope, fn func(Tx) error) error
}

type Keyspace struct {
	prefix string
}

func NewKeyspace(prefix string) Keyspace {
	return Keyspace{prefix: prefix}
}

func (k Keyspace) Player(id int64) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

func (k Keyspace) GameState() string {
	return k.prefix + ":state:game_data"
}

func (k Keyspace) Players() string {
	return k.prefix + ":players"
}

func (k Keyspace) Handles() string {
	return k.prefix + ":handles"
}

// NormalizeHandle strips a leading '@' and lowercases the handle.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}
