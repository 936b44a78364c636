package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"power-store/entities"
)

const scanBatch = 100

type StoreOptions struct {
	MaxRetries int // attempts before ErrConflict
	MaxKeys    int // largest declared scope a transaction may watch
}

// RedisStore keeps one JSON document per player and relies on
// WATCH/MULTI/EXEC for optimistic transactions.
type RedisStore struct {
	rdb    *redis.Client
	keys   Keyspace
	opts   StoreOptions
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, prefix string, opts StoreOptions, logger *zap.Logger) *RedisStore {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &RedisStore{
		rdb:    rdb,
		keys:   NewKeyspace(prefix),
		opts:   opts,
		logger: logger,
	}
}

func (s *RedisStore) ReadPlayer(ctx context.Context, id int64) (*entities.Player, error) {
	val, err := s.rdb.Get(ctx, s.keys.Player(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read player %d: %w", id, err)
	}
	return decodePlayer(val)
}

func (s *RedisStore) ReadGameState(ctx context.Context) (*entities.GameState, error) {
	val, err := s.rdb.Get(ctx, s.keys.GameState()).Bytes()
	if err == redis.Nil {
		return &entities.GameState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read game state: %w", err)
	}
	var state entities.GameState
	if err := json.Unmarshal(val, &state); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) FindPlayerByHandle(ctx context.Context, handle string) (*entities.Player, error) {
	handle = NormalizeHandle(handle)
	idStr, err := s.rdb.HGet(ctx, s.keys.Handles(), handle).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("handle @%s: %w", handle, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup handle @%s: %w", handle, err)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("handle @%s has bad id %q: %w", handle, idStr, err)
	}
	return s.ReadPlayer(ctx, id)
}

func (s *RedisStore) StreamPlayers(ctx context.Context, fn func(*entities.Player) error) error {
	var cursor uint64
	for {
		ids, next, err := s.rdb.SScan(ctx, s.keys.Players(), cursor, "", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan players: %w", err)
		}
		if len(ids) > 0 {
			keys := make([]string, 0, len(ids))
			for _, idStr := range ids {
				id, err := strconv.ParseInt(idStr, 10, 64)
				if err != nil {
					s.logger.Warn("skipping malformed player id", zap.String("id", idStr))
					continue
				}
				keys = append(keys, s.keys.Player(id))
			}
			if len(keys) == 0 {
				cursor = next
				if cursor == 0 {
					return nil
				}
				continue
			}
			vals, err := s.rdb.MGet(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("fetch players: %w", err)
			}
			for i, v := range vals {
				raw, ok := v.(string)
				if !ok {
					// listed in the set but the document is gone
					continue
				}
				p, err := decodePlayer([]byte(raw))
				if err != nil {
					return fmt.Errorf("%s: %w", keys[i], err)
				}
				if err := fn(p); err != nil {
					return err
				}
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisStore) Transact(ctx context.Context, scope Scope, fn func(Tx) error) error {
	if s.opts.MaxKeys > 0 && scope.size() > s.opts.MaxKeys {
		return fmt.Errorf("%d records (limit %d): %w", scope.size(), s.opts.MaxKeys, ErrTxTooLarge)
	}
	keys := s.scopeKeys(scope)

	for attempt := 1; attempt <= s.opts.MaxRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(rtx *redis.Tx) error {
			tx, err := s.load(ctx, rtx, scope)
			if err != nil {
				return err
			}
			if err := fn(tx); err != nil {
				return err
			}
			if !tx.dirty() {
				return nil
			}
			_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				return tx.flush(ctx, pipe)
			})
			return err
		}, keys...)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.logger.Debug("transaction conflict, retrying",
			zap.Int("attempt", attempt), zap.Strings("keys", keys))
	}
	return fmt.Errorf("after %d attempts: %w", s.opts.MaxRetries, ErrConflict)
}

func (s *RedisStore) scopeKeys(scope Scope) []string {
	keys := make([]string, 0, scope.size())
	for _, id := range scope.PlayerIDs {
		keys = append(keys, s.keys.Player(id))
	}
	if scope.GameState {
		keys = append(keys, s.keys.GameState())
	}
	return keys
}

func (s *RedisStore) load(ctx context.Context, rtx *redis.Tx, scope Scope) (*redisTx, error) {
	tx := &redisTx{
		keys:       s.keys,
		players:    make(map[int64]*entities.Player, len(scope.PlayerIDs)),
		handles:    make(map[int64]string, len(scope.PlayerIDs)),
		dirtyIDs:   make(map[int64]bool),
		stateInTxn: scope.GameState,
	}
	for _, id := range scope.PlayerIDs {
		tx.players[id] = nil
	}

	keys := s.scopeKeys(scope)
	if len(keys) == 0 {
		return tx, nil
	}
	vals, err := rtx.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load transaction records: %w", err)
	}
	for i, id := range scope.PlayerIDs {
		raw, ok := vals[i].(string)
		if !ok {
			continue
		}
		p, err := decodePlayer([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", id, err)
		}
		tx.players[id] = p
		tx.handles[id] = NormalizeHandle(p.Username)
	}
	if scope.GameState {
		tx.state = &entities.GameState{}
		if raw, ok := vals[len(vals)-1].(string); ok {
			if err := json.Unmarshal([]byte(raw), tx.state); err != nil {
				return nil, fmt.Errorf("decode game state: %w", err)
			}
		}
	}
	return tx, nil
}

type redisTx struct {
	keys       Keyspace
	players    map[int64]*entities.Player // nil value: declared but absent
	handles    map[int64]string           // handle as loaded, for index upkeep
	dirtyIDs   map[int64]bool
	state      *entities.GameState
	stateInTxn bool
	stateDirty bool
}

func (t *redisTx) Player(id int64) (*entities.Player, error) {
	p, declared := t.players[id]
	if !declared {
		return nil, fmt.Errorf("player %d: %w", id, ErrUndeclaredKey)
	}
	if p == nil {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return p.Clone(), nil
}

func (t *redisTx) GameState() (*entities.GameState, error) {
	if !t.stateInTxn {
		return nil, fmt.Errorf("game state: %w", ErrUndeclaredKey)
	}
	return t.state.Clone(), nil
}

func (t *redisTx) PutPlayer(p *entities.Player) error {
	if _, declared := t.players[p.ID]; !declared {
		return fmt.Errorf("player %d: %w", p.ID, ErrUndeclaredKey)
	}
	t.players[p.ID] = p.Clone()
	t.dirtyIDs[p.ID] = true
	return nil
}

func (t *redisTx) PutGameState(s *entities.GameState) error {
	if !t.stateInTxn {
		return fmt.Errorf("game state: %w", ErrUndeclaredKey)
	}
	t.state = s.Clone()
	t.stateDirty = true
	return nil
}

func (t *redisTx) dirty() bool {
	return len(t.dirtyIDs) > 0 || t.stateDirty
}

// flush queues every dirty record. An encoding error aborts the pipeline
// before EXEC, so nothing is written.
func (t *redisTx) flush(ctx context.Context, pipe redis.Pipeliner) error {
	for id := range t.dirtyIDs {
		p := t.players[id]
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode player %d: %w", id, err)
		}
		pipe.Set(ctx, t.keys.Player(id), data, 0)
		pipe.SAdd(ctx, t.keys.Players(), id)

		handle := NormalizeHandle(p.Username)
		if old := t.handles[id]; old != "" && old != handle {
			pipe.HDel(ctx, t.keys.Handles(), old)
		}
		if handle != "" {
			pipe.HSet(ctx, t.keys.Handles(), handle, id)
		}
	}
	if t.stateDirty {
		data, err := json.Marshal(t.state)
		if err != nil {
			return fmt.Errorf("encode game state: %w", err)
		}
		pipe.Set(ctx, t.keys.GameState(), data, 0)
	}
	return nil
}

func decodePlayer(raw []byte) (*entities.Player, error) {
	var p entities.Player
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &p, nil
}
