package service

import (
	"context"
	"sync"

	"power-store/entities"
)

type ActivityLog interface {
	Record(ctx context.Context, a entities.Activity) error
	Recent(ctx context.Context, limit int) ([]entities.Activity, error)
}

// MemoryActivityLog keeps the newest entries in a fixed-size ring.
type MemoryActivityLog struct {
	mu      sync.Mutex
	entries []entities.Activity
	next    int
	full    bool
}

func NewMemoryActivityLog(size int) *MemoryActivityLog {
	if size < 1 {
		size = 1
	}
	return &MemoryActivityLog{entries: make([]entities.Activity, size)}
}

func (l *MemoryActivityLog) Record(_ context.Context, a entities.Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.next] = a
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *MemoryActivityLog) Recent(_ context.Context, limit int) ([]entities.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.next
	if l.full {
		n = len(l.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]entities.Activity, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out, nil
}

// RecentActivity is the admin view of the activity log.
func (e *Engine) RecentActivity(ctx context.Context, callerID int64, limit int) ([]entities.Activity, error) {
	if !e.isAdmin(callerID) {
		return nil, ErrNotAuthorized
	}
	entries, err := e.activity.Recent(ctx, limit)
	if err != nil {
		return nil, e.fail("recent activity", err)
	}
	return entries, nil
}
