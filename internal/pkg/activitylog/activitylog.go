// Package activitylog keeps a bounded, in-memory trail of admin actions for the dashboard.
package activitylog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Entry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
}

type Log struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	now     func() time.Time
	logger  *slog.Logger
}

// New returns a log retaining at most size entries; older ones are overwritten.
func New(size int, logger *slog.Logger) *Log {
	if size < 1 {
		size = 1
	}
	return &Log{
		entries: make([]Entry, size),
		now:     time.Now,
		logger:  logger,
	}
}

func (l *Log) Record(ctx context.Context, action, detail string) {
	e := Entry{At: l.now(), Action: action, Detail: detail}

	l.mu.Lock()
	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	if l.logger != nil {
		l.logger.InfoContext(ctx, "admin activity", "action", action, "detail", detail)
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns everything retained.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.next
	if l.full {
		count = len(l.entries)
	}
	if n <= 0 || n > count {
		n = count
	}

	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}
