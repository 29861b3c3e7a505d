package services

import (
	"context"
	"sync"
	"time"
)

// listeners fans a per-session value out to every subscriber.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(sid string, v T)
}

func (l *listeners[T]) add(fn func(sid string, v T)) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = map[int]func(string, T){}
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

func (l *listeners[T]) notify(sid string, v T) {
	l.mu.Lock()
	fns := make([]func(string, T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(sid, v)
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
