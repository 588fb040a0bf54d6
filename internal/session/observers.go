package session

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// subscription is one registered observer. active is cleared on unsubscribe so a
// notification pass that already snapshotted the list skips it.
type subscription[T any] struct {
	fn     func(prev, next T)
	active atomic.Bool
}

// observerList keeps observers in subscription order
type observerList[T any] struct {
	mu   sync.Mutex
	subs []*subscription[T]
}

func (l *observerList[T]) add(fn func(prev, next T)) func() {
	sub := &subscription[T]{fn: fn}
	sub.active.Store(true)

	l.mu.Lock()
	l.subs = append(l.subs, sub)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			l.remove(sub)
		})
	}
}

func (l *observerList[T]) remove(target *subscription[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, sub := range l.subs {
		if sub == target {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

func (l *observerList[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// notify calls every active observer in order. A panicking observer is logged
// and skipped so the rest still see the change.
func (l *observerList[T]) notify(logger *slog.Logger, prev, next T) {
	l.mu.Lock()
	snapshot := make([]*subscription[T], len(l.subs))
	copy(snapshot, l.subs)
	l.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.active.Load() {
			continue
		}
		callObserver(logger, sub.fn, prev, next)
	}
}

func callObserver[T any](logger *slog.Logger, fn func(prev, next T), prev, next T) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error("observer panic recovered",
				slog.Any("error", err),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn(prev, next)
}
