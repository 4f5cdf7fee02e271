package viewstate

import (
	"context"
	"sync"
)

// lifecycle ties requests to the lifetime of a holder.
type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle() lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return lifecycle{ctx: ctx, cancel: cancel}
}

// bind derives a request context that is cancelled when either parent is
// done or the holder is closed.
func (l *lifecycle) bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (l *lifecycle) closed() bool {
	return l.ctx.Err() != nil
}

// Close abandons every request in flight. Later results are ignored.
func (l *lifecycle) Close() {
	l.cancel()
}

// stream orders the requests of one kind: a response may only be
// published if no newer request was started meanwhile.
type stream struct {
	mu     sync.Mutex
	latest uint64
}

func (s *stream) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

func (s *stream) accept(ticket uint64, l *lifecycle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket == s.latest && !l.closed()
}
