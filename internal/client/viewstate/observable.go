package viewstate

import "sync"

// Observable holds the last published value of type T and notifies
// subscribers on every Set. The zero value is ready to use.
type Observable[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Set stores v and calls every subscriber with it. Subscribers run on the
// caller's goroutine after the lock is released.
func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	o.value = v
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				return
			}
		}
	}
}
