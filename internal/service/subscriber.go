package service

import "sync"

// subscriber is a bounded mailbox: when full, the oldest value is dropped so
// a slow reader always receives the latest one.
type subscriber[T any] struct {
	ch     chan T
	mu     sync.Mutex
	closed bool
}

func newSubscriber[T any](size int) *subscriber[T] {
	if size < 1 {
		size = 1
	}
	return &subscriber[T]{ch: make(chan T, size)}
}

func (s *subscriber[T]) channel() <-chan T { return s.ch }

func (s *subscriber[T]) send(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- v:
		return
	default:
		// Drop oldest to make room.
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- v:
		default:
		}
	}
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	close(s.ch)
	s.closed = true
}

// fanout tracks subscribers of one stream.
type fanout[T any] struct {
	size int
	mu   sync.Mutex
	subs map[*subscriber[T]]struct{}
	done bool
}

func newFanout[T any](size int) *fanout[T] {
	return &fanout[T]{size: size, subs: make(map[*subscriber[T]]struct{})}
}

// subscribe registers a listener, primed with initial when prime is true.
func (f *fanout[T]) subscribe(initial T, prime bool) (<-chan T, func()) {
	sub := newSubscriber[T](f.size)
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()
		sub.close()
		return sub.channel(), func() {}
	}
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	if prime {
		sub.send(initial)
	}
	return sub.channel(), func() { f.remove(sub) }
}

func (f *fanout[T]) publish(v T) {
	f.mu.Lock()
	targets := make([]*subscriber[T], 0, len(f.subs))
	for sub := range f.subs {
		targets = append(targets, sub)
	}
	f.mu.Unlock()

	for _, sub := range targets {
		sub.send(v)
	}
}

func (f *fanout[T]) remove(sub *subscriber[T]) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
	sub.close()
}

func (f *fanout[T]) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// closeAll closes every subscriber and rejects new ones.
func (f *fanout[T]) closeAll() {
	f.mu.Lock()
	subs := f.subs
	f.subs = make(map[*subscriber[T]]struct{})
	f.done = true
	f.mu.Unlock()
	for sub := range subs {
		sub.close()
	}
}
