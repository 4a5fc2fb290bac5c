package utils

import (
	"sync"
)

// Broadcaster fans one value out to every subscribed channel. A
// subscriber that stops draining its buffer is dropped and its channel
// closed, it never blocks the publisher.
type Broadcaster[T any] struct {
	mu        *sync.Mutex
	listeners map[chan T]struct{}
	closed    bool
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		mu:        &sync.Mutex{},
		listeners: make(map[chan T]struct{}),
	}
}

// Subscribe registers a buffered channel and returns it with a cancel
// func. Cancel closes the channel and is safe to call more than once.
func (b *Broadcaster[T]) Subscribe(buf int) (<-chan T, func()) {
	ch := make(chan T, buf)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.listeners[ch] = struct{}{}
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.listeners[ch]; !ok {
			return
		}
		delete(b.listeners, ch)
		close(ch)
	}
}

// Publish delivers v to every listener and returns how many slow
// listeners were dropped.
func (b *Broadcaster[T]) Publish(v T) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	dropped := 0
	for ch := range b.listeners {
		select {
		case ch <- v:
		default:
			delete(b.listeners, ch)
			close(ch)
			dropped++
		}
	}
	return dropped
}

func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for ch := range b.listeners {
		close(ch)
	}
	b.listeners = nil
	b.closed = true
}
