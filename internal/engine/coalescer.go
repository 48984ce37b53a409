package engine

import "sync"

// coalescer merges bursts of same-key scheduled tasks: any number of posts
// for one key before the scheduled callback runs collapse into a single
// execution of the latest callback. One pending task per key, ever.
type coalescer[K comparable] struct {
	mu        sync.Mutex
	pending   map[K]bool
	callbacks map[K]func()
	post      func(func())
	destroyed bool
}

func newCoalescer[K comparable](post func(func())) *coalescer[K] {
	if post == nil {
		panic("engine.newCoalescer: post function cannot be nil")
	}

	return &coalescer[K]{
		pending:   make(map[K]bool),
		callbacks: make(map[K]func()),
		post:      post,
	}
}

func (c *coalescer[K]) Post(key K, fn func()) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	if c.pending[key] {
		c.mu.Unlock()
		return
	}
	c.pending[key] = true
	post := c.post
	c.mu.Unlock()

	post(func() {
		c.mu.Lock()
		if c.destroyed {
			delete(c.pending, key)
			delete(c.callbacks, key)
			c.mu.Unlock()
			return
		}
		fn := c.callbacks[key]
		delete(c.pending, key)
		delete(c.callbacks, key)
		c.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Pending reports whether a task is scheduled for the key.
func (c *coalescer[K]) Pending(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[key]
}

// Drop discards any pending task for the key without running it. Used when
// the key's owner is unregistered before its tick fires.
func (c *coalescer[K]) Drop(key K) {
	c.mu.Lock()
	delete(c.pending, key)
	delete(c.callbacks, key)
	c.mu.Unlock()
}

func (c *coalescer[K]) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = make(map[K]bool)
	c.callbacks = make(map[K]func())
	c.mu.Unlock()
}
