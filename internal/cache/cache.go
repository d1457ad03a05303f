package cache

import (
	"sync"
	"time"
)

// Cache keeps loaded values for ttl. Loader errors are returned to the caller
// and never cached.
type Cache[K comparable, T any] struct {
	m      sync.Map
	ttl    time.Duration
	loader func(key K) (T, error)
}

type entry[T any] struct {
	mx    sync.Mutex
	value T
	ts    time.Time
}

func NewWithTTL[K comparable, T any](ttl time.Duration, loader func(key K) (T, error)) *Cache[K, T] {
	return &Cache[K, T]{
		m:      sync.Map{},
		ttl:    ttl,
		loader: loader,
	}
}

func (c *Cache[K, T]) Clean() {
	c.m.Range(func(key, value any) bool {
		e := value.(*entry[T])

		if !e.mx.TryLock() {
			return true
		}

		defer e.mx.Unlock()

		if time.Since(e.ts) > c.ttl*10 {
			c.m.Delete(key)
		}

		return true
	})
}

// Invalidate drops the value so the next Load calls the loader.
func (c *Cache[K, T]) Invalidate(key K) {
	if v, ok := c.m.Load(key); ok {
		e := v.(*entry[T])

		e.mx.Lock()
		e.ts = time.Time{}
		e.mx.Unlock()
	}
}

func (c *Cache[K, T]) Load(key K) (T, error) {
	var e *entry[T]

	if v, ok := c.m.Load(key); ok {
		e = v.(*entry[T])
	} else {
		v1, _ := c.m.LoadOrStore(key, new(entry[T]))
		e = v1.(*entry[T])
	}

	e.mx.Lock()
	defer e.mx.Unlock()

	if e.ts.IsZero() || time.Since(e.ts) > c.ttl {
		v, err := c.loader(key)
		if err != nil {
			return v, err
		}

		e.value = v
		e.ts = time.Now()
	}

	return e.value, nil
}
