package cache

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkCache(b *testing.B) {
	c := NewWithTTL[int, *time.Time](time.Millisecond*100, func(key int) (*time.Time, error) {
		t := time.Now()
		return &t, nil
	})

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < b.N; i++ {
		_, _ = c.Load(r.Intn(50))
	}
}

func TestCache(t *testing.T) {
	ttl := time.Millisecond * 10
	c := NewWithTTL[int, *time.Time](ttl, func(key int) (*time.Time, error) {
		t := time.Now()
		return &t, nil
	})

	wg := new(sync.WaitGroup)

	go func() {
		c.Clean()
	}()

	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := rand.New(rand.NewSource(time.Now().UnixNano()))

			for i := 0; i < 10000; i++ {
				res, err := c.Load(r.Intn(1000))

				assert.NoError(t, err)
				assert.NotNil(t, res)
				assert.Less(t, time.Since(*res), ttl*time.Duration(2))
			}
		}()
	}

	wg.Wait()
}

func TestCacheErrorNotCached(t *testing.T) {
	var calls atomic.Int32

	fail := true
	c := NewWithTTL[string, int](time.Minute, func(key string) (int, error) {
		calls.Add(1)

		if fail {
			return 0, errors.New("boom")
		}

		return 42, nil
	})

	_, err := c.Load("a")
	require.Error(t, err)

	fail = false

	v, err := c.Load("a")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.Load("a")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(2), calls.Load())

	c.Invalidate("a")

	_, err = c.Load("a")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}
