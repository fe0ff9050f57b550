package userlock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_SerializesSameUser(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "42")
			require.NoError(t, err)
			defer unlock()

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			counter++

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 1, maxSeen)
}

func TestLock_OverlappingSetsDoNotDeadlock(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := []string{"a", "b"}
			if i%2 == 1 {
				ids = []string{"b", "a", "b"}
			}
			unlock, err := m.Lock(ctx, ids...)
			require.NoError(t, err)
			unlock()
		}()
	}
	wg.Wait()
	require.NoError(t, ctx.Err())
}

func TestLock_ContextCancelled(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), time.Minute)
	unlock, err := m.Lock(context.Background(), "1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Lock(ctx, "0", "1")
	assert.ErrorIs(t, err, context.Canceled)

	// "0" was released on failure
	unlock0, err := m.Lock(context.Background(), "0")
	require.NoError(t, err)
	unlock0()

	unlock()
	unlock() // releasing twice is a no-op
	again, err := m.Lock(context.Background(), "1")
	require.NoError(t, err)
	again()
}

func TestCleanup(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewManager(clock, 10*time.Minute)

	unlock, err := m.Lock(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Active())

	clock.Advance(time.Hour)
	assert.Equal(t, 0, m.Cleanup(), "held locks are kept")

	unlock()
	clock.Advance(5 * time.Minute)
	assert.Equal(t, 0, m.Cleanup())

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 2, m.Cleanup())
	assert.Equal(t, 0, m.Active())
}
