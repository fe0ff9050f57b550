package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PassesDeadline(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	var called bool
	s.run(Job{Name: "sync", Run: func(ctx context.Context) error {
		called = true
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		return nil
	}})
	assert.True(t, called)

	// Failures are logged, not propagated.
	s.run(Job{Name: "broken", Run: func(context.Context) error { return errors.New("remote down") }})
}

func TestAdd(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	assert.NoError(t, s.Add(Job{Name: "cleanup", Interval: time.Hour, Run: func(context.Context) error { return nil }}))
	assert.Error(t, s.Add(Job{Name: "zero", Run: func(context.Context) error { return nil }}))
}

func TestScheduler_RunsJobs(t *testing.T) {
	s, err := New(clockwork.NewRealClock(), time.Second)
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add(Job{Name: "tick", Interval: 20 * time.Millisecond, Run: func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}))
	s.Start()
	t.Cleanup(func() { _ = s.Shutdown() })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}
