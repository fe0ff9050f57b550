package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/database/models"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestCheck(t *testing.T) {
	last := now.Add(-10 * time.Minute)
	zero := time.Time{}

	tests := []struct {
		name   string
		last   *time.Time
		window time.Duration
		want   Verdict
	}{
		{"never used", nil, time.Hour, Verdict{Ready: true}},
		{"zero time", &zero, time.Hour, Verdict{Ready: true}},
		{"window elapsed", &last, 10 * time.Minute, Verdict{Ready: true}},
		{"still waiting", &last, 15 * time.Minute, Verdict{Remaining: 5 * time.Minute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.last, tt.window, now); got != tt.want {
				t.Errorf("Check() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPolicy_Describe(t *testing.T) {
	tests := []struct {
		action    Action
		remaining time.Duration
		want      string
	}{
		{Daily, 2*time.Hour + time.Second, "3 hours"},
		{Daily, time.Hour, "1 hour"},
		{Weekly, 25 * time.Hour, "2 days"},
		{Work, 30 * time.Second, "1 minute"},
		{Claim, 1500 * time.Millisecond, "2 seconds"},
		{Drop, time.Second, "1 second"},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, Policies[tt.action].Describe(tt.remaining))
		})
	}
}

func TestPolicy_MarkAndRequire(t *testing.T) {
	u := &models.User{}
	p := Policies[Work]

	require.NoError(t, p.Require(u, now))
	p.Mark(u, now)
	require.NotNil(t, u.LastWork)
	assert.Equal(t, now, *p.Last(u))

	err := p.Require(u, now.Add(5*time.Minute))
	var wait *WaitError
	require.True(t, errors.As(err, &wait))
	assert.Equal(t, 10*time.Minute, wait.Remaining)
	assert.Equal(t, Work, wait.Policy.Action)

	// a refused attempt leaves the timestamp alone
	assert.Equal(t, now, *u.LastWork)
	assert.NoError(t, p.Require(u, now.Add(15*time.Minute)))
}

func TestPolicies_UseOwnFields(t *testing.T) {
	u := &models.User{}
	Policies[Daily].Mark(u, now)

	for action, p := range Policies {
		if action == Daily {
			continue
		}
		assert.True(t, p.Check(u, now).Ready, "action %s", action)
	}
	assert.False(t, Policies[Daily].Check(u, now.Add(23*time.Hour)).Ready)
}

func TestCeilUnits(t *testing.T) {
	assert.Equal(t, int64(0), CeilUnits(0, time.Second))
	assert.Equal(t, int64(1), CeilUnits(time.Nanosecond, time.Hour))
	assert.Equal(t, int64(2), CeilUnits(time.Hour+time.Nanosecond, time.Hour))
}
