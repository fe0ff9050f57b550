// Package cooldown gates timed actions on their last-use timestamps.
package cooldown

import (
	"fmt"
	"time"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
)

type Action string

const (
	Daily   Action = "daily"
	Weekly  Action = "weekly"
	Monthly Action = "monthly"
	Work    Action = "work"
	Claim   Action = "claim"
	Drop    Action = "drop"
)

// Policy is the window of one action and the unit its remaining wait is shown in.
type Policy struct {
	Action Action
	Window time.Duration
	Unit   time.Duration
}

var Policies = map[Action]Policy{
	Daily:   {Daily, config.DailyCooldown, time.Hour},
	Weekly:  {Weekly, config.WeeklyCooldown, 24 * time.Hour},
	Monthly: {Monthly, config.MonthlyCooldown, 24 * time.Hour},
	Work:    {Work, config.WorkCooldown, time.Minute},
	Claim:   {Claim, config.ClaimCooldown, time.Second},
	Drop:    {Drop, config.DropCooldown, time.Second},
}

type Verdict struct {
	Ready     bool
	Remaining time.Duration
}

// Check reports whether at least window has elapsed since last. A nil last is always ready.
func Check(last *time.Time, window time.Duration, now time.Time) Verdict {
	if last == nil || last.IsZero() {
		return Verdict{Ready: true}
	}
	elapsed := now.Sub(*last)
	if elapsed >= window {
		return Verdict{Ready: true}
	}
	return Verdict{Remaining: window - elapsed}
}

// Check evaluates the policy against the user's own timestamp for the action.
func (p Policy) Check(u *models.User, now time.Time) Verdict {
	return Check(*field(u, p.Action), p.Window, now)
}

// Mark records now as the action's last use.
func (p Policy) Mark(u *models.User, now time.Time) {
	t := now
	*field(u, p.Action) = &t
}

// Last returns the action's last-use timestamp.
func (p Policy) Last(u *models.User) *time.Time {
	return *field(u, p.Action)
}

// Rounded returns the remaining wait rounded up to whole units.
func (p Policy) Rounded(remaining time.Duration) int64 {
	return CeilUnits(remaining, p.Unit)
}

// Describe renders the remaining wait in the policy's unit.
func (p Policy) Describe(remaining time.Duration) string {
	n := p.Rounded(remaining)
	name := unitName(p.Unit)
	if n != 1 {
		name += "s"
	}
	return fmt.Sprintf("%d %s", n, name)
}

func CeilUnits(d, unit time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	n := int64(d / unit)
	if d%unit != 0 {
		n++
	}
	return n
}

func unitName(unit time.Duration) string {
	switch unit {
	case 24 * time.Hour:
		return "day"
	case time.Hour:
		return "hour"
	case time.Minute:
		return "minute"
	default:
		return "second"
	}
}

func field(u *models.User, a Action) **time.Time {
	switch a {
	case Daily:
		return &u.LastDaily
	case Weekly:
		return &u.LastWeekly
	case Monthly:
		return &u.LastMonthly
	case Work:
		return &u.LastWork
	case Claim:
		return &u.LastClaim
	case Drop:
		return &u.LastDrop
	}
	panic(fmt.Sprintf("cooldown: unknown action %q", a))
}

// WaitError is returned when an action is attempted before its window elapsed.
type WaitError struct {
	Policy    Policy
	Remaining time.Duration
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("%s is on cooldown for %s", e.Policy.Action, e.Policy.Describe(e.Remaining))
}

// Require returns a *WaitError when the policy is not ready for u.
func (p Policy) Require(u *models.User, now time.Time) error {
	v := p.Check(u, now)
	if v.Ready {
		return nil
	}
	return &WaitError{Policy: p, Remaining: v.Remaining}
}
