package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/economy/cooldown"
	"github.com/xlovstudio/rui/rui/economy/ledger"
)

type rewardText struct {
	done        string
	doneTitle   string
	waitTitle   string
	waitMessage string
}

var rewardTexts = map[cooldown.Action]rewardText{
	cooldown.Daily: {
		doneTitle:   "Daily collected",
		done:        "%s, here is what I found for you today.",
		waitTitle:   "Daily already claimed",
		waitMessage: "You already picked up today's rewards, %s. Come back in about %s.",
	},
	cooldown.Weekly: {
		doneTitle:   "Weekly collected",
		done:        "Weekly rewards for %s.",
		waitTitle:   "Weekly already claimed",
		waitMessage: "That one is only once per week, %s. Come back in about %s.",
	},
	cooldown.Monthly: {
		doneTitle:   "Monthly collected",
		done:        "Big drop for %s.",
		waitTitle:   "Monthly already claimed",
		waitMessage: "You already took your monthly pack, %s. Come back in about %s.",
	},
	cooldown.Work: {
		doneTitle:   "Work complete",
		waitTitle:   "Not yet",
		waitMessage: "You already helped out recently, %s. Come back in %s.",
	},
}

func (s *GameService) Daily(ctx context.Context, a Actor) (*Result, error) {
	return s.reward(ctx, a, cooldown.Daily)
}

func (s *GameService) Weekly(ctx context.Context, a Actor) (*Result, error) {
	return s.reward(ctx, a, cooldown.Weekly)
}

func (s *GameService) Monthly(ctx context.Context, a Actor) (*Result, error) {
	return s.reward(ctx, a, cooldown.Monthly)
}

func (s *GameService) Work(ctx context.Context, a Actor) (*Result, error) {
	return s.reward(ctx, a, cooldown.Work)
}

// reward grants a timed reward once its cooldown elapsed. A blocked attempt changes nothing.
func (s *GameService) reward(ctx context.Context, a Actor, action cooldown.Action) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	policy := cooldown.Policies[action]
	text := rewardTexts[action]
	now := s.clock.Now()

	if err := policy.Require(u, now); err != nil {
		var wait *cooldown.WaitError
		if !errors.As(err, &wait) {
			return nil, err
		}
		res := fail(StatusCooldown, text.waitTitle, fmt.Sprintf(text.waitMessage, a.Name, policy.Describe(wait.Remaining)))
		res.Wait = wait.Remaining
		res.Ephemeral = false
		return res, nil
	}

	payout := ledger.Rewards[action].Roll(s.rand)
	if err := ledger.Grant(u, payout.Coins, payout.Butterflies); err != nil {
		return nil, err
	}
	policy.Mark(u, now)

	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}

	if action == cooldown.Work {
		msg := ledger.WorkMessages[s.rand.IntN(len(ledger.WorkMessages))]
		return ok(text.doneTitle, fmt.Sprintf("%s\nYou earned %d %s and %d %s.\nNew total: %s.",
			msg, payout.Coins, config.CoinEmoji, payout.Butterflies, config.ButterflyEmoji, totals(u))), nil
	}

	return ok(text.doneTitle, fmt.Sprintf(text.done, a.Name),
		Field{Name: config.CoinEmoji + " Coins", Value: fmt.Sprintf("+%d", payout.Coins), Inline: true},
		Field{Name: config.ButterflyEmoji + " Butterflies", Value: fmt.Sprintf("+%d", payout.Butterflies), Inline: true},
		Field{Name: "New total", Value: totals(u)},
	), nil
}
