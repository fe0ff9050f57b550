package ledger

import "github.com/xlovstudio/rui/rui/economy/cooldown"

// IntSource draws uniform integers in [0, n).
type IntSource interface {
	IntN(n int) int
}

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int64
}

func (r Range) Roll(src IntSource) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + int64(src.IntN(int(r.Max-r.Min+1)))
}

type Reward struct {
	Coins       Range
	Butterflies Range
}

type Payout struct {
	Coins       int64
	Butterflies int64
}

func (r Reward) Roll(src IntSource) Payout {
	return Payout{
		Coins:       r.Coins.Roll(src),
		Butterflies: r.Butterflies.Roll(src),
	}
}

var Rewards = map[cooldown.Action]Reward{
	cooldown.Daily:   {Coins: Range{200, 750}, Butterflies: Range{3, 20}},
	cooldown.Weekly:  {Coins: Range{900, 1800}, Butterflies: Range{10, 35}},
	cooldown.Monthly: {Coins: Range{2500, 5000}, Butterflies: Range{25, 70}},
	cooldown.Work:    {Coins: Range{200, 750}, Butterflies: Range{3, 20}},
}

var WorkMessages = []string{
	"You've been working so hard again... Hyun said you deserve a break.",
	"You showed up again. I'm proud of you, even if Haru keeps stealing your snacks during breaks.",
	"Work done! Don't tell Noa I said this, but you might actually be more productive than him today.",
	"I helped count your coins. Muti said it looks like you're saving for something big.",
	"That look of determination suits you.",
	"You've been putting in so much effort lately... the others noticed too. We're all cheering for you.",
	"You did well again today. Small steps, right? Isn't that what they always say?",
	"Here, I saved a few butterflies for you.",
	"Another day, another job done. Don't forget to rest, okay? Even the strongest need a pause.",
	"You earned these coins and butterflies fair and square. Keep them safe.",
}
