package economy

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "Claim your daily reward",
}

var Weekly = discord.SlashCommandCreate{
	Name:        "weekly",
	Description: "Claim your weekly reward",
}

var Monthly = discord.SlashCommandCreate{
	Name:        "monthly",
	Description: "Claim your monthly reward",
}

var Work = discord.SlashCommandCreate{
	Name:        "work",
	Description: "Work for coins and butterflies",
}

func DailyHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "daily", b.Game.Daily)
	}
}

func WeeklyHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "weekly", b.Game.Weekly)
	}
}

func MonthlyHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "monthly", b.Game.Monthly)
	}
}

func WorkHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "work", b.Game.Work)
	}
}
