package system

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Overview = discord.SlashCommandCreate{
	Name:        "overview",
	Description: "Show all available commands",
}

func OverviewHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "overview", b.Game.Overview)
	}
}
