package system

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Ping = discord.SlashCommandCreate{
	Name:        "ping",
	Description: "Check if Rui is awake",
}

func PingHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "ping", b.Game.Ping)
	}
}
