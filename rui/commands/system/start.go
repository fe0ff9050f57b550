package system

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Start = discord.SlashCommandCreate{
	Name:        "start",
	Description: "Create your collector profile",
}

func StartHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "start", b.Game.Start)
	}
}
