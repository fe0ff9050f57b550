package cards

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Claim = discord.SlashCommandCreate{
	Name:        "claim",
	Description: "Claim 1 random card",
}

func ClaimHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "claim", b.Game.Claim)
	}
}
