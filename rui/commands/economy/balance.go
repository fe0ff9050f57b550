package economy

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "Show your coins, butterflies and cards",
}

func BalanceHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return b.Execute(e, "balance", b.Game.Balance)
	}
}
