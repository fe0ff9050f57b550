package cards

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/services"
	"github.com/xlovstudio/rui/rui/utils"
)

var Inventory = discord.SlashCommandCreate{
	Name:        "inventory",
	Description: "View your collected cards",
}

func InventoryHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		res, err := b.Run("inventory", rui.ActorOf(e.User().ID, e.User().Username), b.Game.Inventory)
		if err != nil {
			return err
		}
		if len(res.Owned) == 0 {
			return utils.EH.Respond(e, res)
		}

		owned := res.Owned
		totalPages := services.InventoryPages(len(owned))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle(res.Title).
					SetDescription(res.Description).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Total Cards: %d", page+1, totalPages, len(owned)), "")
				for _, f := range services.InventoryPage(owned, page) {
					embed.AddField(f.Name, f.Value, f.Inline)
				}
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
