package economy

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/services"
)

var Gift = discord.SlashCommandCreate{
	Name:        "gift",
	Description: "Send coins, butterflies or a card to another player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives the gift",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "what",
			Description: "What to send",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Coins", Value: "coins"},
				{Name: "Butterflies", Value: "butterflies"},
				{Name: "Card", Value: "card"},
			},
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How many coins or butterflies",
			Required:    false,
			MinValue:    &[]int{1}[0],
		},
		discord.ApplicationCommandOptionString{
			Name:        "card_id",
			Description: "The ID of the card to send",
			Required:    false,
		},
	},
}

func GiftHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount, _ := data.OptInt("amount")

		req := services.GiftRequest{
			Target: rui.ActorOf(target.ID, target.Username),
			What:   data.String("what"),
			Amount: int64(amount),
			CardID: data.String("card_id"),
		}
		return b.Execute(e, "gift", func(ctx context.Context, a services.Actor) (*services.Result, error) {
			return b.Game.Gift(ctx, a, req)
		})
	}
}
