package cards

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/economy/catalog"
	"github.com/xlovstudio/rui/rui/services"
)

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "Buy a specific card by ID",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "card_id",
			Description: "The ID of the card, e.g. RSKHJV101",
			Required:    true,
		},
	},
}

var BuyBoost = discord.SlashCommandCreate{
	Name:        "buyboost",
	Description: "Buy a drop boost for butterflies",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "The boost to buy",
			Required:    true,
			Choices:     boostChoices(),
		},
	},
}

var BuyPack = discord.SlashCommandCreate{
	Name:        "buypack",
	Description: "Buy a pack of random cards for coins",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "size",
			Description: "The pack to buy",
			Required:    true,
			Choices:     packChoices(),
		},
	},
}

func boostChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(catalog.BoostOrder))
	for _, tier := range catalog.BoostOrder {
		boost := catalog.Boosts[tier]
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  fmt.Sprintf("%s (%d %s)", tier, boost.Price, config.ButterflyEmoji),
			Value: string(tier),
		})
	}
	return choices
}

func packChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(catalog.PackOrder))
	for _, size := range catalog.PackOrder {
		pack := catalog.Packs[size]
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  fmt.Sprintf("%s: %d cards (%d %s)", size, pack.Cards, pack.Price, config.CoinEmoji),
			Value: string(size),
		})
	}
	return choices
}

func BuyHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		cardID := e.SlashCommandInteractionData().String("card_id")
		return b.Execute(e, "buy", func(ctx context.Context, a services.Actor) (*services.Result, error) {
			return b.Game.Buy(ctx, a, cardID)
		})
	}
}

func BuyBoostHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		tier := e.SlashCommandInteractionData().String("type")
		return b.Execute(e, "buyboost", func(ctx context.Context, a services.Actor) (*services.Result, error) {
			return b.Game.BuyBoost(ctx, a, tier)
		})
	}
}

func BuyPackHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		size := e.SlashCommandInteractionData().String("size")
		return b.Execute(e, "buypack", func(ctx context.Context, a services.Actor) (*services.Result, error) {
			return b.Game.BuyPack(ctx, a, size)
		})
	}
}
