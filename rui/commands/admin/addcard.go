package admin

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/services"
)

var AddCard = discord.SlashCommandCreate{
	Name:        "addcard",
	Description: "Add a card to the catalog (staff only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "card_id",
			Description: "Card ID, e.g. RSKHJV101",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Card rarity",
			Required:    true,
			Choices:     rarityChoices(),
		},
		discord.ApplicationCommandOptionString{
			Name:        "group",
			Description: "Group name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "idol",
			Description: "Idol name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "era",
			Description: "Era or album",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "version",
			Description: "Card version",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "image",
			Description: "Image URL",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "Card type",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Regular", Value: string(models.CardTypeRegular)},
				{Name: "Event", Value: string(models.CardTypeEvent)},
				{Name: "Limited", Value: string(models.CardTypeLimited)},
			},
		},
		discord.ApplicationCommandOptionBool{
			Name:        "droppable",
			Description: "Whether the card can appear in drops (default: yes)",
			Required:    false,
		},
	},
}

func rarityChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(models.Rarities))
	for _, r := range models.Rarities {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{Name: string(r), Value: string(r)})
	}
	return choices
}

func AddCardHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		droppable, set := data.OptBool("droppable")
		if !set {
			droppable = true
		}
		cardType := data.String("type")
		if cardType == "" {
			cardType = string(models.CardTypeRegular)
		}

		req := services.AddCardRequest{
			ID:        data.String("card_id"),
			Rarity:    data.String("rarity"),
			Group:     data.String("group"),
			Idol:      data.String("idol"),
			Era:       data.String("era"),
			Version:   data.String("version"),
			Image:     data.String("image"),
			Type:      cardType,
			Droppable: droppable,
		}
		return b.Execute(e, "addcard", func(ctx context.Context, a services.Actor) (*services.Result, error) {
			return b.Game.AddCard(ctx, a, req)
		})
	}
}
