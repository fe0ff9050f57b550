package cards

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/services"
	"github.com/xlovstudio/rui/rui/utils"
)

const pickPrefix = "/drop/pick/"

var Drop = discord.SlashCommandCreate{
	Name:        "drop",
	Description: "Drop 3 random cards and choose 1",
}

func DropHandler(b *rui.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		res, err := b.Run("drop", rui.ActorOf(e.User().ID, e.User().Username), b.Game.Drop)
		if err != nil {
			return err
		}
		if !res.OK() {
			return utils.EH.Respond(e, res)
		}
		return e.CreateMessage(dropMessage(res))
	}
}

// dropMessage renders the offer with one embed and one button per card.
func dropMessage(res *services.Result) discord.MessageCreate {
	main := utils.EH.Embed(res)
	main.Description += fmt.Sprintf("\n\nExpires <t:%d:R>", res.ExpiresAt.Unix())

	embeds := []discord.Embed{main}
	buttons := make([]discord.InteractiveComponent, 0, len(res.Offer))
	for i, c := range res.Offer {
		embed := discord.NewEmbedBuilder().
			SetTitle(fmt.Sprintf("%d. %s · %s", i+1, c.Group, c.Member)).
			SetDescription(fmt.Sprintf("Rarity: **%s**", c.RarityOrCommon())).
			SetColor(utils.RarityColor(c.RarityOrCommon()))
		if c.Era != "" {
			embed.AddField("Era", c.Era, true)
		}
		if c.Image != "" {
			embed.SetImage(c.Image)
		}
		embeds = append(embeds, embed.Build())
		buttons = append(buttons, discord.NewPrimaryButton(strconv.Itoa(i+1), pickPrefix+strconv.Itoa(i)))
	}

	return discord.MessageCreate{
		Embeds:     embeds,
		Components: []discord.ContainerComponent{discord.NewActionRow(buttons...)},
		Flags:      discord.MessageFlagEphemeral,
	}
}

// PickHandler resolves a drop button. The custom id carries the offer index.
func PickHandler(b *rui.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		index, err := strconv.Atoi(strings.TrimPrefix(e.Data.CustomID(), pickPrefix))
		if err != nil {
			index = -1
		}

		res, err := b.Run("pick", rui.ActorOf(e.User().ID, e.User().Username),
			func(ctx context.Context, a services.Actor) (*services.Result, error) {
				return b.Game.Pick(ctx, a, index)
			})
		if err != nil {
			return err
		}

		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &[]discord.Embed{utils.EH.Embed(res)},
			Components: &[]discord.ContainerComponent{},
		})
	}
}
