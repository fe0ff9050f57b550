package cards

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Drop,
	Claim,
	Inventory,
	Buy,
	BuyBoost,
	BuyPack,
}
