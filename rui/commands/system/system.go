package system

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Ping,
	Start,
	Overview,
}
