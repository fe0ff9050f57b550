package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/services"
)

// ResponseHandler turns service results into Discord messages.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Database failures, network issues, internal server errors
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// PermissionError - Unauthorized actions, access denied
	PermissionError
	// BusinessLogicError - Cooldowns, insufficient resources, game rule violations
	BusinessLogicError
)

// ErrorTypeOf maps a result status to its error category. OK results report false.
func ErrorTypeOf(s services.Status) (ErrorType, bool) {
	switch s {
	case services.StatusInvalid:
		return UserError, true
	case services.StatusUnavailable:
		return SystemError, true
	case services.StatusNotFound:
		return NotFoundError, true
	case services.StatusForbidden:
		return PermissionError, true
	case services.StatusInsufficient, services.StatusCooldown:
		return BusinessLogicError, true
	}
	return 0, false
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	}
	return "❌"
}

func RarityColor(r models.Rarity) int {
	switch r {
	case models.RarityRare:
		return config.RarityRareColor
	case models.RaritySuperRare:
		return config.RaritySuperRareColor
	case models.RarityUltraRare:
		return config.RarityUltraRareColor
	case models.RarityLegendary:
		return config.RarityLegendaryColor
	case models.RarityEvent:
		return config.RarityEventColor
	case models.RarityLimited:
		return config.RarityLimitedColor
	}
	return config.RarityCommonColor
}

// Embed builds the embed of a result. Failures get the colour and prefix of their category.
func (h *ResponseHandler) Embed(res *services.Result) discord.Embed {
	embed := discord.Embed{
		Title:       res.Title,
		Description: res.Description,
		Color:       config.EmbedDefaultColor,
	}
	if et, failed := ErrorTypeOf(res.Status); failed {
		embed.Title = getErrorPrefix(et) + " " + res.Title
		embed.Color = getErrorColor(et)
	}
	for _, f := range res.Fields {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: boolPtr(f.Inline),
		})
	}
	return embed
}

// Message wraps the result embed into a message, ephemeral when the result asks for it.
func (h *ResponseHandler) Message(res *services.Result) discord.MessageCreate {
	msg := discord.MessageCreate{Embeds: []discord.Embed{h.Embed(res)}}
	if res.Ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return msg
}

// Respond replies to a command with the rendered result.
func (h *ResponseHandler) Respond(event *handler.CommandEvent, res *services.Result) error {
	return event.CreateMessage(h.Message(res))
}

// RespondComponent replies to a component interaction with the rendered result.
func (h *ResponseHandler) RespondComponent(event *handler.ComponentEvent, res *services.Result) error {
	return event.CreateMessage(h.Message(res))
}

func boolPtr(b bool) *bool {
	return &b
}
