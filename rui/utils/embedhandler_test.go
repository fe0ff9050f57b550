package utils

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/services"
)

func TestErrorTypeOf(t *testing.T) {
	tests := []struct {
		status services.Status
		want   ErrorType
		failed bool
	}{
		{services.StatusOK, 0, false},
		{services.StatusInvalid, UserError, true},
		{services.StatusInsufficient, BusinessLogicError, true},
		{services.StatusCooldown, BusinessLogicError, true},
		{services.StatusForbidden, PermissionError, true},
		{services.StatusUnavailable, SystemError, true},
		{services.StatusNotFound, NotFoundError, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got, failed := ErrorTypeOf(tt.status)
			assert.Equal(t, tt.failed, failed)
			if failed {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		embed := EH.Embed(&services.Result{
			Title:       "Gift sent",
			Description: "sent",
			Fields:      []services.Field{{Name: "Coins", Value: "50", Inline: true}},
		})
		assert.Equal(t, "Gift sent", embed.Title)
		assert.Equal(t, config.EmbedDefaultColor, embed.Color)
		require.Len(t, embed.Fields, 1)
		require.NotNil(t, embed.Fields[0].Inline)
		assert.True(t, *embed.Fields[0].Inline)
	})

	t.Run("cooldown", func(t *testing.T) {
		embed := EH.Embed(&services.Result{Status: services.StatusCooldown, Title: "Cooldown"})
		assert.Equal(t, "⏰ Cooldown", embed.Title)
		assert.Equal(t, config.WarningColor, embed.Color)
	})

	t.Run("forbidden", func(t *testing.T) {
		embed := EH.Embed(&services.Result{Status: services.StatusForbidden, Title: "Not allowed"})
		assert.Equal(t, "🚫 Not allowed", embed.Title)
		assert.Equal(t, config.ErrorColor, embed.Color)
	})
}

func TestMessage_Ephemeral(t *testing.T) {
	msg := EH.Message(&services.Result{Title: "Drop", Ephemeral: true})
	assert.Equal(t, discord.MessageFlagEphemeral, msg.Flags)

	msg = EH.Message(&services.Result{Title: "Balance"})
	assert.Zero(t, msg.Flags)
	assert.Len(t, msg.Embeds, 1)
}

func TestRarityColor(t *testing.T) {
	assert.Equal(t, config.RarityCommonColor, RarityColor(models.RarityCommon))
	assert.Equal(t, config.RarityCommonColor, RarityColor(""))
	assert.Equal(t, config.RarityLegendaryColor, RarityColor(models.RarityLegendary))
	assert.Equal(t, config.RarityLimitedColor, RarityColor(models.RarityLimited))
}
