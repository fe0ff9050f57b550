package handlers

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"

	"github.com/xlovstudio/rui/rui/config"
)

const genericFailure = "Something went wrong in Rui. Please try again later."

func guildID(id *snowflake.ID) string {
	if id == nil {
		return "dm"
	}
	return id.String()
}

// run executes h, turning a panic into an error.
func run(h func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic",
				slog.String("type", "error"),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h()
}

type interaction struct {
	kind    string
	logType string
	name    string
	userID  string
	user    string
	guild   string
	channel string
	reply   func(discord.MessageCreate) error
}

func (i interaction) wrap(h func() error) error {
	start := time.Now()
	requestID := uuid.NewString()

	base := []any{
		slog.String("type", i.logType),
		slog.String("name", i.name),
		slog.String("request_id", requestID),
		slog.String("user_id", i.userID),
		slog.String("user_name", i.user),
	}
	slog.Info(i.kind+" started", append(base,
		slog.String("guild_id", i.guild),
		slog.String("channel_id", i.channel),
	)...)

	done := make(chan error, 1)
	go func() {
		done <- run(h)
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		commandDuration.WithLabelValues(i.name).Observe(duration.Seconds())
		attrs := append(base, slog.Duration("took", duration))

		if err != nil {
			RecordOutcome(i.name, "error")
			slog.Error(i.kind+" failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
			// The handler may already have replied, in which case this fails quietly.
			_ = i.reply(discord.MessageCreate{
				Embeds: []discord.Embed{{
					Title:       "Error",
					Description: genericFailure,
					Color:       config.ErrorColor,
				}},
				Flags: discord.MessageFlagEphemeral,
			})
			return nil
		}

		if duration > config.SlowCommandThreshold {
			slog.Warn(i.kind+" executed slowly", append(attrs, slog.String("status", "slow"))...)
		} else {
			slog.Info(i.kind+" completed", append(attrs, slog.String("status", "success"))...)
		}
		return nil

	case <-time.After(config.CommandExecutionTimeout):
		RecordOutcome(i.name, "timeout")
		slog.Error(i.kind+" timed out", append(base,
			slog.String("status", "timeout"),
			slog.Duration("timeout", config.CommandExecutionTimeout),
		)...)
		return fmt.Errorf("%s %s timed out after %s", i.kind, i.name, config.CommandExecutionTimeout)
	}
}

// WrapWithLogging wraps a command handler with logging, metrics and panic recovery.
// Failures are logged and answered with a generic message instead of internals.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return interaction{
			kind:    "Command",
			logType: "cmd",
			name:    name,
			userID:  e.User().ID.String(),
			user:    e.User().Username,
			guild:   guildID(e.GuildID()),
			channel: e.ChannelID().String(),
			reply:   func(m discord.MessageCreate) error { return e.CreateMessage(m) },
		}.wrap(func() error { return h(e) })
	}
}

// WrapComponentWithLogging wraps a component handler the same way.
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return interaction{
			kind:    "Component interaction",
			logType: "component",
			name:    name,
			userID:  e.User().ID.String(),
			user:    e.User().Username,
			guild:   guildID(e.GuildID()),
			channel: e.ChannelID().String(),
			reply:   func(m discord.MessageCreate) error { return e.CreateMessage(m) },
		}.wrap(func() error { return h(e) })
	}
}
