package rui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/handlers"
	"github.com/xlovstudio/rui/rui/services"
	"github.com/xlovstudio/rui/rui/utils"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	Store     database.Store
	Mirror    *database.MirroredStore
	Game      *services.GameService
}

// Operation is a game action run on behalf of the invoking user.
type Operation func(ctx context.Context, a services.Actor) (*services.Result, error)

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Rui is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("/overview"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "sys"), slog.Any("error", err))
	}
}

// Close releases the store and the gateway connection.
func (b *Bot) Close(ctx context.Context) {
	if b.Client != nil {
		b.Client.Close(ctx)
	}
	if closer, ok := b.Store.(database.Closer); ok {
		if err := closer.Close(ctx); err != nil {
			slog.Error("Failed to close store", slog.String("type", "db"), slog.Any("error", err))
		}
	}
}

// ActorOf identifies the user behind an interaction.
func ActorOf(id fmt.Stringer, name string) services.Actor {
	return services.Actor{ID: id.String(), Name: name}
}

// Execute runs op for the user of e, records the outcome and replies with the result.
func (b *Bot) Execute(e *handler.CommandEvent, command string, op Operation) error {
	res, err := b.Run(command, ActorOf(e.User().ID, e.User().Username), op)
	if err != nil {
		return err
	}
	return utils.EH.Respond(e, res)
}

// ExecuteComponent is Execute for button presses.
func (b *Bot) ExecuteComponent(e *handler.ComponentEvent, command string, op Operation) error {
	res, err := b.Run(command, ActorOf(e.User().ID, e.User().Username), op)
	if err != nil {
		return err
	}
	return utils.EH.RespondComponent(e, res)
}

// Run executes op and records the outcome. Storage faults are returned as errors.
func (b *Bot) Run(command string, a services.Actor, op Operation) (*services.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	res, err := op(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	handlers.RecordOutcome(command, res.Status.String())
	return res, nil
}
