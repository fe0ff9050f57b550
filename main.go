package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/jonboulle/clockwork"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/commands"
	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
	"github.com/xlovstudio/rui/rui/keepalive"
	"github.com/xlovstudio/rui/rui/logger"
	"github.com/xlovstudio/rui/rui/scheduler"
	"github.com/xlovstudio/rui/rui/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, logger.Options{})))

	cfg, err := rui.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, logger.Options{
		Level:     cfg.Log.Level,
		AddSource: cfg.Log.AddSource,
		NoColor:   cfg.Log.NoColor,
	})))

	slog.Info("Starting Rui",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	store, mirror, err := rui.OpenStore(ctx, *cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to open store", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}

	b := rui.New(*cfg, version, commit)
	b.Store = store
	b.Mirror = mirror

	clock := clockwork.NewRealClock()
	b.Game = services.NewGameService(
		repositories.NewUserRepository(store),
		repositories.NewUserCardRepository(store),
		repositories.NewCardRepository(store),
		catalog.NewStaffSet(cfg.Game.StaffIDs...),
		services.WithClock(clock),
	)

	sched, err := scheduler.New(clock, config.DefaultQueryTimeout)
	if err != nil {
		slog.Error("Failed to create scheduler", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	jobs := []scheduler.Job{{
		Name:     "lock-cleanup",
		Interval: config.LockCleanupInterval,
		Run: func(context.Context) error {
			if n := b.Game.Locks().Cleanup(); n > 0 {
				logger.LogSystem("Released idle user locks", slog.Int("count", n))
			}
			return nil
		},
	}}
	if mirror != nil {
		jobs = append(jobs, scheduler.Job{
			Name:     "remote-sync",
			Interval: config.RemoteSyncInterval,
			Run:      mirror.Sync,
		})
	}
	if err = sched.Add(jobs...); err != nil {
		slog.Error("Failed to schedule jobs", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	sched.Start()

	h := handler.New()
	commands.Register(h, b)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	var server *keepalive.Server
	if cfg.KeepAlive.Enabled {
		server = keepalive.New(cfg.KeepAlive.Port)
		server.Start()
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sched.Shutdown(); err != nil {
			logger.LogError("Failed to stop scheduler", err)
		}
		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				logger.LogError("Failed to stop keep-alive server", err)
			}
		}
		if mirror != nil {
			if err := mirror.Sync(ctx); err != nil {
				logger.LogError("Final remote sync failed", err)
			}
		}
		b.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		return
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
}
