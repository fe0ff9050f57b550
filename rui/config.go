package rui

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/xlovstudio/rui/rui/database"
)

// LoadConfig reads the TOML file at path. Values from a .env file next to the
// working directory and from the environment override the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()
	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("Config file not found, using defaults and environment",
			slog.String("type", "sys"),
			slog.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Store: StoreConfig{
			Backend: BackendFile,
			DataDir: "data",
		},
		KeepAlive: KeepAliveConfig{Enabled: true, Port: 3000},
	}
}

type Config struct {
	Log       LogConfig             `toml:"log"`
	Bot       BotConfig             `toml:"bot"`
	Store     StoreConfig           `toml:"store"`
	DB        database.DBConfig     `toml:"db"`
	Mongo     database.MongoConfig  `toml:"mongo"`
	Remote    RemoteConfig          `toml:"remote"`
	KeepAlive KeepAliveConfig       `toml:"keepalive"`
	Game      GameConfig            `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
	NoColor   bool       `toml:"no_color"`
}

type Backend string

const (
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

type StoreConfig struct {
	Backend Backend `toml:"backend"`
	// DataDir is used by the file backend.
	DataDir string `toml:"data_dir"`
}

type RemoteKind string

const (
	RemoteNone  RemoteKind = ""
	RemoteS3    RemoteKind = "s3"
	RemoteRedis RemoteKind = "redis"
)

// RemoteConfig selects the optional snapshot mirror.
type RemoteConfig struct {
	Kind  RemoteKind           `toml:"kind"`
	S3    database.S3Config    `toml:"s3"`
	Redis database.RedisConfig `toml:"redis"`
}

type KeepAliveConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type GameConfig struct {
	StaffIDs []string `toml:"staff_ids"`
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("DISCORD_TOKEN"); v != "" {
		c.Bot.Token = v
	}
	if v := getenv("STAFF_IDS"); v != "" {
		c.Game.StaffIDs = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Game.StaffIDs = append(c.Game.StaffIDs, id)
			}
		}
	}
	if v := getenv("DATABASE_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := getenv("S3_ACCESS_KEY"); v != "" {
		c.Remote.S3.AccessKey = v
	}
	if v := getenv("S3_SECRET_KEY"); v != "" {
		c.Remote.S3.SecretKey = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Remote.Redis.Password = v
	}
	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.KeepAlive.Port = port
		}
	}
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendPostgres, BackendMongo:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Remote.Kind {
	case RemoteNone, RemoteS3, RemoteRedis:
	default:
		return fmt.Errorf("unknown remote kind %q", c.Remote.Kind)
	}
	if c.Remote.Kind == RemoteS3 && c.Remote.S3.Bucket == "" {
		return errors.New("remote.s3.bucket is required")
	}
	if c.Remote.Kind == RemoteRedis && c.Remote.Redis.Addr == "" {
		return errors.New("remote.redis.addr is required")
	}
	return nil
}
