package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	EnvPrefix            = "BECCA"
	DefaultName          = "Becca"
	DefaultPrefix        = "becca!"
	DefaultTimeout       = 3 * time.Second
	DefaultQueueSize     = 64
	DefaultDatabasePath  = "data/becca.db"
	DefaultLevelCooldown = time.Minute
)

type Emoji struct {
	Yes   string `mapstructure:"yes"`
	No    string `mapstructure:"no"`
	Think string `mapstructure:"think"`
	Love  string `mapstructure:"love"`
}

type Bot struct {
	Name          string   `mapstructure:"name"`
	Version       string   `mapstructure:"version"`
	LogLevel      string   `mapstructure:"log_level"`
	PrettyLogs    bool     `mapstructure:"pretty_logs"`
	DefaultPrefix string   `mapstructure:"default_prefix"`
	AdminIDs      []string `mapstructure:"admin_ids"`
	Emoji         Emoji    `mapstructure:"emoji"`
}

type Discord struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
}

type Webhook struct {
	ID    string  `mapstructure:"id"`
	Token string  `mapstructure:"token"`
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// Configured reports whether notices should be sent to a webhook.
func (w Webhook) Configured() bool {
	return w.ID != "" && w.Token != ""
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Handler struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	QueueSize int           `mapstructure:"queue_size"`
}

type OpenRouter struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

type Levels struct {
	Cooldown  time.Duration `mapstructure:"cooldown"`
	PointsMin int           `mapstructure:"points_min"`
	PointsMax int           `mapstructure:"points_max"`
}

type Hearts struct {
	Users []string `mapstructure:"users"`
}

type Listeners struct {
	Levels Levels `mapstructure:"levels"`
	Hearts Hearts `mapstructure:"hearts"`
}

type Config struct {
	Bot        Bot        `mapstructure:"bot"`
	Discord    Discord    `mapstructure:"discord"`
	Telegram   Telegram   `mapstructure:"telegram"`
	Webhook    Webhook    `mapstructure:"webhook"`
	Database   Database   `mapstructure:"database"`
	Handler    Handler    `mapstructure:"handler"`
	OpenRouter OpenRouter `mapstructure:"openrouter"`
	Listeners  Listeners  `mapstructure:"listeners"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.name", DefaultName)
	v.SetDefault("bot.version", "")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.pretty_logs", false)
	v.SetDefault("bot.default_prefix", DefaultPrefix)
	v.SetDefault("bot.admin_ids", []string{})
	v.SetDefault("bot.emoji.yes", "✅")
	v.SetDefault("bot.emoji.no", "❌")
	v.SetDefault("bot.emoji.think", "🤔")
	v.SetDefault("bot.emoji.love", "💜")

	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.token", "")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")

	v.SetDefault("webhook.id", "")
	v.SetDefault("webhook.token", "")
	v.SetDefault("webhook.rate", 0.5)
	v.SetDefault("webhook.burst", 5)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("handler.timeout", DefaultTimeout)
	v.SetDefault("handler.queue_size", DefaultQueueSize)

	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.model", "")
	v.SetDefault("openrouter.system_prompt", "You are Becca, a friendly community bot. Keep answers short.")

	v.SetDefault("listeners.levels.cooldown", DefaultLevelCooldown)
	v.SetDefault("listeners.levels.points_min", 5)
	v.SetDefault("listeners.levels.points_max", 15)
	v.SetDefault("listeners.hearts.users", []string{})
}

// Load reads the TOML config file and applies BECCA_ environment overrides. Without an explicit path,
// config.toml is looked up in the working directory and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}

		log.Warn().Msg("no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if !c.Discord.Enabled && !c.Telegram.Enabled {
		errs = append(errs, errors.New("no transport enabled, enable discord or telegram"))
	}

	if c.Discord.Enabled && c.Discord.Token == "" {
		errs = append(errs, errors.New("discord is enabled but discord.token is empty"))
	}

	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram is enabled but telegram.bot_token is empty"))
	}

	if c.Handler.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("handler.timeout must be positive, got %s", c.Handler.Timeout))
	}

	if c.Handler.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("handler.queue_size must be at least 1, got %d", c.Handler.QueueSize))
	}

	if c.Listeners.Levels.PointsMin < 0 || c.Listeners.Levels.PointsMax < c.Listeners.Levels.PointsMin {
		errs = append(errs, fmt.Errorf("invalid level points range [%d, %d]",
			c.Listeners.Levels.PointsMin, c.Listeners.Levels.PointsMax))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
