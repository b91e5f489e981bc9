package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[bot]
name = "Becca"
log_level = "debug"
default_prefix = "☂"
admin_ids = ["111", "222"]

[bot.emoji]
love = "❤️"

[discord]
enabled = true
token = "discord-token"

[handler]
timeout = "5s"

[listeners.levels]
cooldown = "30s"
points_min = 1
points_max = 3

[listeners.hearts]
users = ["333"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Becca", cfg.Bot.Name)
	assert.Equal(t, "debug", cfg.Bot.LogLevel)
	assert.Equal(t, "☂", cfg.Bot.DefaultPrefix)
	assert.Equal(t, []string{"111", "222"}, cfg.Bot.AdminIDs)
	assert.Equal(t, Emoji{Yes: "✅", No: "❌", Think: "🤔", Love: "❤️"}, cfg.Bot.Emoji)

	assert.True(t, cfg.Discord.Enabled)
	assert.Equal(t, "discord-token", cfg.Discord.Token)
	assert.False(t, cfg.Telegram.Enabled)

	assert.Equal(t, 5*time.Second, cfg.Handler.Timeout)
	assert.Equal(t, DefaultQueueSize, cfg.Handler.QueueSize)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)

	assert.Equal(t, Levels{Cooldown: 30 * time.Second, PointsMin: 1, PointsMax: 3}, cfg.Listeners.Levels)
	assert.Equal(t, []string{"333"}, cfg.Listeners.Hearts.Users)
	assert.False(t, cfg.Webhook.Configured())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BECCA_DISCORD_TOKEN", "from-env")
	t.Setenv("BECCA_HANDLER_TIMEOUT", "250ms")
	t.Setenv("BECCA_WEBHOOK_ID", "hook_id")
	t.Setenv("BECCA_WEBHOOK_TOKEN", "hook_token")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.Handler.Timeout)
	assert.True(t, cfg.Webhook.Configured())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	_, err := Load(writeConfig(t, "[discord]\nenabled = true\n"))
	require.ErrorContains(t, err, "discord.token")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Discord:   Discord{Enabled: true, Token: "token"},
			Handler:   Handler{Timeout: time.Second},
			Listeners: Listeners{Levels: Levels{PointsMin: 1, PointsMax: 2}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *Config) {}},
		{
			name:    "no transport",
			mutate:  func(c *Config) { c.Discord.Enabled = false },
			wantErr: "no transport enabled",
		},
		{
			name: "telegram without token",
			mutate: func(c *Config) {
				c.Telegram.Enabled = true
			},
			wantErr: "telegram.bot_token",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Handler.Timeout = 0 },
			wantErr: "handler.timeout",
		},
		{
			name:    "negative queue",
			mutate:  func(c *Config) { c.Handler.QueueSize = -1 },
			wantErr: "handler.queue_size",
		},
		{
			name:    "unbuffered queue",
			mutate:  func(c *Config) { c.Handler.QueueSize = 0 },
			wantErr: "handler.queue_size must be at least 1",
		},
		{
			name:    "inverted points range",
			mutate:  func(c *Config) { c.Listeners.Levels.PointsMax = 0 },
			wantErr: "level points range",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
