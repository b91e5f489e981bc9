package cmd

import (
	"fmt"

	"beccabot/internal/config"
	"beccabot/internal/core/domain"
	"beccabot/internal/core/domain/command"
	"beccabot/internal/core/domain/listener"
	"beccabot/internal/core/port"
	"beccabot/internal/core/service"
)

// stores holds the optional persistence ports. Fields stay nil when no database is configured.
type stores struct {
	prefixes port.PrefixStore
	levels   port.LevelStore
	usage    port.UsageStore
}

// shared is the state every transport's dispatcher has in common.
type shared struct {
	cfg       *config.Config
	identity  domain.Identity
	prefixes  *service.Prefixes
	tracker   port.Tracker
	stores    stores
	generator port.TextGenerator
}

func identityFrom(bot config.Bot) domain.Identity {
	version := bot.Version
	if version == "" {
		version = Version
	}

	return domain.Identity{
		Name:    bot.Name,
		Version: version,
		Emoji: domain.Emoji{
			Yes:   bot.Emoji.Yes,
			No:    bot.Emoji.No,
			Think: bot.Emoji.Think,
			Love:  bot.Emoji.Love,
		},
	}
}

func buildCommands(s shared, transport port.Transport) (*command.Registry, error) {
	authorizer := service.NewAuthorizer(s.cfg.Bot.AdminIDs, transport)

	commands := []port.Command{
		command.NewAbout(transport, "about"),
		command.NewHelp(transport, "help", "h"),
		command.NewPigLatin(transport, "piglatin", "pig"),
		command.NewPrefix(s.prefixes, authorizer, transport, "prefix"),
		command.NewUsage(s.tracker, s.stores.usage, transport, "usage"),
		command.NewDebug(transport, "debug"),
	}

	if s.generator != nil {
		commands = append(commands, command.NewAsk(s.generator, transport, s.cfg.OpenRouter.Model, "ask"))
	}

	return command.NewRegistry(commands...)
}

func buildListeners(s shared, transport port.Transport) (*listener.Registry, error) {
	usage := listener.NewUsage(s.tracker)

	listeners := []port.Listener{
		listener.NewHearts(transport, s.cfg.Listeners.Hearts.Users),
		usage,
		listener.NewInterceptableUsage(usage, s.stores.usage),
	}

	if s.stores.levels != nil {
		lc := s.cfg.Listeners.Levels
		levels := listener.NewLevels(s.stores.levels, transport, listener.RandomPoints(lc.PointsMin, lc.PointsMax))
		listeners = append(listeners, levels, listener.NewInterceptableLevels(levels, lc.Cooldown))
	}

	return listener.NewRegistry(listeners...)
}

func buildDispatcher(s shared, transport port.Transport) (*service.Dispatcher, error) {
	commands, err := buildCommands(s, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	listeners, err := buildListeners(s, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to build listener registry: %w", err)
	}

	return service.NewDispatcher(commands, listeners, s.prefixes, transport, s.identity, s.cfg.Handler.Timeout), nil
}
