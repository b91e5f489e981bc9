package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"beccabot/internal/adapters/generator"
	"beccabot/internal/adapters/handler"
	"beccabot/internal/adapters/notifier"
	"beccabot/internal/adapters/sender"
	"beccabot/internal/adapters/store"
	"beccabot/internal/config"
	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
	"beccabot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const shutdownNoticeTimeout = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Connects to the enabled chat platforms and starts dispatching messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return run(ctx, cfg)
	},
}

func run(ctx context.Context, cfg *config.Config) error {
	identity := identityFrom(cfg.Bot)
	log.Info().Str("name", identity.Name).Str("version", identity.Version).Msg("starting beccabot...")

	s := shared{
		cfg:      cfg,
		identity: identity,
		tracker:  service.NewUsageTracker(ctx),
	}

	if cfg.Database.Path != "" {
		db, err := store.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close database")
			}
		}()

		s.stores = stores{prefixes: db, levels: db, usage: db}
	}

	s.prefixes = service.NewPrefixes(s.stores.prefixes)
	if err := s.prefixes.Load(ctx); err != nil {
		return err
	}

	if cfg.OpenRouter.APIKey != "" {
		s.generator = generator.NewOpenRouter(cfg.OpenRouter.APIKey, cfg.OpenRouter.SystemPrompt, cfg.OpenRouter.Model)
	}

	notice, err := newNotifier(cfg)
	if err != nil {
		return err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg conc.WaitGroup

	abort := func(err error) error {
		stop()
		wg.Wait()
		return err
	}

	if cfg.Discord.Enabled {
		if err := startDiscord(runCtx, &wg, s, notice); err != nil {
			return abort(err)
		}
	}

	if cfg.Telegram.Enabled {
		if err := startTelegram(runCtx, &wg, s); err != nil {
			return abort(err)
		}
	}

	sendNotice(ctx, notice, fmt.Sprintf("%s %s is online", identity.Name, identity.Version))

	wg.Wait()

	noticeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownNoticeTimeout)
	defer cancel()
	sendNotice(noticeCtx, notice, fmt.Sprintf("%s is shutting down", identity.Name))

	log.Info().Msg("beccabot stopped")

	return nil
}

func newNotifier(cfg *config.Config) (port.Notifier, error) {
	if !cfg.Webhook.Configured() {
		return notifier.Noop{}, nil
	}

	// webhook execution is unauthenticated, so the session needs no token
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed creating webhook session: %w", err)
	}

	limit := rate.Inf
	if cfg.Webhook.Rate > 0 {
		limit = rate.Limit(cfg.Webhook.Rate)
	}

	return notifier.NewWebhook(session, cfg.Webhook.ID, cfg.Webhook.Token, cfg.Bot.Name, limit, cfg.Webhook.Burst), nil
}

func sendNotice(ctx context.Context, n port.Notifier, text string) {
	if err := n.Notify(ctx, text); err != nil {
		log.Warn().Err(err).Msg("failed to send notice")
	}
}

func startDiscord(ctx context.Context, wg *conc.WaitGroup, s shared, notice port.Notifier) error {
	session, err := discordgo.New("Bot " + s.cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed initializing discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	dispatcher, err := buildDispatcher(s, sender.NewDiscord(session))
	if err != nil {
		return err
	}

	messages := make(chan *domain.Message, s.cfg.Handler.QueueSize)
	handler.NewDiscord(messages, s.prefixes, dispatcher, notice, s.cfg.Bot.DefaultPrefix).Register(session)

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed connecting to discord: %w", err)
	}

	wg.Go(func() {
		dispatcher.Run(ctx, messages)
	})
	wg.Go(func() {
		<-ctx.Done()
		if err := session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed closing discord session")
		}
	})

	log.Info().Msg("discord bot listening")

	return nil
}

func startTelegram(ctx context.Context, wg *conc.WaitGroup, s shared) error {
	messages := make(chan *domain.Message, s.cfg.Handler.QueueSize)
	h := handler.NewTelegram(messages, s.prefixes, s.cfg.Bot.DefaultPrefix)

	b, err := bot.New(s.cfg.Telegram.BotToken, bot.WithDefaultHandler(h.Handle))
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	dispatcher, err := buildDispatcher(s, sender.NewTelegram(b))
	if err != nil {
		return err
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed fetching telegram bot user: %w", err)
	}
	dispatcher.SetSelfID(strconv.FormatInt(me.ID, 10))

	wg.Go(func() {
		dispatcher.Run(ctx, messages)
	})
	wg.Go(func() {
		b.Start(ctx)
	})

	log.Info().Str("user", me.Username).Msg("telegram bot listening")

	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(runCmd)
}
