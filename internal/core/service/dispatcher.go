package service

import (
	"context"
	"sync/atomic"
	"time"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

const DefaultDispatchTimeout = 3 * time.Second

type Route int

const (
	RouteIgnored Route = iota
	RouteDirectMessage
	RouteCommand
	RouteListeners
)

func (r Route) String() string {
	switch r {
	case RouteIgnored:
		return "ignored"
	case RouteDirectMessage:
		return "direct_message"
	case RouteCommand:
		return "command"
	case RouteListeners:
		return "listeners"
	default:
		return "unknown"
	}
}

// Decision is the routing of one message. CommandName is the candidate name as received, and Command is only
// set when it matched a registered command.
type Decision struct {
	Route       Route
	Prefix      string
	CommandName string
	Command     port.Command
	Arguments   []string
}

type Outcome struct {
	Decision Decision
	// Stalled is set when handlers did not finish within the dispatch timeout. They keep running detached.
	Stalled bool
}

// Dispatcher routes inbound messages to a command and to the applicable listeners of one transport.
type Dispatcher struct {
	commands  port.CommandRegistry
	listeners port.ListenerRegistry
	prefixes  port.PrefixResolver
	transport port.Transport
	identity  domain.Identity
	catalog   []domain.CommandInfo
	timeout   time.Duration
	selfID    atomic.Pointer[string]
}

func NewDispatcher(commands port.CommandRegistry, listeners port.ListenerRegistry, prefixes port.PrefixResolver,
	transport port.Transport, identity domain.Identity, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}

	return &Dispatcher{
		commands:  commands,
		listeners: listeners,
		prefixes:  prefixes,
		transport: transport,
		identity:  identity,
		catalog:   commands.Catalog(),
		timeout:   timeout,
	}
}

// SetSelfID records the transport's own user ID once it is known, so the bot never reacts to itself.
func (d *Dispatcher) SetSelfID(id string) {
	d.selfID.Store(&id)
}

func (d *Dispatcher) self() string {
	if id := d.selfID.Load(); id != nil {
		return *id
	}

	return ""
}

// Run consumes messages until the context ends or the channel is closed, dispatching each one concurrently.
// It returns after every in-flight dispatch has completed or stalled.
func (d *Dispatcher) Run(ctx context.Context, messages <-chan *domain.Message) {
	var wg conc.WaitGroup
	defer wg.Wait()

	log.Info().Dur("timeout", d.timeout).Msg("dispatcher listening")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dispatcher stopping")
			return
		case message, ok := <-messages:
			if !ok {
				log.Info().Msg("message channel closed, dispatcher stopping")
				return
			}

			wg.Go(func() {
				d.Dispatch(ctx, message)
			})
		}
	}
}

// Classify decides the route of a message without side effects.
func (d *Dispatcher) Classify(message *domain.Message) Decision {
	if message == nil || message.AuthorIsBot {
		return Decision{Route: RouteIgnored}
	}

	if self := d.self(); self != "" && message.AuthorID == self {
		return Decision{Route: RouteIgnored}
	}

	if !message.InGuild() {
		return Decision{Route: RouteDirectMessage}
	}

	prefix, ok := d.prefixes.Resolve(message.GuildID)
	if !ok || !domain.HasPrefix(message.Content, prefix) {
		return Decision{Route: RouteIgnored, Prefix: prefix}
	}

	name, args := domain.ParseCommand(message.Content, prefix)
	decision := Decision{Route: RouteListeners, Prefix: prefix, CommandName: name, Arguments: args}

	if name == "" {
		return decision
	}

	cmd, err := d.commands.Get(name)
	if err != nil {
		return decision
	}

	decision.Route = RouteCommand
	decision.Command = cmd

	return decision
}

// Dispatch classifies a message and performs its side effects. It waits for the handlers at most for the
// dispatch timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message) Outcome {
	decision := d.Classify(message)
	outcome := Outcome{Decision: decision}

	l := dispatchLogger(message, decision)
	ctx = l.WithContext(ctx)

	switch decision.Route {
	case RouteIgnored:
		l.Debug().Msg("ignoring message")
		return outcome
	case RouteDirectMessage:
		d.warnDirectMessage(ctx, message)
		return outcome
	}

	l.Debug().Str("command", decision.CommandName).Strs("args", decision.Arguments).Msg("dispatching message")

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.handle(context.WithoutCancel(ctx), message, decision)
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case <-done:
		l.Debug().Msg("dispatch completed")
	case <-timer.C:
		outcome.Stalled = true
		l.Warn().Dur("timeout", d.timeout).Msg("dispatch stalled, handlers keep running")
	}

	return outcome
}

func (d *Dispatcher) handle(ctx context.Context, message *domain.Message, decision Decision) {
	state := d.state(decision)

	var wg conc.WaitGroup

	if decision.Command != nil {
		wg.Go(func() {
			d.runCommand(ctx, decision.Command, message.WithArguments(decision.Arguments), state)
		})
	}

	for _, l := range d.listeners.Applicable(message) {
		wg.Go(func() {
			d.runListener(ctx, l, message.WithArguments(decision.Arguments), state)
		})
	}

	wg.Wait()
}

func (d *Dispatcher) state(decision Decision) *domain.State {
	state := &domain.State{
		Identity: d.identity,
		SelfID:   d.self(),
		Prefix:   decision.Prefix,
		Catalog:  d.catalog,
	}

	if decision.Command != nil {
		state.CommandName = decision.Command.Names()[0]
	}

	return state
}

func (d *Dispatcher) runCommand(ctx context.Context, cmd port.Command, message *domain.Message, state *domain.State) {
	l := zerolog.Ctx(ctx).With().Str("command", state.CommandName).Logger()

	if err := d.transport.StartTyping(ctx, message.ChannelID); err != nil {
		l.Warn().Err(err).Msg("failed to start typing")
	}

	err := safeRun(func() error {
		return cmd.Run(ctx, message, state)
	})

	if stopErr := d.transport.StopTyping(ctx, message.ChannelID); stopErr != nil {
		l.Warn().Err(stopErr).Msg("failed to stop typing")
	}

	if err != nil {
		l.Error().Err(err).Str("guildId", message.GuildID).Msg("command failed")

		if sendErr := d.transport.SendMessage(ctx, message.ChannelID, domain.ApologyReply); sendErr != nil {
			l.Error().Err(sendErr).Msg(domain.ErrSendingReplyFailed.Error())
		}

		return
	}

	l.Debug().Msg("command completed")
}

func (d *Dispatcher) runListener(ctx context.Context, listener port.Listener, message *domain.Message,
	state *domain.State) {
	err := safeRun(func() error {
		return listener.Run(ctx, message, state)
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("listener", listener.Name()).Msg("listener failed")
	}
}

func (d *Dispatcher) warnDirectMessage(ctx context.Context, message *domain.Message) {
	l := zerolog.Ctx(ctx)
	l.Debug().Msg("command attempted outside of a guild")

	if err := d.transport.StartTyping(ctx, message.ChannelID); err != nil {
		l.Warn().Err(err).Msg("failed to start typing")
	}

	if err := d.transport.SendMessage(ctx, message.ChannelID, domain.DirectMessageWarning); err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
	}

	if err := d.transport.StopTyping(ctx, message.ChannelID); err != nil {
		l.Warn().Err(err).Msg("failed to stop typing")
	}
}

// safeRun converts a handler panic into an error.
func safeRun(run func() error) (err error) {
	if recovered := panics.Try(func() { err = run() }); recovered != nil {
		return recovered.AsError()
	}

	return err
}

func dispatchLogger(message *domain.Message, decision Decision) zerolog.Logger {
	c := log.With().Str("route", decision.Route.String())

	if message != nil {
		c = c.Str("guildId", message.GuildID).
			Str("channelId", message.ChannelID).
			Str("authorId", message.AuthorID)
	}

	if id, err := uuid.NewV4(); err == nil {
		c = c.Str("dispatchId", id.String())
	}

	return c.Logger()
}
