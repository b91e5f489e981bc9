package port

import (
	"context"

	"beccabot/internal/core/domain"
)

type Command interface {
	// Names returns the invocation aliases of the command; the first one is its canonical name.
	Names() []string
	// Description returns a human-readable summary shown in help output.
	Description() string
	// Run executes the command for a message whose CommandArguments have been populated.
	Run(ctx context.Context, message *domain.Message, state *domain.State) error
}

type Listener interface {
	// Name returns the unique key of the listener.
	Name() string
	// Description returns a human-readable summary of what the listener does.
	Description() string
	// Supersedes returns the key of the base listener this one takes precedence over, or "" for a base listener.
	Supersedes() string
	// Run handles a message passively. It is invoked at most once per dispatch.
	Run(ctx context.Context, message *domain.Message, state *domain.State) error
}

// Interceptor is optionally implemented by a superseding listener to decide per message whether it claims
// handling. When it does not, the superseded base listener runs instead.
type Interceptor interface {
	Intercepts(message *domain.Message) bool
}

type CommandRegistry interface {
	// Get retrieves a registered Command by exact alias or returns an error if not found.
	Get(name string) (Command, error)
	// ListCommands returns the canonical names of all registered commands.
	ListCommands() []string
	// Catalog describes every registered command.
	Catalog() []domain.CommandInfo
}

type ListenerRegistry interface {
	// Applicable returns the listeners to run for a message, with superseded pairs already resolved.
	Applicable(message *domain.Message) []Listener
}

type PrefixResolver interface {
	// Resolve returns the configured prefix of a guild, and false if none is set.
	Resolve(guildID string) (string, bool)
}
