package command

import (
	"fmt"
	"sort"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Registry maps every alias of a command to its handler. It is populated at startup and only read afterwards.
type Registry struct {
	commands map[string]port.Command
	ordered  []port.Command
}

// NewRegistry builds a registry from the given commands, failing on the first invalid registration.
func NewRegistry(handlers ...port.Command) (*Registry, error) {
	r := &Registry{}
	for _, handler := range handlers {
		if err := r.Register(handler); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) Register(handler port.Command) error {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	names := handler.Names()
	if len(names) == 0 {
		return fmt.Errorf("%w: command without names", domain.ErrInvalidCommand)
	}

	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty alias for %q", domain.ErrInvalidCommand, names[0])
		}

		if _, ok := r.commands[name]; ok {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateCommand, name)
		}
	}

	log.Info().Strs("names", names).Msg("adding command handler to registry")
	for _, name := range names {
		r.commands[name] = handler
	}

	r.ordered = append(r.ordered, handler)

	return nil
}

func (r *Registry) Get(name string) (port.Command, error) {
	log.Debug().Str("command", name).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, domain.ErrRegistryNotInitialized
	}

	handler, ok := r.commands[name]
	if !ok {
		return nil, domain.ErrCommandNotFound
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.ordered))
	for i, handler := range r.ordered {
		keys[i] = handler.Names()[0]
	}

	sort.Strings(keys)

	return keys
}

func (r *Registry) Catalog() []domain.CommandInfo {
	catalog := make([]domain.CommandInfo, len(r.ordered))
	for i, handler := range r.ordered {
		catalog[i] = domain.CommandInfo{Names: handler.Names(), Description: handler.Description()}
	}

	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].Names[0] < catalog[j].Names[0]
	})

	return catalog
}
