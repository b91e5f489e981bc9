package listener

import (
	"fmt"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Registry holds the passive listeners keyed by name. Supersedes relations are resolved once in NewRegistry.
type Registry struct {
	listeners    map[string]port.Listener
	order        []string
	supersededBy map[string]string
}

func NewRegistry(listeners ...port.Listener) (*Registry, error) {
	r := &Registry{
		listeners:    make(map[string]port.Listener, len(listeners)),
		supersededBy: make(map[string]string),
	}

	for _, l := range listeners {
		name := l.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: listener without name", domain.ErrInvalidListener)
		}

		if _, ok := r.listeners[name]; ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateListener, name)
		}

		r.listeners[name] = l
		r.order = append(r.order, name)
	}

	for _, name := range r.order {
		base := r.listeners[name].Supersedes()
		if base == "" {
			continue
		}

		if base == name {
			return nil, fmt.Errorf("%w: %q supersedes itself", domain.ErrInvalidSupersedes, name)
		}

		if other, ok := r.supersededBy[base]; ok {
			return nil, fmt.Errorf("%w: %q is superseded by both %q and %q",
				domain.ErrInvalidSupersedes, base, other, name)
		}

		r.supersededBy[base] = name
	}

	for base, interceptor := range r.supersededBy {
		if _, ok := r.supersededBy[interceptor]; ok {
			return nil, fmt.Errorf("%w: %q supersedes %q but is itself superseded",
				domain.ErrInvalidSupersedes, interceptor, base)
		}

		if _, ok := r.listeners[base]; !ok {
			log.Warn().Str("listener", interceptor).Str("base", base).
				Msg("superseded listener is not registered, interceptable listener runs alone")
		}
	}

	for _, name := range r.order {
		log.Info().Str("listener", name).Str("supersedes", r.listeners[name].Supersedes()).
			Msg("adding listener to registry")
	}

	return r, nil
}

func (r *Registry) Get(name string) (port.Listener, bool) {
	l, ok := r.listeners[name]
	return l, ok
}

func (r *Registry) ListListeners() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Applicable returns, in registration order, every listener that should run for the message. Of each
// base/interceptable pair exactly one is returned: the interceptable listener if it claims the message,
// the base listener otherwise.
func (r *Registry) Applicable(message *domain.Message) []port.Listener {
	run := make([]port.Listener, 0, len(r.order))

	for _, name := range r.order {
		l := r.listeners[name]

		if interceptorName, ok := r.supersededBy[name]; ok {
			if claims(r.listeners[interceptorName], message) {
				continue
			}

			run = append(run, l)
			continue
		}

		if base := l.Supersedes(); base != "" && !claims(l, message) {
			continue
		}

		run = append(run, l)
	}

	return run
}

func claims(l port.Listener, message *domain.Message) bool {
	if i, ok := l.(port.Interceptor); ok {
		return i.Intercepts(message)
	}

	return true
}
