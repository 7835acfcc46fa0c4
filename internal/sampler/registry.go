package sampler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Options carries backend construction knobs that come from run
// configuration rather than from the backend itself.
type Options struct {
	URL     string
	Timeout time.Duration
}

// Factory builds a backend from options.
type Factory func(opts Options) Sampler

// Registry maps backend names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in backends registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("offline", func(Options) Sampler {
		return NewOffline()
	})
	r.Register("remote", func(o Options) Sampler {
		return NewRemote(RemoteConfig{BaseURL: o.URL, Timeout: o.Timeout})
	})
	return r
}

// Register adds a backend factory under the given name, replacing any
// previous registration.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Get builds the named backend. The name "auto" picks the remote
// backend when its server answers the health probe and falls back to
// offline otherwise.
func (r *Registry) Get(ctx context.Context, name string, opts Options) (Sampler, error) {
	if name == "auto" {
		return r.auto(ctx, opts), nil
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("sampler: unknown backend %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return f(opts), nil
}

func (r *Registry) auto(ctx context.Context, opts Options) Sampler {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	remote := r.factories["remote"](opts)
	if remote.Available(probeCtx) {
		return remote
	}
	return r.factories["offline"](opts)
}

// List returns the registered backend names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
