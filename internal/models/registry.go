package models

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/mechdyn/internal/mechanism"
)

// Registry maps model names to mechanism builders. Every entry builds a
// fresh mechanism with the model's default parameters.
type Registry struct {
	models map[string]func() *mechanism.Mechanism
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() *mechanism.Mechanism)}
	r.Register("pendulum", func() *mechanism.Mechanism { return NewPendulum().Build() })
	r.Register("double-pendulum", func() *mechanism.Mechanism { return NewDoublePendulum().Build() })
	r.Register("cartpole", func() *mechanism.Mechanism { return NewCartPole().Build() })
	r.Register("acrobot", func() *mechanism.Mechanism { return NewFloatingAcrobot().Build() })
	r.Register("chain", func() *mechanism.Mechanism { return NewChain(5).Build() })
	r.Register("random-tree", func() *mechanism.Mechanism { return RandomTree(rand.New(rand.NewSource(1)), 6) })
	return r
}

// Register adds or replaces a named builder.
func (r *Registry) Register(name string, build func() *mechanism.Mechanism) {
	r.models[name] = build
}

// Get builds the named model.
func (r *Registry) Get(name string) (*mechanism.Mechanism, error) {
	build, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return build(), nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
