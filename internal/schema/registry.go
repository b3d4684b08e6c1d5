package schema

import (
	"sort"
	"sync"

	"finitefield.org/hanko-seo/internal/domain"
)

// Registry maps schema types to generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[domain.SchemaType]Generator
}

// NewRegistry returns a registry holding the default generator set.
func NewRegistry() *Registry {
	r := &Registry{generators: map[domain.SchemaType]Generator{}}
	for _, g := range DefaultGenerators() {
		r.generators[g.Type()] = g
	}
	return r
}

// DefaultGenerators lists the generators every registry starts with.
func DefaultGenerators() []Generator {
	return []Generator{
		NewArticleGenerator(domain.SchemaArticle),
		NewArticleGenerator(domain.SchemaBlogPosting),
		NewArticleGenerator(domain.SchemaNewsArticle),
		ProductGenerator{},
		OrganizationGenerator{},
		LocalBusinessGenerator{},
		FAQGenerator{},
	}
}

// Register adds or replaces the generator for a type. Nil generators are ignored.
func (r *Registry) Register(t domain.SchemaType, g Generator) {
	if g == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[t] = g
}

// Lookup returns the generator registered for a type.
func (r *Registry) Lookup(t domain.SchemaType) (Generator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[t]
	return g, ok
}

// Types returns the registered types sorted by name.
func (r *Registry) Types() []domain.SchemaType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SchemaType, 0, len(r.generators))
	for t := range r.generators {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Skeleton returns the registered generator's skeleton, or the bare document
// for types without a generator.
func (r *Registry) Skeleton(t domain.SchemaType) Document {
	if g, ok := r.Lookup(t); ok {
		return g.Skeleton()
	}
	return New(string(t))
}
