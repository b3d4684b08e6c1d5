package schema

import "finitefield.org/hanko-seo/internal/domain"

// Resolver produces the document a record declares through its schema type.
type Resolver struct {
	registry *Registry
	allowed  map[domain.SchemaType]struct{}
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithAllowedTypes limits resolution to the given types. Records declaring
// any other type resolve to nothing. An empty list allows every type.
func WithAllowedTypes(types ...domain.SchemaType) ResolverOption {
	return func(r *Resolver) {
		if len(types) == 0 {
			r.allowed = nil
			return
		}
		r.allowed = make(map[domain.SchemaType]struct{}, len(types))
		for _, t := range types {
			r.allowed[t] = struct{}{}
		}
	}
}

// NewResolver builds a resolver over registry, or over a default registry when nil.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}
	r := &Resolver{registry: registry}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Resolver) Registry() *Registry { return r.registry }

// Allowed reports whether the resolver accepts the type.
func (r *Resolver) Allowed(t domain.SchemaType) bool {
	if len(r.allowed) == 0 {
		return true
	}
	_, ok := r.allowed[t]
	return ok
}

// Resolve returns the document for src.Record's declared type. A manual
// override is shallow-merged over {@context, @type} and replaces generator
// output entirely; without one the registered generator runs, and without a
// generator the bare document is returned.
func (r *Resolver) Resolve(src Source) (Document, bool) {
	record := src.Record
	if record == nil || record.SchemaType == "" {
		return nil, false
	}
	if !r.Allowed(record.SchemaType) {
		return nil, false
	}
	if len(record.SchemaOverride) > 0 {
		doc := New(string(record.SchemaType))
		for k, v := range record.SchemaOverride {
			doc[k] = v
		}
		return doc, true
	}
	if g, ok := r.registry.Lookup(record.SchemaType); ok {
		return g.Generate(src), true
	}
	return New(string(record.SchemaType)), true
}
