package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/platform/httpx"
	"finitefield.org/hanko-seo/internal/schema"
)

// SchemaHandlers exposes schema tooling for editors: the selectable types
// and a starting document per type.
type SchemaHandlers struct {
	resolver *schema.Resolver
	allowed  []domain.SchemaType
}

// NewSchemaHandlers constructs the schema handler set. allowed mirrors the
// resolver allow-list; empty means every known type.
func NewSchemaHandlers(resolver *schema.Resolver, allowed []domain.SchemaType) *SchemaHandlers {
	return &SchemaHandlers{resolver: resolver, allowed: allowed}
}

func (h *SchemaHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/api/schema/types", h.types)
	r.Get("/api/schema/skeletons/{type}", h.skeleton)
}

func (h *SchemaHandlers) types(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
		"types": domain.SchemaTypeOptions(h.allowed),
	})
}

func (h *SchemaHandlers) skeleton(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, ok := domain.ParseSchemaType(chi.URLParam(r, "type"))
	if !ok || !h.resolver.Allowed(kind) {
		httpx.WriteError(ctx, w, httpx.NewError("schema_type_not_found", "unknown schema type", http.StatusNotFound))
		return
	}
	httpx.WriteJSON(ctx, w, http.StatusOK, h.resolver.Registry().Skeleton(kind))
}
