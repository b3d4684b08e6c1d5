package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/platform/httpx"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var headTemplate = template.Must(template.ParseFS(templateFS, "templates/head.html.tmpl"))

// HeadHandlers serves the rendered head of content pages.
type HeadHandlers struct {
	heads   services.HeadService
	locales *i18n.Locales
}

// NewHeadHandlers constructs the head handler set.
func NewHeadHandlers(heads services.HeadService, locales *i18n.Locales) *HeadHandlers {
	return &HeadHandlers{heads: heads, locales: locales}
}

// Routes registers the preview and JSON endpoints. The catch-all preview
// routes go last so the API prefix wins.
func (h *HeadHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/api/head/{locale}", h.headJSON)
	r.Get("/api/head/{locale}/*", h.headJSON)
	r.Get("/", h.redirectToLocale)
	r.Get("/{locale}", h.preview)
	r.Get("/{locale}/*", h.preview)
}

func (h *HeadHandlers) headJSON(w http.ResponseWriter, r *http.Request) {
	head, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(r.Context(), w, http.StatusOK, headResponse{PageHead: head, JSONLD: head.JSONLD})
}

func (h *HeadHandlers) preview(w http.ResponseWriter, r *http.Request) {
	head, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := headTemplate.Execute(&buf, newPreview(head.Head)); err != nil {
		requestctx.Logger(r.Context()).Error("render head preview", zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("render_failed", "failed to render head", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *HeadHandlers) redirectToLocale(w http.ResponseWriter, r *http.Request) {
	locale := h.locales.Resolve(r.Header.Get("Accept-Language"))
	http.Redirect(w, r, "/"+locale+"/", http.StatusFound)
}

func (h *HeadHandlers) load(w http.ResponseWriter, r *http.Request) (services.PageHead, bool) {
	ctx := r.Context()
	if h.heads == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "head service not available", http.StatusServiceUnavailable))
		return services.PageHead{}, false
	}

	head, err := h.heads.Head(ctx, services.HeadRequest{
		Locale: chi.URLParam(r, "locale"),
		Slug:   strings.Trim(chi.URLParam(r, "*"), "/"),
	})
	switch {
	case err == nil:
		return head, true
	case errors.Is(err, services.ErrPageNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("page_not_found", "page not found", http.StatusNotFound))
	case errors.Is(err, services.ErrLocaleNotSupported):
		httpx.WriteError(ctx, w, httpx.NewError("locale_not_supported", "locale not supported", http.StatusNotFound).
			WithDetails(map[string]any{"available": h.locales.Codes()}))
	default:
		requestctx.Logger(ctx).Error("assemble head", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("head_failed", "failed to assemble head", http.StatusInternalServerError))
	}
	return services.PageHead{}, false
}

type headResponse struct {
	services.PageHead
	JSONLD string `json:"jsonLd,omitempty"`
}

type metaTag struct {
	Name    string
	Content string
}

type previewData struct {
	Lang       string
	Meta       seo.Meta
	Alternates []seo.Alternate
	OpenGraph  []metaTag
	Twitter    []metaTag
	HasJSONLD  bool
	// The payload is encoded with HTML escaping so it cannot close the script element.
	JSONLD template.JS
}

func newPreview(head seo.Head) previewData {
	og := head.Meta.OG
	tw := head.Meta.Twitter
	return previewData{
		Lang:       i18n.Hreflang(head.Locale),
		Meta:       head.Meta,
		Alternates: head.Alternates,
		OpenGraph: nonEmptyTags(
			metaTag{"og:title", og.Title},
			metaTag{"og:description", og.Description},
			metaTag{"og:image", og.Image},
			metaTag{"og:type", og.Type},
			metaTag{"og:url", og.URL},
			metaTag{"og:site_name", og.SiteName},
			metaTag{"og:locale", og.Locale},
		),
		Twitter: nonEmptyTags(
			metaTag{"twitter:card", tw.Card},
			metaTag{"twitter:title", tw.Title},
			metaTag{"twitter:description", tw.Description},
			metaTag{"twitter:image", tw.Image},
			metaTag{"twitter:site", tw.Site},
			metaTag{"twitter:creator", tw.Creator},
		),
		HasJSONLD: head.HasJSONLD,
		JSONLD:    template.JS(head.JSONLD),
	}
}

func nonEmptyTags(tags ...metaTag) []metaTag {
	out := tags[:0]
	for _, t := range tags {
		if strings.TrimSpace(t.Content) != "" {
			out = append(out, t)
		}
	}
	return out
}
