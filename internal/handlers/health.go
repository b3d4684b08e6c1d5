package handlers

import (
	"net/http"
	"time"

	"finitefield.org/hanko-seo/internal/platform/httpx"
)

var startTime = time.Now()

// Health responds with a simple status payload for monitoring and readiness checks.
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
