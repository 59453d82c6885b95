package handlers

import (
	"net/http"
)

// ListNews всегда отвечает 200: недоступные источники просто пропускаются.
func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.News.Latest(r.Context()))
}
