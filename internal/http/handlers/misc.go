package handlers

import (
	"net/http"
)

const (
	msgAPIGreeting = "Olá, bem vindo a API"

	// AdminHome — стартовая страница админки.
	AdminHome = "/sistema/sistema.html"
)

// APIGreeting — проверка сессии для админки: отвечает только аутентифицированным.
func (h *Handlers) APIGreeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, msgResponse{Msg: msgAPIGreeting})
}

// AdminRedirect отправляет в админку.
func (h *Handlers) AdminRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, AdminHome, http.StatusFound)
}
