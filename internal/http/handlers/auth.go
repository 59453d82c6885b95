package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-lawfirm-cms/internal/http/errors"
)

const (
	msgLoginOK  = "Autenticação realizada com sucesso"
	msgLogoutOK = "Logout realizado com sucesso"

	maxLoginBody = 64 << 10
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login принимает {username, password} в JSON или form-urlencoded
// и при успехе ставит cookie с токеном.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBody)

	var in loginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxLoginBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			apierrors.WriteError(w, r, errBadBody())
			return
		}
		in.Username = r.PostFormValue("username")
		in.Password = r.PostFormValue("password")
	default:
		if err := decodeStrict(r.Body, &in); err != nil && !errors.Is(err, io.EOF) {
			apierrors.WriteError(w, r, errBadBody())
			return
		}
	}

	sess, err := h.Auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	http.SetCookie(w, h.authCookie(sess.Token, int(h.Cookie.TTL.Seconds()), sess.ExpiresAt))
	writeJSON(w, http.StatusOK, msgResponse{Msg: msgLoginOK})
}

// Logout стирает cookie. Сам токен остаётся валидным до истечения срока.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.authCookie("", -1, time.Unix(0, 0)))
	writeJSON(w, http.StatusOK, msgResponse{Msg: msgLogoutOK})
}

// Expires дублирует MaxAge для клиентов, которые его не понимают.
func (h *Handlers) authCookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: h.Cookie.SameSite,
	}
}
