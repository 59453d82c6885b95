package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/pribylovaa/go-lawfirm-cms/internal/http/errors"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	logctx "github.com/pribylovaa/go-lawfirm-cms/pkg/log"
)

// TokenValidator проверяет токен сессии и возвращает ID администратора.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// AuthOptions — параметры Auth.
type AuthOptions struct {
	// CookieName — имя cookie с токеном (по умолчанию "token").
	CookieName string
	// LoginPath — куда перенаправлять браузер без валидной сессии (по умолчанию "/login").
	LoginPath string
}

type ctxKeyAdminID struct{}

// Auth пропускает запрос только с валидным токеном сессии.
// Токен берётся из cookie, затем из Authorization: Bearer.
//
// Отказ зависит от клиента: браузеру (Accept предпочитает text/html)
// отдаётся 303 на страницу логина, остальным — JSON 401 (токена нет)
// или 400 (токен невалиден).
func Auth(v TokenValidator, opts AuthOptions) Middleware {
	if opts.CookieName == "" {
		opts.CookieName = "token"
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "http/middleware/Auth"

			adminID, err := v.ValidateToken(r.Context(), tokenFromRequest(r, opts.CookieName))
			if err != nil {
				lg := logctx.From(r.Context())
				if errors.Is(err, service.ErrUnauthenticated) {
					lg.Debug("auth_missing_token",
						slog.String("op", op),
						slog.String("path", r.URL.Path),
					)
				} else {
					lg.Warn("auth_invalid_token",
						slog.String("op", op),
						slog.String("path", r.URL.Path),
						slog.String("err", err.Error()),
					)
				}

				if WantsHTML(r) {
					http.Redirect(w, r, opts.LoginPath, http.StatusSeeOther)
					return
				}

				apierrors.WriteError(w, r, err)
				return
			}

			ctx := WithAdminID(r.Context(), adminID)
			ctx = logctx.With(ctx, slog.String("admin_id", adminID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminID возвращает ID аутентифицированного администратора.
func AdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyAdminID{}).(string)
	return id, ok && id != ""
}

// WithAdminID кладёт ID администратора в контекст.
func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyAdminID{}, id)
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value)
	}

	const prefix = "bearer "
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}

// WantsHTML сообщает, что клиент ждёт HTML: Accept содержит text/html
// с приоритетом не ниже application/json.
func WantsHTML(r *http.Request) bool {
	htmlQ, jsonQ := -1.0, -1.0

	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, q := parseAcceptPart(part)
		switch mediaType {
		case "text/html":
			htmlQ = max(htmlQ, q)
		case "application/json":
			jsonQ = max(jsonQ, q)
		}
	}

	return htmlQ > 0 && htmlQ >= jsonQ
}

func parseAcceptPart(part string) (string, float64) {
	fields := strings.Split(part, ";")
	mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
	q := 1.0

	for _, p := range fields[1:] {
		k, val, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.TrimSpace(k) != "q" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			q = f
		}
	}

	return mediaType, q
}
