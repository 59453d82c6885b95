package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/go-lawfirm-cms/pkg/log"
)

// Timeout ограничивает время запроса к БД, хранилищу файлов и лентам:
// обработчики передают r.Context() дальше, и операции обрываются по дедлайну.
// Уже существующий дедлайн не продлевается. d <= 0 — no-op.
//
// Ответ не подменяется: статус выбирает обработчик по ошибке операции
// (обычно 500). Если дедлайн истёк, пишется предупреждение request_deadline_exceeded.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logctx.From(ctx).Warn("request_deadline_exceeded",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("limit", d),
					slog.Duration("dur", time.Since(start)),
				)
			}
		})
	}
}
