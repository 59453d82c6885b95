package http

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-lawfirm-cms/internal/http/handlers"
	"github.com/pribylovaa/go-lawfirm-cms/internal/http/middleware"
	"github.com/pribylovaa/go-lawfirm-cms/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics // nil — метрики HTTP не собираются

	// Validator проверяет токен сессии на защищённых маршрутах. Обязателен.
	Validator middleware.TokenValidator
	Auth      middleware.AuthOptions

	// UploadsPrefix — публичный префикс вложений (по умолчанию "/uploads").
	UploadsPrefix string

	// Каталоги статики; пустая строка выключает раздачу.
	PublicDir string
	AdminDir  string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	opts.UploadsPrefix = strings.TrimRight(opts.UploadsPrefix, "/")
	if opts.UploadsPrefix == "" {
		opts.UploadsPrefix = "/uploads"
	}

	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	auth := middleware.Auth(opts.Validator, opts.Auth)

	registerRoutes(root, h, auth, opts.UploadsPrefix)
	registerStatic(root, auth, opts)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Middleware, uploads string) {
	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	// articles
	r.Get("/articles", h.ListArticles)
	r.Get("/articles/{id}", h.GetArticle)

	// news
	r.Get("/news", h.ListNews)

	// uploads
	r.Get(uploads+"/{name}", h.ServePDF)

	// Старые пути страниц сайта: ответы в прежнем формате (_id, titulo, ...).
	r.Get("/artigos", h.ListArtigos)
	r.Get("/artigos/{id}", h.GetArtigo)
	r.Get("/noticias", h.ListNoticias)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/articles", h.CreateArticle)
		r.Put("/articles/{id}", h.UpdateArticle)
		r.Delete("/articles/{id}", h.DeleteArticle)

		r.Post("/postArt", h.CreateArtigo)
		r.Put("/artigos/{id}", h.UpdateArtigo)
		r.Delete("/artigos/{id}", h.DeleteArticle)

		r.Get("/api", h.APIGreeting)
		r.Get("/admin", h.AdminRedirect)
	})
}

// registerStatic раздаёт публичный сайт с корня и админку под /sistema (только с сессией).
func registerStatic(r chi.Router, auth middleware.Middleware, opts Options) {
	if opts.AdminDir != "" {
		admin := http.StripPrefix("/sistema", http.FileServer(http.Dir(opts.AdminDir)))
		r.Handle("/sistema/*", middleware.Chain(admin, auth))
	}

	if opts.PublicDir != "" {
		loginPage := filepath.Join(opts.PublicDir, "login.html")
		r.Get("/login", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, loginPage)
		})
		r.Handle("/*", http.FileServer(http.Dir(opts.PublicDir)))
	}
}
