package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-lawfirm-cms/internal/cache"
	"github.com/pribylovaa/go-lawfirm-cms/internal/config"
	cmshttp "github.com/pribylovaa/go-lawfirm-cms/internal/http"
	"github.com/pribylovaa/go-lawfirm-cms/internal/http/handlers"
	"github.com/pribylovaa/go-lawfirm-cms/internal/http/middleware"
	"github.com/pribylovaa/go-lawfirm-cms/internal/metrics"
	"github.com/pribylovaa/go-lawfirm-cms/internal/news"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage/files"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage/minio"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage/mongo"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/redact"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting cms", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Подключение к MongoDB c таймаутом.
	log.Info("mongo_connecting", slog.String("url", redact.URL(cfg.DB.URL)))
	dbCtx, dbCancel := context.WithTimeout(rootCtx, cfg.Timeouts.Startup)
	db, err := mongo.New(dbCtx, cfg.DB.URL)
	dbCancel()
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := db.Close(ctx); cerr != nil {
			log.Warn("mongo_close_failed", slog.String("err", cerr.Error()))
		}
	}()
	log.Info("mongo_connected")

	fileStore, err := newFileStore(rootCtx, cfg)
	if err != nil {
		log.Error("uploads_init_failed",
			slog.String("backend", cfg.Uploads.Backend),
			slog.String("err", err.Error()),
		)
		os.Exit(1)
	}
	log.Info("uploads_initialized", slog.String("backend", cfg.Uploads.Backend))

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	svc := service.New(db, db, fileStore, *cfg)
	svc.SetMetrics(m)

	// Кэш списка статей опционален: без REDIS_URL работаем напрямую с БД.
	if cfg.Redis.URL != "" {
		cacheCtx, cacheCancel := context.WithTimeout(rootCtx, cfg.Timeouts.Startup)
		ac, err := cache.NewRedisCache(cacheCtx, cfg.Redis.URL, cfg.Redis.TTL)
		cacheCancel()
		if err != nil {
			log.Error("redis_connect_failed",
				slog.String("url", redact.URL(cfg.Redis.URL)),
				slog.String("err", err.Error()),
			)
			os.Exit(1)
		}
		defer func() {
			if cerr := ac.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		svc.SetArticlesCache(ac)
		log.Info("articles_cache_enabled", slog.Duration("ttl", cfg.Redis.TTL))
	}

	agg := news.New(cfg.News, nil, m)
	log.Info("service_initialized", slog.Int("news_sources", len(cfg.News.Sources)))

	cookie := handlers.CookieOptions{
		Name:     cfg.Auth.CookieName,
		TTL:      cfg.Auth.TokenTTL,
		Secure:   cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
	}
	// Сайт и API в проде живут на разных доменах.
	if cfg.IsProd() {
		cookie.SameSite = http.SameSiteNoneMode
	}

	h := handlers.New(svc, svc, agg, cookie)

	apiHandler := cmshttp.NewRouter(h, cmshttp.Options{
		Logger:    log,
		Timeout:   cfg.Timeouts.Request,
		Metrics:   m,
		Validator: svc,
		Auth: middleware.AuthOptions{
			CookieName: cfg.Auth.CookieName,
			LoginPath:  cfg.Auth.LoginPath,
		},
		UploadsPrefix: cfg.Uploads.PublicPrefix,
		PublicDir:     cfg.Static.PublicDir,
		AdminDir:      cfg.Static.AdminDir,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("cms_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// newFileStore выбирает хранилище вложений по uploads.backend.
func newFileStore(ctx context.Context, cfg *config.Config) (storage.Files, error) {
	if cfg.Uploads.Backend == "s3" {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Startup)
		defer cancel()
		return minio.New(ctx, cfg.S3)
	}

	return files.NewLocal(cfg.Uploads.Dir)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
