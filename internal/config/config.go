// config предоставляет конфигурацию CMS-бэкенда и её загрузку из YAML/ENV
// с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения. От EnvProd зависят атрибуты auth-cookie и формат логов.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь через флаг --config;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. только переменные окружения.
//
// После чтения файла ENV накладывается поверх значений из YAML.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	DB       DBConfig       `yaml:"db"`
	Redis    RedisConfig    `yaml:"redis"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	S3       S3Config       `yaml:"s3"`
	Articles ArticlesConfig `yaml:"articles"`
	News     NewsConfig     `yaml:"news"`
	Static   StaticConfig   `yaml:"static"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// IsProd сообщает, запущен ли сервис в production-окружении.
func (c Config) IsProd() bool { return c.Env == EnvProd }

// HTTPConfig — публичный HTTP-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3001"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// AuthConfig — параметры выпуска и проверки токенов и политика паролей.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"TOKEN_TTL"  env-default:"3h"`
	Issuer    string        `yaml:"issuer"     env:"ISSUER"     env-default:"lawfirm-cms"`
	// Минимальная длина пароля при логине; 0 — проверка выключена.
	MinPasswordLen int `yaml:"min_password_len" env:"MIN_PASSWORD_LEN" env-default:"8"`
	// Имя cookie с токеном. Клиентские скрипты полагаются на "token".
	CookieName string `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"token"`
	// Куда отправлять браузер, если токена нет или он невалиден.
	LoginPath string `yaml:"login_path" env:"LOGIN_PATH" env-default:"/login"`
}

// DBConfig — подключение к MongoDB. Имя БД берётся из пути URI.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — кэш списка статей. Пустой URL выключает кэш.
type RedisConfig struct {
	URL string        `yaml:"url" env:"REDIS_URL"`
	TTL time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"5m"`
}

// UploadsConfig — вложения статей (PDF).
type UploadsConfig struct {
	// Backend: "local" (диск) или "s3" (MinIO/S3).
	Backend string `yaml:"backend" env:"UPLOADS_BACKEND" env-default:"local"`
	Dir     string `yaml:"dir"     env:"UPLOADS_DIR"     env-default:"./uploads"`
	// Публичный префикс, под которым файлы отдаются наружу; он же хранится в pdfPath.
	PublicPrefix string `yaml:"public_prefix"  env:"UPLOADS_PUBLIC_PREFIX" env-default:"/uploads"`
	MaxSizeBytes int64  `yaml:"max_size_bytes" env:"UPLOADS_MAX_SIZE"      env-default:"10485760"`
}

// S3Config — MinIO/S3, используется при uploads.backend = "s3".
type S3Config struct {
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET" env-default:"articles"`
}

// ArticlesConfig — выдача списка статей.
type ArticlesConfig struct {
	ListLimit int64 `yaml:"list_limit" env:"ARTICLES_LIST_LIMIT" env-default:"10"`
}

// FeedSource — один RSS-источник. Порядок источников в конфиге сохраняется в выдаче.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// NewsConfig — агрегатор новостей.
type NewsConfig struct {
	// Источники в формате YAML-списка. Через ENV: NEWS_SOURCES="Conjur=https://...,STF=https://...".
	Sources        []FeedSource  `yaml:"sources"`
	SourcesEnv     string        `yaml:"-"                env:"NEWS_SOURCES"`
	ItemsPerSource int           `yaml:"items_per_source" env:"NEWS_ITEMS_PER_SOURCE" env-default:"6"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"    env:"NEWS_FETCH_TIMEOUT"    env-default:"10s"`
	UserAgent      string        `yaml:"user_agent"       env:"NEWS_USER_AGENT"       env-default:"lawfirm-cms/1.0"`
}

// DefaultFeedSources — источники по умолчанию (юридические новости Бразилии).
func DefaultFeedSources() []FeedSource {
	return []FeedSource{
		{Name: "Conjur", URL: "https://www.conjur.com.br/rss.xml"},
		{Name: "STF", URL: "https://portal.stf.jus.br/rss/STF-noticias.xml"},
		{Name: "STJ", URL: "https://res.stj.jus.br/hrestp-c-portalp/RSS.xml"},
	}
}

// StaticConfig — статические страницы сайта. Пустые пути выключают раздачу.
type StaticConfig struct {
	PublicDir string `yaml:"public_dir" env:"STATIC_PUBLIC_DIR"`
	AdminDir  string `yaml:"admin_dir"  env:"STATIC_ADMIN_DIR"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Request  time.Duration `yaml:"request"  env:"REQUEST_TIMEOUT"  env-default:"15s"`
	Startup  time.Duration `yaml:"startup"  env:"STARTUP_TIMEOUT"  env-default:"10s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// cleanenv.ReadConfig уже накладывает ENV, но повторный проход
		// нужен для полей, которые в YAML заданы пустыми строками.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return fmt.Errorf("failed to overlay env: %w", err)
		}

		return nil
	}

	switch {
	case path != "":
		if err := readFile(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := readFile(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := readFile("local.yaml"); err != nil {
				return nil, err
			}
		} else if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	if err := cfg.applySourcesEnv(); err != nil {
		return nil, err
	}

	if len(cfg.News.Sources) == 0 {
		cfg.News.Sources = DefaultFeedSources()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applySourcesEnv разбирает NEWS_SOURCES ("Name=URL,Name=URL") и, если переменная задана,
// заменяет им список из YAML.
func (c *Config) applySourcesEnv() error {
	raw := strings.TrimSpace(c.News.SourcesEnv)
	if raw == "" {
		return nil
	}

	var out []FeedSource
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, url, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			return fmt.Errorf("news sources: bad entry %q, want Name=URL", part)
		}

		out = append(out, FeedSource{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}

	c.News.Sources = out
	return nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Auth.TokenTTL < time.Minute {
		return fmt.Errorf("auth.token_ttl must be at least 1m")
	}

	if c.Auth.MinPasswordLen < 0 {
		return fmt.Errorf("auth.min_password_len must be >= 0")
	}

	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	switch c.Uploads.Backend {
	case "local":
		if c.Uploads.Dir == "" {
			return fmt.Errorf("uploads.dir is required for local backend")
		}
	case "s3":
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("s3.endpoint and s3.bucket are required for s3 backend")
		}
	default:
		return fmt.Errorf("uploads.backend must be local or s3, got %q", c.Uploads.Backend)
	}

	if c.Uploads.MaxSizeBytes <= 0 {
		return fmt.Errorf("uploads.max_size_bytes must be > 0")
	}

	if !strings.HasPrefix(c.Uploads.PublicPrefix, "/") {
		return fmt.Errorf("uploads.public_prefix must start with /")
	}

	// "/uploads/" и "/uploads" — один и тот же префикс маршрута.
	c.Uploads.PublicPrefix = strings.TrimRight(c.Uploads.PublicPrefix, "/")
	if c.Uploads.PublicPrefix == "" {
		return fmt.Errorf("uploads.public_prefix must not be the site root")
	}

	if c.Articles.ListLimit <= 0 {
		return fmt.Errorf("articles.list_limit must be > 0")
	}

	if c.News.ItemsPerSource <= 0 {
		return fmt.Errorf("news.items_per_source must be > 0")
	}

	for i, s := range c.News.Sources {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("news.sources[%d]: name and url are required", i)
		}
	}

	return nil
}
