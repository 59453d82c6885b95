// service содержит бизнес-логику CMS:
// вход администратора и проверку токенов, CRUD статей с PDF-вложениями
// и работу с хранилищами через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Service не хранит состояние запроса и безопасен для конкурентного
//     использования при условии, что переданные хранилища потокобезопасны.
//   - Ошибки хранилищ не выходят наружу как есть: известные случаи
//     (нет записи, битый id) маппятся на ошибки пакета, прочее логируется
//     и превращается в ErrInternal.
//   - HTTP-статусы для ошибок выбирает пакет internal/http/errors.
package service

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/go-lawfirm-cms/internal/cache"
	"github.com/pribylovaa/go-lawfirm-cms/internal/config"
	"github.com/pribylovaa/go-lawfirm-cms/internal/metrics"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
)

var (
	// ErrValidation — входные данные не прошли проверку. Конкретное поле и
	// сообщение для клиента несёт *ValidationError. HTTP 422.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials — неизвестный логин, неактивная учётка или неверный пароль.
	// Сообщение одно на все случаи. HTTP 404.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated — токен не передан. HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken — подпись, формат или издатель токена не сходятся. HTTP 400.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. HTTP 400, как и ErrInvalidToken.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidID — идентификатор статьи не является ObjectID. HTTP 400.
	ErrInvalidID = errors.New("invalid id")

	// ErrNotFound — статьи (или вложения) нет. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrInternal — сбой хранилища или иная внутренняя ошибка. HTTP 500.
	ErrInternal = errors.New("internal error")
)

// ValidationError — ошибка валидации конкретного поля.
// Msg предназначено для показа пользователю как есть.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// Service описывает бизнес-логику CMS.
type Service struct {
	admins   storage.Admins
	articles storage.Articles
	files    storage.Files

	auth    config.AuthConfig
	listCap int64
	uploads config.UploadsConfig
	acache  cache.ArticlesCache // может быть nil, если кэш не сконфигурирован
	metrics *metrics.Metrics    // может быть nil
}

// New создаёт новый экземпляр Service.
func New(admins storage.Admins, articles storage.Articles, files storage.Files, cfg config.Config) *Service {
	listCap := cfg.Articles.ListLimit
	if listCap <= 0 {
		listCap = 10
	}

	uploads := cfg.Uploads
	if uploads.MaxSizeBytes <= 0 {
		uploads.MaxSizeBytes = 10 << 20
	}
	if uploads.PublicPrefix == "" {
		uploads.PublicPrefix = "/uploads"
	}

	return &Service{
		admins:   admins,
		articles: articles,
		files:    files,
		auth:     cfg.Auth,
		listCap:  listCap,
		uploads:  uploads,
	}
}

// SetArticlesCache устанавливает кэш списка статей (опционально).
func (s *Service) SetArticlesCache(c cache.ArticlesCache) {
	s.acache = c
}

// SetMetrics подключает метрики кэша (опционально).
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// MaxUploadSize — предел размера PDF в байтах.
func (s *Service) MaxUploadSize() int64 { return s.uploads.MaxSizeBytes }
