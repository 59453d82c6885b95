package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
)

// AuthService — вход администратора.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
}

// ArticleService — операции над статьями и их вложениями.
type ArticleService interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, adminID string, in service.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, adminID, id string, patch service.ArticlePatch) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	OpenPDF(ctx context.Context, name string) (io.ReadCloser, *storage.FileInfo, error)
	MaxUploadSize() int64
}

// NewsService — агрегатор внешних лент.
type NewsService interface {
	Latest(ctx context.Context) []models.NewsItem
}

// CookieOptions — атрибуты auth-cookie.
type CookieOptions struct {
	Name     string
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
}

// Handlers агрегирует зависимости HTTP-обработчиков.
type Handlers struct {
	Auth     AuthService
	Articles ArticleService
	News     NewsService
	Cookie   CookieOptions
}

// New создаёт Handlers. Пустое имя cookie заменяется на "token".
func New(auth AuthService, articles ArticleService, news NewsService, cookie CookieOptions) *Handlers {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	if cookie.SameSite == 0 {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return &Handlers{Auth: auth, Articles: articles, News: news, Cookie: cookie}
}

// msgResponse — типовой ответ {msg}.
type msgResponse struct {
	Msg string `json:"msg"`
}

// articleResponse — ответ на запись статьи: {msg, article}.
type articleResponse struct {
	Msg     string          `json:"msg"`
	Article *models.Article `json:"article"`
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r io.Reader, value any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

const msgBadBody = "Corpo da requisição inválido"

// errBadBody — тело запроса не разбирается.
func errBadBody() error {
	return &service.ValidationError{Field: "body", Msg: msgBadBody}
}
