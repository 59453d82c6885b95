// storage описывает контракты хранилищ CMS: администраторы и статьи (MongoDB),
// файлы вложений (диск или MinIO/S3).
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
)

var (
	// ErrNotFound — сущность (документ или файл) отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID — идентификатор имеет неверный формат.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidArgument — нарушены ограничения на входные данные хранилища.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Admins — чтение учётных записей администраторов.
type Admins interface {
	// AdminByUsername возвращает администратора по точному совпадению username.
	// Если записи нет — ErrNotFound.
	AdminByUsername(ctx context.Context, username string) (*models.Admin, error)

	// UpsertAdmin создаёт или перезаписывает администратора по username.
	// Используется только утилитой cmd/seed-admin.
	UpsertAdmin(ctx context.Context, admin models.Admin) (*models.Admin, error)
}

// Articles — операции над статьями.
type Articles interface {
	// CreateArticle сохраняет статью; ID генерируется хранилищем.
	CreateArticle(ctx context.Context, article models.Article) (*models.Article, error)

	// ArticleByID возвращает статью. Неверный формат id — ErrInvalidID, отсутствие — ErrNotFound.
	ArticleByID(ctx context.Context, id string) (*models.Article, error)

	// ListArticles возвращает не более limit статей, новые (по дате публикации) первыми.
	ListArticles(ctx context.Context, limit int64) ([]models.Article, error)

	// UpdateArticle применяет частичное обновление и возвращает итоговый документ.
	UpdateArticle(ctx context.Context, id string, upd models.ArticleUpdate) (*models.Article, error)

	// DeleteArticle удаляет статью. Если записи нет — ErrNotFound.
	DeleteArticle(ctx context.Context, id string) error
}

// FileInfo — метаданные сохранённого файла.
type FileInfo struct {
	Key         string
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Files — хранилище вложений. Ключ — плоское имя файла без каталогов.
type Files interface {
	// Save сохраняет содержимое под новым уникальным ключом и возвращает ключ.
	Save(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)

	// Open открывает файл на чтение. Отсутствие — ErrNotFound, битый ключ — ErrInvalidArgument.
	Open(ctx context.Context, key string) (io.ReadCloser, *FileInfo, error)

	// Remove удаляет файл. Отсутствие файла ошибкой не считается.
	Remove(ctx context.Context, key string) error
}
