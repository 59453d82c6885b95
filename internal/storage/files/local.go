// files реализует storage.Files на локальном диске: каталог uploads рядом с приложением.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
)

// Local — файловое хранилище вложений в одном плоском каталоге.
type Local struct {
	dir string
}

// NewLocal создаёт каталог (если нужно) и возвращает хранилище.
func NewLocal(dir string) (*Local, error) {
	const op = "storage/files/NewLocal"

	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%s: empty dir", op)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Local{dir: dir}, nil
}

// Save пишет содержимое во временный файл и атомарно переименовывает его в pdf-<uuid>.pdf.
// Если прочитано больше size байт — ErrInvalidArgument.
func (l *Local) Save(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	const op = "storage/files/Local.Save"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := NewKey(contentType)

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	src := r
	if size > 0 {
		src = io.LimitReader(r, size+1)
	}

	n, err := io.Copy(tmp, src)
	if err != nil {
		cleanup()
		return "", fmt.Errorf("%s: write: %w", op, err)
	}

	if size > 0 && n > size {
		cleanup()
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%s: close: %w", op, err)
	}

	if err := os.Rename(tmpName, filepath.Join(l.dir, key)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%s: rename: %w", op, err)
	}

	return key, nil
}

// Open открывает файл вложения на чтение.
func (l *Local) Open(_ context.Context, key string) (io.ReadCloser, *storage.FileInfo, error) {
	const op = "storage/files/Local.Open"

	if !ValidKey(key) {
		return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	f, err := os.Open(filepath.Join(l.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%s: stat: %w", op, err)
	}

	return f, &storage.FileInfo{
		Key:         key,
		Size:        st.Size(),
		ContentType: ContentTypeByKey(key),
		ModTime:     st.ModTime(),
	}, nil
}

// Remove удаляет файл; отсутствие файла не ошибка.
func (l *Local) Remove(_ context.Context, key string) error {
	const op = "storage/files/Local.Remove"

	if !ValidKey(key) {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	err := os.Remove(filepath.Join(l.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// NewKey генерирует уникальное имя файла по типу содержимого.
func NewKey(contentType string) string {
	ext := ""
	if contentType == "application/pdf" {
		ext = ".pdf"
	}

	return "pdf-" + uuid.NewString() + ext
}

// ValidKey отсекает пустые ключи, скрытые файлы и любые попытки выйти из каталога.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return false
	}

	return !strings.ContainsAny(key, `/\`) && filepath.Base(key) == key
}

// ContentTypeByKey — тип содержимого по расширению ключа.
func ContentTypeByKey(key string) string {
	if strings.EqualFold(filepath.Ext(key), ".pdf") {
		return "application/pdf"
	}

	return "application/octet-stream"
}

var _ storage.Files = (*Local)(nil)
