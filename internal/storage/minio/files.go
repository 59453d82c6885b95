package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"

	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage/files"
)

// Save загружает объект под новым ключом pdf-<uuid>.pdf.
// size <= 0 означает «размер неизвестен»: minio-go перейдёт на multipart upload.
func (s *FilesStorage) Save(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	const op = "storage/minio/files/Save"

	key := files.NewKey(contentType)

	if size <= 0 {
		size = -1
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return key, nil
}

// Open возвращает поток объекта. Наличие проверяется через StatObject до чтения,
// чтобы отличить 404 от прочих ошибок.
func (s *FilesStorage) Open(ctx context.Context, key string) (io.ReadCloser, *storage.FileInfo, error) {
	const op = "storage/minio/files/Open"

	if !files.ValidKey(key) {
		return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, mclient.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	ct := st.ContentType
	if ct == "" {
		ct = files.ContentTypeByKey(key)
	}

	return obj, &storage.FileInfo{
		Key:         key,
		Size:        st.Size,
		ContentType: ct,
		ModTime:     st.LastModified,
	}, nil
}

// Remove удаляет объект. Отсутствие ключа (NoSuchKey) ошибкой не считается.
func (s *FilesStorage) Remove(ctx context.Context, key string) error {
	const op = "storage/minio/files/Remove"

	if !files.ValidKey(key) {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	err := s.client.RemoveObject(ctx, s.bucket, key, mclient.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func isNotFound(err error) bool {
	resp := mclient.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
