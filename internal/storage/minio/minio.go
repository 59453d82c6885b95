// minio реализует storage.Files поверх MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, подбирает Secure/creds
// и проверяет наличие целевого бакета.
// files.go — загрузка, чтение и удаление PDF-вложений.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-lawfirm-cms/internal/config"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
)

// FilesStorage — адаптер MinIO для вложений статей.
type FilesStorage struct {
	bucket string
	client *mclient.Client
}

// New создаёт клиент MinIO и выполняет fail-fast-проверку бакета.
func New(ctx context.Context, cfg config.S3Config) (*FilesStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &FilesStorage{bucket: cfg.Bucket, client: client}, nil
}

var _ storage.Files = (*FilesStorage)(nil)
