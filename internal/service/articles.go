package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/metrics"
	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/log"
)

const (
	msgTitleRequired   = "É necessário um titulo"
	msgBodyRequired    = "Adicione um resumo!"
	msgAuthorRequired  = "Cite o autor do Artigo!"
	msgDateRequired    = "Adicione uma data!"
	msgDateInvalid     = "Data inválida! Use o formato AAAA-MM-DD"
	msgPDFOnly         = "Apenas arquivos PDF são permitidos!"
	msgPDFTooLarge     = "O PDF excede o tamanho máximo de %d MB"
	msgPDFEmpty        = "O arquivo PDF está vazio"
	msgNothingToUpdate = "Nenhum campo para atualizar"

	pdfContentType = "application/pdf"
	sniffLen       = 512
)

// Attachment — PDF, пришедший вместе со статьёй.
// Size — точный размер в байтах (из multipart-заголовка).
type Attachment struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// ArticleInput — данные для создания статьи. Date: YYYY-MM-DD или RFC3339.
type ArticleInput struct {
	Title  string
	Body   string
	Author string
	Date   string
	PDF    *Attachment
}

// ArticlePatch — частичное обновление: nil-поля не меняются.
type ArticlePatch struct {
	Title  *string
	Body   *string
	Author *string
	Date   *string
	PDF    *Attachment
}

// ListArticles возвращает последние статьи (не больше articles.list_limit).
func (s *Service) ListArticles(ctx context.Context) ([]models.Article, error) {
	const op = "service/articles/ListArticles"

	lg := log.From(ctx)

	// Поколение берём до чтения из БД, иначе список, прочитанный до записи,
	// может лечь в кэш уже после её инвалидации.
	cached := false
	var gen int64
	if s.acache != nil {
		var err error
		if gen, err = s.acache.Generation(ctx); err != nil {
			lg.Warn("articles_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else {
			cached = true
		}
	}

	if cached {
		list, ok, err := s.acache.Get(ctx, gen, s.listCap)
		switch {
		case err != nil:
			lg.Warn("articles_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		case ok:
			s.metrics.ObserveCache(metrics.ResultHit)
			return list, nil
		default:
			s.metrics.ObserveCache(metrics.ResultMiss)
		}
	}

	list, err := s.articles.ListArticles(ctx, s.listCap)
	if err != nil {
		return nil, s.storageErr(ctx, op, err)
	}

	if list == nil {
		list = []models.Article{}
	}

	if cached {
		if err := s.acache.Set(ctx, gen, s.listCap, list); err != nil {
			lg.Warn("articles_cache_set_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	return list, nil
}

// GetArticle возвращает статью по ID.
func (s *Service) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	const op = "service/articles/GetArticle"

	id = strings.TrimSpace(id)
	if !models.ValidID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	article, err := s.articles.ArticleByID(ctx, id)
	if err != nil {
		return nil, s.storageErr(ctx, op, err)
	}

	return article, nil
}

// CreateArticle валидирует ввод, сохраняет PDF (если есть) и статью.
// Если статью сохранить не удалось, уже загруженный PDF удаляется.
func (s *Service) CreateArticle(ctx context.Context, adminID string, in ArticleInput) (*models.Article, error) {
	const op = "service/articles/CreateArticle"

	lg := log.From(ctx)

	title, body, author := strings.TrimSpace(in.Title), strings.TrimSpace(in.Body), strings.TrimSpace(in.Author)

	switch {
	case title == "":
		return nil, fmt.Errorf("%s: %w", op, invalid("title", msgTitleRequired))
	case body == "":
		return nil, fmt.Errorf("%s: %w", op, invalid("body", msgBodyRequired))
	case author == "":
		return nil, fmt.Errorf("%s: %w", op, invalid("author", msgAuthorRequired))
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var pdfPath string
	if in.PDF != nil {
		pdfPath, err = s.savePDF(ctx, in.PDF)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	created, err := s.articles.CreateArticle(ctx, models.Article{
		Title:       title,
		Body:        body,
		Author:      author,
		PublishDate: date,
		PDFPath:     pdfPath,
		CreatedBy:   adminID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.removePDF(ctx, pdfPath)
		return nil, s.storageErr(ctx, op, err)
	}

	s.invalidateList(ctx)

	lg.Info("article_created",
		slog.String("op", op),
		slog.String("article_id", created.ID),
		slog.String("admin_id", adminID),
		slog.Bool("pdf", pdfPath != ""),
	)

	return created, nil
}

// UpdateArticle применяет частичное обновление. Новый PDF заменяет старый:
// старый файл удаляется после успешного сохранения записи.
func (s *Service) UpdateArticle(ctx context.Context, adminID, id string, patch ArticlePatch) (*models.Article, error) {
	const op = "service/articles/UpdateArticle"

	lg := log.From(ctx)

	id = strings.TrimSpace(id)
	if !models.ValidID(id) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	upd := models.ArticleUpdate{UpdatedBy: adminID, UpdatedAt: time.Now().UTC()}

	var err error
	if upd.Title, err = optionalText(patch.Title, "title", msgTitleRequired); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Body, err = optionalText(patch.Body, "body", msgBodyRequired); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Author, err = optionalText(patch.Author, "author", msgAuthorRequired); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if patch.Date != nil {
		date, err := parseDate(*patch.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.PublishDate = &date
	}

	if upd.Empty() && patch.PDF == nil {
		return nil, fmt.Errorf("%s: %w", op, invalid("body", msgNothingToUpdate))
	}

	existing, err := s.articles.ArticleByID(ctx, id)
	if err != nil {
		return nil, s.storageErr(ctx, op, err)
	}

	if patch.PDF != nil {
		newPath, err := s.savePDF(ctx, patch.PDF)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.PDFPath = &newPath
	}

	updated, err := s.articles.UpdateArticle(ctx, id, upd)
	if err != nil {
		if upd.PDFPath != nil {
			s.removePDF(ctx, *upd.PDFPath)
		}
		return nil, s.storageErr(ctx, op, err)
	}

	if upd.PDFPath != nil && existing.PDFPath != "" && existing.PDFPath != *upd.PDFPath {
		s.removePDF(ctx, existing.PDFPath)
	}

	s.invalidateList(ctx)

	lg.Info("article_updated",
		slog.String("op", op),
		slog.String("article_id", id),
		slog.String("admin_id", adminID),
		slog.Bool("pdf_replaced", upd.PDFPath != nil),
	)

	return updated, nil
}

// DeleteArticle удаляет статью и её PDF (best-effort).
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	const op = "service/articles/DeleteArticle"

	lg := log.From(ctx)

	id = strings.TrimSpace(id)
	if !models.ValidID(id) {
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	}

	existing, err := s.articles.ArticleByID(ctx, id)
	if err != nil {
		return s.storageErr(ctx, op, err)
	}

	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		return s.storageErr(ctx, op, err)
	}

	s.removePDF(ctx, existing.PDFPath)
	s.invalidateList(ctx)

	lg.Info("article_deleted",
		slog.String("op", op),
		slog.String("article_id", id),
	)

	return nil
}

// OpenPDF открывает вложение по имени файла для отдачи клиенту.
func (s *Service) OpenPDF(ctx context.Context, name string) (io.ReadCloser, *storage.FileInfo, error) {
	const op = "service/articles/OpenPDF"

	rc, info, err := s.files.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, nil, s.storageErr(ctx, op, err)
	}

	return rc, info, nil
}

// savePDF проверяет вложение (заявленный тип, размер, сигнатура)
// и сохраняет его. Возвращает публичный путь.
func (s *Service) savePDF(ctx context.Context, a *Attachment) (string, error) {
	const op = "service/articles/savePDF"

	maxSize := s.uploads.MaxSizeBytes
	tooLarge := PDFTooLarge(maxSize)

	mediaType, _, err := mime.ParseMediaType(a.ContentType)
	if err != nil || mediaType != pdfContentType {
		return "", invalid("pdf", msgPDFOnly)
	}

	if a.Size <= 0 || a.Reader == nil {
		return "", invalid("pdf", msgPDFEmpty)
	}

	if a.Size > maxSize {
		return "", tooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(a.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.From(ctx).Error("pdf_read_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if n == 0 {
		return "", invalid("pdf", msgPDFEmpty)
	}

	if http.DetectContentType(head[:n]) != pdfContentType {
		return "", invalid("pdf", msgPDFOnly)
	}

	body := io.MultiReader(bytes.NewReader(head[:n]), a.Reader)

	key, err := s.files.Save(ctx, body, a.Size, pdfContentType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return "", tooLarge
		}

		return "", s.storageErr(ctx, op, err)
	}

	return strings.TrimRight(s.uploads.PublicPrefix, "/") + "/" + key, nil
}

// PDFTooLarge — ошибка валидации для вложения больше maxSize байт.
// HTTP-слой отдаёт её же, когда тело запроса упирается в лимит.
func PDFTooLarge(maxSize int64) error {
	return invalid("pdf", fmt.Sprintf(msgPDFTooLarge, (maxSize+(1<<20)-1)>>20))
}

// removePDF удаляет файл по публичному пути. Ошибка только логируется.
func (s *Service) removePDF(ctx context.Context, pdfPath string) {
	const op = "service/articles/removePDF"

	key := keyFromPath(pdfPath)
	if key == "" {
		return
	}

	if err := s.files.Remove(ctx, key); err != nil {
		log.From(ctx).Warn("pdf_remove_failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

func (s *Service) invalidateList(ctx context.Context) {
	const op = "service/articles/invalidateList"

	if s.acache == nil {
		return
	}

	if err := s.acache.Invalidate(ctx); err != nil {
		log.From(ctx).Warn("articles_cache_invalidate_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// storageErr переводит ошибку хранилища в ошибку пакета.
func (s *Service) storageErr(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	log.From(ctx).Error("storage_failed",
		slog.String("op", op),
		slog.String("err", err.Error()),
	)

	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// keyFromPath извлекает имя файла из публичного пути (/uploads/pdf-1.pdf -> pdf-1.pdf).
// Старые записи могут хранить путь без ведущего слэша.
func keyFromPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" {
		return ""
	}

	key := path.Base(p)
	if key == "." || key == "/" {
		return ""
	}

	return key
}

func optionalText(v *string, field, msg string) (*string, error) {
	if v == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, invalid(field, msg)
	}

	return &trimmed, nil
}

// parseDate принимает YYYY-MM-DD (полночь UTC) или RFC3339.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, invalid("date", msgDateRequired)
	}

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, invalid("date", msgDateInvalid)
}
