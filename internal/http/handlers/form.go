package handlers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
)

const (
	// Запас на поля формы и multipart-разметку сверх лимита на PDF.
	formOverhead = 1 << 20
	// Сколько multipart-данных держать в памяти; остальное уходит во временные файлы.
	formMemory = 1 << 20
)

// Имена полей статьи: английские и исторические португальские.
var (
	titleKeys  = []string{"title", "titulo"}
	bodyKeys   = []string{"body", "conteudo"}
	authorKeys = []string{"author", "autor"}
	dateKeys   = []string{"date", "data"}
)

// articleForm — разобранный ввод статьи. nil-поле — поле не передано.
type articleForm struct {
	title, body, author, date *string

	pdf   *service.Attachment
	file  multipart.File
	multi *multipart.Form
}

func (f *articleForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
	if f.multi != nil {
		_ = f.multi.RemoveAll()
	}
}

// articleJSON — JSON-вариант ввода; вложения через JSON не принимаются.
type articleJSON struct {
	Title    *string `json:"title"`
	Titulo   *string `json:"titulo"`
	Body     *string `json:"body"`
	Conteudo *string `json:"conteudo"`
	Author   *string `json:"author"`
	Autor    *string `json:"autor"`
	Date     *string `json:"date"`
	Data     *string `json:"data"`
}

// parseArticleForm разбирает multipart/form-data, x-www-form-urlencoded или JSON.
// Превышение лимита тела отдаётся как ошибка валидации PDF.
func (h *Handlers) parseArticleForm(w http.ResponseWriter, r *http.Request) (*articleForm, error) {
	maxPDF := h.Articles.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxPDF+formOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(formMemory); err != nil {
			return nil, bodyError(err, maxPDF)
		}
		return multipartForm(r)

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err, maxPDF)
		}
		return valuesForm(r.PostForm), nil

	default:
		var in articleJSON
		if err := decodeStrict(r.Body, &in); err != nil && !errors.Is(err, io.EOF) {
			return nil, bodyError(err, maxPDF)
		}
		return &articleForm{
			title:  firstNonNil(in.Title, in.Titulo),
			body:   firstNonNil(in.Body, in.Conteudo),
			author: firstNonNil(in.Author, in.Autor),
			date:   firstNonNil(in.Date, in.Data),
		}, nil
	}
}

func multipartForm(r *http.Request) (*articleForm, error) {
	form := valuesForm(url.Values(r.MultipartForm.Value))
	form.multi = r.MultipartForm

	file, header, err := r.FormFile("pdf")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return form, nil
	case err != nil:
		form.close()
		return nil, errBadBody()
	}

	form.file = file
	form.pdf = &service.Attachment{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}

	return form, nil
}

func valuesForm(v url.Values) *articleForm {
	return &articleForm{
		title:  lookup(v, titleKeys),
		body:   lookup(v, bodyKeys),
		author: lookup(v, authorKeys),
		date:   lookup(v, dateKeys),
	}
}

func lookup(v url.Values, keys []string) *string {
	for _, k := range keys {
		if vals, ok := v[k]; ok && len(vals) > 0 {
			s := vals[0]
			return &s
		}
	}
	return nil
}

func firstNonNil(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func bodyError(err error, maxPDF int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return service.PDFTooLarge(maxPDF)
	}
	return errBadBody()
}
