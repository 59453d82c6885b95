package handlers

// Тесты HTTP-обработчиков.
// Подход как в транспортных тестах сервисов:
//  - gomock для слоя storage ниже сервиса;
//  - реальный service.Service поверх моков;
//  - проверяем разбор ввода (JSON/form/multipart), статусы и тела ответов.

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-lawfirm-cms/internal/config"
	apierrors "github.com/pribylovaa/go-lawfirm-cms/internal/http/errors"
	"github.com/pribylovaa/go-lawfirm-cms/internal/http/middleware"
	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"
	"github.com/pribylovaa/go-lawfirm-cms/mocks"
	"github.com/stretchr/testify/require"
)

const (
	adminID   = "65a000000000000000000001"
	articleID = "65a0000000000000000000aa"
	pdfBody   = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"
)

type stubNews []models.NewsItem

func (s stubNews) Latest(context.Context) []models.NewsItem {
	if s == nil {
		return []models.NewsItem{}
	}
	return s
}

type fixture struct {
	h        *Handlers
	svc      *service.Service
	admins   *mocks.MockAdmins
	articles *mocks.MockArticles
	files    *mocks.MockFiles
}

func newFixture(t *testing.T, news stubNews) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		admins:   mocks.NewMockAdmins(ctrl),
		articles: mocks.NewMockArticles(ctrl),
		files:    mocks.NewMockFiles(ctrl),
	}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "handlers-secret",
			TokenTTL:       3 * time.Hour,
			Issuer:         "lawfirm-cms",
			MinPasswordLen: 8,
		},
		Articles: config.ArticlesConfig{ListLimit: 10},
		Uploads:  config.UploadsConfig{PublicPrefix: "/uploads", MaxSizeBytes: 1 << 20},
	}

	f.svc = service.New(f.admins, f.articles, f.files, cfg)
	f.h = New(f.svc, f.svc, news, CookieOptions{TTL: cfg.Auth.TokenTTL})

	return f
}

// withParam кладёт URL-параметр chi в контекст запроса.
func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asAdmin(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithAdminID(r.Context(), adminID))
}

func jsonReq(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ErrorResponse {
	t.Helper()
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp msgResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Msg
}

func storedArticle() *models.Article {
	return &models.Article{
		ID:          articleID,
		Title:       "Novo Código",
		Body:        "Resumo...",
		Author:      "J. Silva",
		PublishDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestLogin_JSON_SetsCookie(t *testing.T) {
	f := newFixture(t, nil)

	hash, err := service.HashPassword("segredo123")
	require.NoError(t, err)

	f.admins.EXPECT().AdminByUsername(gomock.Any(), "admin").
		Return(&models.Admin{ID: adminID, Username: "admin", PasswordHash: hash, Active: true}, nil)

	rec := httptest.NewRecorder()
	f.h.Login(rec, jsonReq(http.MethodPost, "/auth/login", `{"username":"admin","password":"segredo123"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, msgLoginOK, decodeMsg(t, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "token", c.Name)
	require.True(t, c.HttpOnly)
	require.Equal(t, "/", c.Path)
	require.Equal(t, int((3 * time.Hour).Seconds()), c.MaxAge)
	require.WithinDuration(t, time.Now().Add(3*time.Hour), c.Expires, time.Minute)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)

	id, err := f.svc.ValidateToken(context.Background(), c.Value)
	require.NoError(t, err)
	require.Equal(t, adminID, id)
}

func TestLogin_Form_UnknownUser(t *testing.T) {
	f := newFixture(t, nil)

	f.admins.EXPECT().AdminByUsername(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)

	form := url.Values{"username": {"ghost"}, "password": {"segredo123"}}
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.h.Login(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apierrors.MsgInvalidCredentials, decodeErr(t, rec).Msg)
	require.Empty(t, rec.Result().Cookies())
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t, nil)

	cases := []struct {
		name, body, field, msg string
	}{
		{"empty body", "", "username", "Usuário e senha são obrigatórios"},
		{"no password", `{"username":"admin"}`, "password", "Usuário e senha são obrigatórios"},
		{"short password", `{"username":"admin","password":"123"}`, "password", "A senha deve ter no mínimo 8 caracteres!"},
		{"unknown field", `{"user":"admin"}`, "body", msgBadBody},
		{"broken json", `{"username":`, "body", msgBadBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			f.h.Login(rec, jsonReq(http.MethodPost, "/auth/login", tc.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeErr(t, rec)
			require.Equal(t, tc.field, resp.Field)
			require.Equal(t, tc.msg, resp.Msg)
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := newFixture(t, nil)

	rec := httptest.NewRecorder()
	f.h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, msgLogoutOK, decodeMsg(t, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "token", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestListArticles(t *testing.T) {
	f := newFixture(t, nil)

	f.articles.EXPECT().ListArticles(gomock.Any(), int64(10)).
		Return([]models.Article{*storedArticle()}, nil)

	rec := httptest.NewRecorder()
	f.h.ListArticles(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, articleID, out[0].ID)
}

func TestListArticles_StorageFailure(t *testing.T) {
	f := newFixture(t, nil)

	f.articles.EXPECT().ListArticles(gomock.Any(), int64(10)).Return(nil, io.ErrUnexpectedEOF)

	rec := httptest.NewRecorder()
	f.h.ListArticles(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, apierrors.MsgInternal, decodeErr(t, rec).Msg)
}

func TestGetArticle(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("ok", func(t *testing.T) {
		f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(storedArticle(), nil)

		rec := httptest.NewRecorder()
		f.h.GetArticle(rec, withParam(httptest.NewRequest(http.MethodGet, "/articles/"+articleID, nil), "id", articleID))

		require.Equal(t, http.StatusOK, rec.Code)
		var out models.Article
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Equal(t, "Novo Código", out.Title)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		f.h.GetArticle(rec, withParam(httptest.NewRequest(http.MethodGet, "/articles/abc", nil), "id", "abc"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_id", decodeErr(t, rec).Code)
	})

	t.Run("not found", func(t *testing.T) {
		f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(nil, storage.ErrNotFound)

		rec := httptest.NewRecorder()
		f.h.GetArticle(rec, withParam(httptest.NewRequest(http.MethodGet, "/articles/"+articleID, nil), "id", articleID))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, apierrors.MsgNotFound, decodeErr(t, rec).Msg)
	})
}

// multipartArticle собирает форму статьи с португальскими именами полей.
func multipartArticle(t *testing.T, fields map[string]string, pdfType, pdf string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if pdf != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="pdf"; filename="lei.pdf"`)
		hdr.Set("Content-Type", pdfType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = io.WriteString(part, pdf)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/postArt", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestCreateArticle_MultipartWithPDF(t *testing.T) {
	f := newFixture(t, nil)

	f.files.EXPECT().Save(gomock.Any(), gomock.Any(), int64(len(pdfBody)), "application/pdf").
		DoAndReturn(func(_ context.Context, r io.Reader, _ int64, _ string) (string, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, pdfBody, string(data))
			return "pdf-1.pdf", nil
		})

	f.articles.EXPECT().CreateArticle(gomock.Any(), gomock.AssignableToTypeOf(models.Article{})).
		DoAndReturn(func(_ context.Context, a models.Article) (*models.Article, error) {
			require.Equal(t, "Novo Código", a.Title)
			require.Equal(t, "Resumo...", a.Body)
			require.Equal(t, "J. Silva", a.Author)
			require.Equal(t, "/uploads/pdf-1.pdf", a.PDFPath)
			require.Equal(t, adminID, a.CreatedBy)
			a.ID = articleID
			return &a, nil
		})

	r := multipartArticle(t, map[string]string{
		"titulo":   "Novo Código",
		"conteudo": "Resumo...",
		"autor":    "J. Silva",
		"data":     "2024-01-10",
	}, "application/pdf", pdfBody)

	rec := httptest.NewRecorder()
	f.h.CreateArticle(rec, asAdmin(r))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp articleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, msgArticleCreated, resp.Msg)
	require.NotNil(t, resp.Article)
	require.Equal(t, articleID, resp.Article.ID)
	require.Equal(t, "/uploads/pdf-1.pdf", resp.Article.PDFPath)
}

func TestCreateArticle_MultipartRejectsNonPDF(t *testing.T) {
	f := newFixture(t, nil)

	r := multipartArticle(t, map[string]string{
		"title": "t", "body": "b", "author": "a", "date": "2024-01-10",
	}, "image/png", "\x89PNG\r\n\x1a\n")

	rec := httptest.NewRecorder()
	f.h.CreateArticle(rec, asAdmin(r))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErr(t, rec)
	require.Equal(t, "pdf", resp.Field)
	require.Equal(t, "Apenas arquivos PDF são permitidos!", resp.Msg)
}

func TestCreateArticle_JSONValidation(t *testing.T) {
	f := newFixture(t, nil)

	cases := []struct {
		name, body, field, msg string
	}{
		{"no title", `{"body":"b","author":"a","date":"2024-01-10"}`, "title", "É necessário um titulo"},
		{"blank body", `{"titulo":"t","conteudo":"  ","autor":"a","data":"2024-01-10"}`, "body", "Adicione um resumo!"},
		{"no author", `{"title":"t","body":"b","date":"2024-01-10"}`, "author", "Cite o autor do Artigo!"},
		{"no date", `{"title":"t","body":"b","author":"a"}`, "date", "Adicione uma data!"},
		{"bad date", `{"title":"t","body":"b","author":"a","date":"10/01/2024"}`, "date", "Data inválida! Use o formato AAAA-MM-DD"},
		{"unknown field", `{"title":"t","pdf":"x"}`, "body", msgBadBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			f.h.CreateArticle(rec, asAdmin(jsonReq(http.MethodPost, "/articles", tc.body)))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeErr(t, rec)
			require.Equal(t, tc.field, resp.Field)
			require.Equal(t, tc.msg, resp.Msg)
		})
	}
}

func TestCreateArticle_BodyTooLarge(t *testing.T) {
	f := newFixture(t, nil)

	// Лимит тела: 1 MiB на PDF + запас на поля формы.
	huge := `{"title":"` + strings.Repeat("a", 3<<20) + `"}`

	rec := httptest.NewRecorder()
	f.h.CreateArticle(rec, asAdmin(jsonReq(http.MethodPost, "/articles", huge)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErr(t, rec)
	require.Equal(t, "pdf", resp.Field)
	require.Equal(t, "O PDF excede o tamanho máximo de 1 MB", resp.Msg)
}

func TestUpdateArticle_PartialJSON(t *testing.T) {
	f := newFixture(t, nil)

	f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(storedArticle(), nil)
	f.articles.EXPECT().UpdateArticle(gomock.Any(), articleID, gomock.AssignableToTypeOf(models.ArticleUpdate{})).
		DoAndReturn(func(_ context.Context, _ string, upd models.ArticleUpdate) (*models.Article, error) {
			require.NotNil(t, upd.Title)
			require.Equal(t, "Código Atualizado", *upd.Title)
			require.Nil(t, upd.Body)
			require.Nil(t, upd.PDFPath)
			require.Equal(t, adminID, upd.UpdatedBy)

			a := storedArticle()
			a.Title = *upd.Title
			return a, nil
		})

	r := jsonReq(http.MethodPut, "/artigos/"+articleID, `{"titulo":"Código Atualizado"}`)
	rec := httptest.NewRecorder()
	f.h.UpdateArticle(rec, withParam(asAdmin(r), "id", articleID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp articleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, msgArticleUpdated, resp.Msg)
	require.Equal(t, "Código Atualizado", resp.Article.Title)
}

func TestUpdateArticle_Errors(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("nothing to update", func(t *testing.T) {
		rec := httptest.NewRecorder()
		f.h.UpdateArticle(rec, withParam(asAdmin(jsonReq(http.MethodPut, "/articles/"+articleID, `{}`)), "id", articleID))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "Nenhum campo para atualizar", decodeErr(t, rec).Msg)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		f.h.UpdateArticle(rec, withParam(asAdmin(jsonReq(http.MethodPut, "/articles/x", `{"title":"t"}`)), "id", "x"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(nil, storage.ErrNotFound)

		rec := httptest.NewRecorder()
		f.h.UpdateArticle(rec, withParam(asAdmin(jsonReq(http.MethodPut, "/articles/"+articleID, `{"title":"t"}`)), "id", articleID))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteArticle_RemovesPDF(t *testing.T) {
	f := newFixture(t, nil)

	existing := storedArticle()
	existing.PDFPath = "/uploads/pdf-9.pdf"

	gomock.InOrder(
		f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(existing, nil),
		f.articles.EXPECT().DeleteArticle(gomock.Any(), articleID).Return(nil),
		f.files.EXPECT().Remove(gomock.Any(), "pdf-9.pdf").Return(nil),
	)

	rec := httptest.NewRecorder()
	f.h.DeleteArticle(rec, withParam(asAdmin(httptest.NewRequest(http.MethodDelete, "/artigos/"+articleID, nil)), "id", articleID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, msgArticleDeleted, decodeMsg(t, rec))
}

func TestDeleteArticle_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	f.articles.EXPECT().ArticleByID(gomock.Any(), articleID).Return(nil, storage.ErrNotFound)

	rec := httptest.NewRecorder()
	f.h.DeleteArticle(rec, withParam(asAdmin(httptest.NewRequest(http.MethodDelete, "/articles/"+articleID, nil)), "id", articleID))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

type seekCloser struct{ *strings.Reader }

func (seekCloser) Close() error { return nil }

func TestServePDF(t *testing.T) {
	f := newFixture(t, nil)
	info := &storage.FileInfo{
		Key:         "pdf-1.pdf",
		Size:        int64(len(pdfBody)),
		ContentType: "application/pdf",
		ModTime:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	t.Run("seekable", func(t *testing.T) {
		f.files.EXPECT().Open(gomock.Any(), "pdf-1.pdf").Return(seekCloser{strings.NewReader(pdfBody)}, info, nil)

		rec := httptest.NewRecorder()
		f.h.ServePDF(rec, withParam(httptest.NewRequest(http.MethodGet, "/uploads/pdf-1.pdf", nil), "name", "pdf-1.pdf"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		require.Contains(t, rec.Header().Get("Content-Disposition"), "inline")
		require.Equal(t, pdfBody, rec.Body.String())
	})

	t.Run("stream", func(t *testing.T) {
		f.files.EXPECT().Open(gomock.Any(), "pdf-1.pdf").Return(io.NopCloser(strings.NewReader(pdfBody)), info, nil)

		rec := httptest.NewRecorder()
		f.h.ServePDF(rec, withParam(httptest.NewRequest(http.MethodGet, "/uploads/pdf-1.pdf", nil), "name", "pdf-1.pdf"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, strconv.Itoa(len(pdfBody)), rec.Header().Get("Content-Length"))
		require.Equal(t, pdfBody, rec.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		f.files.EXPECT().Open(gomock.Any(), "pdf-2.pdf").Return(nil, nil, storage.ErrNotFound)

		rec := httptest.NewRecorder()
		f.h.ServePDF(rec, withParam(httptest.NewRequest(http.MethodGet, "/uploads/pdf-2.pdf", nil), "name", "pdf-2.pdf"))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad key", func(t *testing.T) {
		f.files.EXPECT().Open(gomock.Any(), "..").Return(nil, nil, storage.ErrInvalidArgument)

		rec := httptest.NewRecorder()
		f.h.ServePDF(rec, withParam(httptest.NewRequest(http.MethodGet, "/uploads/x", nil), "name", ".."))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListNews(t *testing.T) {
	t.Run("items", func(t *testing.T) {
		f := newFixture(t, stubNews{{Source: "STF", Title: "Decisão", Link: "https://stf/1"}})

		rec := httptest.NewRecorder()
		f.h.ListNews(rec, httptest.NewRequest(http.MethodGet, "/noticias", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var out []models.NewsItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 1)
		require.Equal(t, "STF", out[0].Source)
	})

	t.Run("all sources failed", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := httptest.NewRecorder()
		f.h.ListNews(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestAPIGreetingAndAdminRedirect(t *testing.T) {
	f := newFixture(t, nil)

	rec := httptest.NewRecorder()
	f.h.APIGreeting(rec, httptest.NewRequest(http.MethodGet, "/api", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, msgAPIGreeting, decodeMsg(t, rec))

	rec = httptest.NewRecorder()
	f.h.AdminRedirect(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, AdminHome, rec.Header().Get("Location"))
}

func TestNew_Defaults(t *testing.T) {
	h := New(nil, nil, nil, CookieOptions{})
	require.Equal(t, "token", h.Cookie.Name)
	require.Equal(t, http.SameSiteLaxMode, h.Cookie.SameSite)
}
