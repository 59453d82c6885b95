package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-lawfirm-cms/internal/http/errors"
	"github.com/pribylovaa/go-lawfirm-cms/internal/http/middleware"
	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
)

const (
	msgArticleCreated = "Artigo publicado com sucesso!"
	msgArticleUpdated = "Artigo atualizado com sucesso"
	msgArticleDeleted = "Artigo deletado com sucesso!"
)

// articleView кодирует статьи в тело ответа.
type articleView struct {
	list  func([]models.Article) any
	one   func(*models.Article) any
	saved func(msg string, a *models.Article) any
}

var defaultView = articleView{
	list: func(list []models.Article) any { return list },
	one:  func(a *models.Article) any { return a },
	saved: func(msg string, a *models.Article) any {
		return articleResponse{Msg: msg, Article: a}
	},
}

func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	h.listArticles(w, r, defaultView)
}

func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	h.getArticle(w, r, defaultView)
}

func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	h.createArticle(w, r, defaultView)
}

func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	h.updateArticle(w, r, defaultView)
}

func (h *Handlers) listArticles(w http.ResponseWriter, r *http.Request, view articleView) {
	list, err := h.Articles.ListArticles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view.list(list))
}

func (h *Handlers) getArticle(w http.ResponseWriter, r *http.Request, view articleView) {
	article, err := h.Articles.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view.one(article))
}

func (h *Handlers) createArticle(w http.ResponseWriter, r *http.Request, view articleView) {
	form, err := h.parseArticleForm(w, r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	defer form.close()

	adminID, _ := middleware.AdminID(r.Context())

	article, err := h.Articles.CreateArticle(r.Context(), adminID, service.ArticleInput{
		Title:  deref(form.title),
		Body:   deref(form.body),
		Author: deref(form.author),
		Date:   deref(form.date),
		PDF:    form.pdf,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, view.saved(msgArticleCreated, article))
}

func (h *Handlers) updateArticle(w http.ResponseWriter, r *http.Request, view articleView) {
	form, err := h.parseArticleForm(w, r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	defer form.close()

	adminID, _ := middleware.AdminID(r.Context())

	article, err := h.Articles.UpdateArticle(r.Context(), adminID, chi.URLParam(r, "id"), service.ArticlePatch{
		Title:  form.title,
		Body:   form.body,
		Author: form.author,
		Date:   form.date,
		PDF:    form.pdf,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view.saved(msgArticleUpdated, article))
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.Articles.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, msgResponse{Msg: msgArticleDeleted})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
