package handlers

import (
	"net/http"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
)

// Старые страницы сайта (/artigos, /postArt, /noticias) читают документы
// с португальскими именами полей: artigo._id, artigo.titulo, noticia.fonte.

type artigo struct {
	ID       string    `json:"_id"`
	Titulo   string    `json:"titulo"`
	Conteudo string    `json:"conteudo"`
	Autor    string    `json:"autor"`
	Data     time.Time `json:"data"`
	PDF      string    `json:"pdf,omitempty"`
}

type artigoResponse struct {
	Msg    string  `json:"msg"`
	Artigo *artigo `json:"artigo"`
}

type noticia struct {
	Fonte  string `json:"fonte"`
	Titulo string `json:"titulo"`
	Link   string `json:"link"`
	Data   string `json:"data"`
	Resumo string `json:"resumo"`
}

func toArtigo(a *models.Article) *artigo {
	if a == nil {
		return nil
	}

	return &artigo{
		ID:       a.ID,
		Titulo:   a.Title,
		Conteudo: a.Body,
		Autor:    a.Author,
		Data:     a.PublishDate,
		PDF:      a.PDFPath,
	}
}

// legacyView — представление статей для старых путей.
var legacyView = articleView{
	list: func(list []models.Article) any {
		out := make([]*artigo, 0, len(list))
		for i := range list {
			out = append(out, toArtigo(&list[i]))
		}
		return out
	},
	one: func(a *models.Article) any { return toArtigo(a) },
	saved: func(msg string, a *models.Article) any {
		return artigoResponse{Msg: msg, Artigo: toArtigo(a)}
	},
}

// ListArtigos — GET /artigos.
func (h *Handlers) ListArtigos(w http.ResponseWriter, r *http.Request) {
	h.listArticles(w, r, legacyView)
}

// GetArtigo — GET /artigos/{id}.
func (h *Handlers) GetArtigo(w http.ResponseWriter, r *http.Request) {
	h.getArticle(w, r, legacyView)
}

// CreateArtigo — POST /postArt.
func (h *Handlers) CreateArtigo(w http.ResponseWriter, r *http.Request) {
	h.createArticle(w, r, legacyView)
}

// UpdateArtigo — PUT /artigos/{id}.
func (h *Handlers) UpdateArtigo(w http.ResponseWriter, r *http.Request) {
	h.updateArticle(w, r, legacyView)
}

// ListNoticias — GET /noticias.
func (h *Handlers) ListNoticias(w http.ResponseWriter, r *http.Request) {
	items := h.News.Latest(r.Context())

	out := make([]noticia, 0, len(items))
	for _, it := range items {
		out = append(out, noticia{
			Fonte:  it.Source,
			Titulo: it.Title,
			Link:   it.Link,
			Data:   it.PublishedAt,
			Resumo: it.Summary,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
