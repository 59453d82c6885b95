// news собирает свежие юридические новости из внешних RSS/Atom-лент.
// Ленты опрашиваются последовательно на каждый запрос, результат не сохраняется.
package news

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
)

// Fetcher загружает и разбирает одну ленту.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// FeedFetcher — Fetcher поверх gofeed с собственным HTTP-клиентом.
type FeedFetcher struct {
	parser *gofeed.Parser
}

// NewFeedFetcher создаёт загрузчик. client == nil — клиент с таймаутом 15s.
func NewFeedFetcher(client *http.Client, userAgent string) *FeedFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	p := gofeed.NewParser()
	p.Client = client
	if userAgent != "" {
		p.UserAgent = userAgent
	}

	return &FeedFetcher{parser: p}
}

// Fetch скачивает ленту; не-2xx ответы gofeed возвращает как gofeed.HTTPError.
func (f *FeedFetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	const op = "news/feed/Fetch"

	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return feed, nil
}

var (
	strictPolicy = bluemonday.StrictPolicy()
	reSpaces     = regexp.MustCompile(`\s+`)
)

// toNewsItem переводит запись ленты в NewsItem.
func toNewsItem(source string, it *gofeed.Item) models.NewsItem {
	return models.NewsItem{
		Source:      source,
		Title:       strings.TrimSpace(it.Title),
		Link:        strings.TrimSpace(it.Link),
		PublishedAt: publishedAt(it),
		Summary:     summary(it),
	}
}

// publishedAt: исходная строка даты, иначе RFC3339 разобранной даты публикации
// или обновления, иначе "".
func publishedAt(it *gofeed.Item) string {
	if s := strings.TrimSpace(it.Published); s != "" {
		return s
	}

	if it.PublishedParsed != nil {
		return it.PublishedParsed.UTC().Format(time.RFC3339)
	}

	if it.UpdatedParsed != nil {
		return it.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	return strings.TrimSpace(it.Updated)
}

// summary: текст без HTML из content/description, иначе сырой content, иначе "".
func summary(it *gofeed.Item) string {
	for _, raw := range []string{it.Content, it.Description} {
		if s := plainText(raw); s != "" {
			return s
		}
	}

	return strings.TrimSpace(it.Content)
}

func plainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := html.UnescapeString(strictPolicy.Sanitize(raw))
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}
