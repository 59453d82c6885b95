package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/config"
	"github.com/pribylovaa/go-lawfirm-cms/internal/metrics"
	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/pkg/log"
)

// Aggregator опрашивает источники по порядку и склеивает первые K записей каждого.
type Aggregator struct {
	sources []config.FeedSource
	perFeed int
	timeout time.Duration
	fetcher Fetcher
	metrics *metrics.Metrics
}

// New создаёт агрегатор. Нулевые limit/timeout заменяются значениями по умолчанию (6, 10s).
func New(cfg config.NewsConfig, fetcher Fetcher, m *metrics.Metrics) *Aggregator {
	perFeed := cfg.ItemsPerSource
	if perFeed <= 0 {
		perFeed = 6
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if fetcher == nil {
		fetcher = NewFeedFetcher(nil, cfg.UserAgent)
	}

	sources := append([]config.FeedSource(nil), cfg.Sources...)

	return &Aggregator{
		sources: sources,
		perFeed: perFeed,
		timeout: timeout,
		fetcher: fetcher,
		metrics: m,
	}
}

// Latest возвращает новости всех источников. Упавший источник пропускается;
// если упали все, результат — пустой срез, не nil.
func (a *Aggregator) Latest(ctx context.Context) []models.NewsItem {
	const op = "news/aggregator/Latest"

	lg := log.From(ctx)
	out := make([]models.NewsItem, 0, len(a.sources)*a.perFeed)

	for _, src := range a.sources {
		if ctx.Err() != nil {
			lg.Warn("news_aborted",
				slog.String("op", op),
				slog.String("err", ctx.Err().Error()),
			)
			break
		}

		items, err := a.fetchSource(ctx, src)
		if err != nil {
			a.metrics.ObserveFeed(src.Name, metrics.ResultError)
			lg.Warn("news_source_failed",
				slog.String("op", op),
				slog.String("source", src.Name),
				slog.String("url", src.URL),
				slog.String("err", err.Error()),
			)
			continue
		}

		if len(items) == 0 {
			a.metrics.ObserveFeed(src.Name, metrics.ResultEmpty)
			lg.Warn("news_source_empty",
				slog.String("op", op),
				slog.String("source", src.Name),
			)
			continue
		}

		a.metrics.ObserveFeed(src.Name, metrics.ResultOK)
		out = append(out, items...)
	}

	lg.Debug("news_collected",
		slog.String("op", op),
		slog.Int("items", len(out)),
	)

	return out
}

func (a *Aggregator) fetchSource(ctx context.Context, src config.FeedSource) ([]models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	feed, err := a.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	n := len(feed.Items)
	if n > a.perFeed {
		n = a.perFeed
	}

	items := make([]models.NewsItem, 0, n)
	for _, it := range feed.Items[:n] {
		if it == nil {
			continue
		}
		items = append(items, toNewsItem(src.Name, it))
	}

	return items, nil
}
