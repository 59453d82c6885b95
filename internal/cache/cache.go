// cache — Redis-кэш списка последних статей.
package cache

//go:generate mockgen -source=cache.go -destination=../../mocks/cache.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/redis/go-redis/v9"
)

// ArticlesCache — минимальный контракт кэша списка статей.
//
// Списки хранятся по поколениям. Читатель берёт поколение до запроса в БД
// и пишет результат в то же поколение: список, прочитанный до записи,
// после Invalidate уже никому не отдаётся.
type ArticlesCache interface {
	// Generation возвращает текущее поколение кэша.
	Generation(ctx context.Context) (int64, error)
	// Get возвращает закэшированный список поколения gen и признак его наличия.
	Get(ctx context.Context, gen, limit int64) ([]models.Article, bool, error)
	// Set сохраняет список в поколение gen с TTL кэша.
	Set(ctx context.Context, gen, limit int64, articles []models.Article) error
	// Invalidate начинает новое поколение и удаляет старые списки.
	Invalidate(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

const (
	defaultPrefix = "cms:articles:list:"
	defaultGenKey = "cms:articles:gen"
)

type redisCache struct {
	rdb    *redis.Client
	prefix string
	genKey string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (ArticlesCache, error) {
	const op = "cache/NewRedisCache"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &redisCache{rdb: rdb, prefix: defaultPrefix, genKey: defaultGenKey, ttl: ttl}, nil
}

func (c *redisCache) key(gen, limit int64) string {
	return c.prefix + strconv.FormatInt(gen, 10) + ":" + strconv.FormatInt(limit, 10)
}

// Отсутствующий счётчик — нулевое поколение.
func (c *redisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return gen, err
}

// Храним как JSON-строку: список маленький и читается целиком.
func (c *redisCache) Get(ctx context.Context, gen, limit int64) ([]models.Article, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(gen, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var out []models.Article
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, err
	}

	return out, true, nil
}

func (c *redisCache) Set(ctx context.Context, gen, limit int64, articles []models.Article) error {
	if articles == nil {
		articles = []models.Article{}
	}

	raw, err := json.Marshal(articles)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(gen, limit), raw, c.ttl).Err()
}

// Invalidate сначала сдвигает поколение: опоздавший Set старого поколения
// попадёт в ключ, который больше не читается, и истечёт по TTL.
func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, c.genKey).Err(); err != nil {
		return err
	}

	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
