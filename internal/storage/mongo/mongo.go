// mongo реализует storage.Admins и storage.Articles поверх MongoDB.
//
// Имена коллекций и полей совпадают со схемой, которую сайт использовал до переезда
// (admins: nome/username/ativo, artigos: titulo/conteudo/autor/data/pdf), поэтому
// существующие документы читаются без миграции. Новые поля (password_hash, аудит)
// добавляются рядом.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	adminsCollection   = "admins"
	articlesCollection = "artigos"
	defaultDBName      = "BarruecoAdmin"
)

// Mongo — тонкий адаптер подключения и коллекций MongoDB.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	admins   *mongodriver.Collection
	articles *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение и создаёт индексы.
func New(ctx context.Context, uri string) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(uri))

	m := &Mongo{
		client:   cli,
		db:       db,
		admins:   db.Collection(adminsCollection),
		articles: db.Collection(articlesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping проверяет доступность primary (для /healthz).
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы:
//   - admins: уникальный username;
//   - artigos: data(desc) для выдачи последних статей.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.admins.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("username_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure admins indexes: %w", err)
	}

	_, err = m.articles.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "data", Value: -1}},
		Options: options.Index().SetName("data_desc"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure articles indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя БД из пути URI; если его нет — defaultDBName.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

var (
	_ storage.Admins   = (*Mongo)(nil)
	_ storage.Articles = (*Mongo)(nil)
)
