package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// articleDocument — документ коллекции artigos.
// pdf хранится как null, если вложения нет.
type articleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"titulo"`
	Body      string             `bson:"conteudo"`
	Author    string             `bson:"autor"`
	Date      time.Time          `bson:"data"`
	PDF       *string            `bson:"pdf"`
	CreatedBy string             `bson:"created_by,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toArticleDocument(a models.Article) articleDocument {
	doc := articleDocument{
		Title:     a.Title,
		Body:      a.Body,
		Author:    a.Author,
		Date:      toMS(a.PublishDate),
		CreatedBy: a.CreatedBy,
		UpdatedBy: a.UpdatedBy,
		CreatedAt: toMS(a.CreatedAt),
	}

	if a.PDFPath != "" {
		p := a.PDFPath
		doc.PDF = &p
	}

	if a.UpdatedAt != nil {
		u := toMS(*a.UpdatedAt)
		doc.UpdatedAt = &u
	}

	return doc
}

func (d articleDocument) toModel() models.Article {
	a := models.Article{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Body:        d.Body,
		Author:      d.Author,
		PublishDate: d.Date.UTC(),
		CreatedBy:   d.CreatedBy,
		UpdatedBy:   d.UpdatedBy,
		CreatedAt:   d.CreatedAt.UTC(),
	}

	// Старые документы не имеют created_at — берём время из ObjectID.
	if a.CreatedAt.IsZero() && !d.ID.IsZero() {
		a.CreatedAt = d.ID.Timestamp().UTC()
	}

	if d.PDF != nil {
		a.PDFPath = *d.PDF
	}

	if d.UpdatedAt != nil {
		u := d.UpdatedAt.UTC()
		a.UpdatedAt = &u
	}

	return a
}

func parseOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidID
	}

	return oid, nil
}

// CreateArticle вставляет статью; ID генерирует драйвер.
func (m *Mongo) CreateArticle(ctx context.Context, article models.Article) (*models.Article, error) {
	const op = "storage/mongo/CreateArticle"

	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	doc := toArticleDocument(article)

	res, err := m.articles.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()

	return &out, nil
}

// ArticleByID возвращает статью по идентификатору.
func (m *Mongo) ArticleByID(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage/mongo/ArticleByID"

	oid, err := parseOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc articleDocument
	if err := m.articles.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// ListArticles возвращает последние статьи: data DESC, затем _id DESC для стабильного порядка.
func (m *Mongo) ListArticles(ctx context.Context, limit int64) ([]models.Article, error) {
	const op = "storage/mongo/ListArticles"

	if limit <= 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "data", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := m.articles.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Article, 0, limit)
	for cur.Next(ctx) {
		var doc articleDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		out = append(out, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// UpdateArticle выставляет только переданные поля и возвращает документ после обновления.
func (m *Mongo) UpdateArticle(ctx context.Context, id string, upd models.ArticleUpdate) (*models.Article, error) {
	const op = "storage/mongo/UpdateArticle"

	oid, err := parseOID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	set := bson.D{}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "titulo", Value: *upd.Title})
	}
	if upd.Body != nil {
		set = append(set, bson.E{Key: "conteudo", Value: *upd.Body})
	}
	if upd.Author != nil {
		set = append(set, bson.E{Key: "autor", Value: *upd.Author})
	}
	if upd.PublishDate != nil {
		set = append(set, bson.E{Key: "data", Value: toMS(*upd.PublishDate)})
	}
	if upd.PDFPath != nil {
		var pdf any
		if *upd.PDFPath != "" {
			pdf = *upd.PDFPath
		}
		set = append(set, bson.E{Key: "pdf", Value: pdf})
	}
	if upd.UpdatedBy != "" {
		set = append(set, bson.E{Key: "updated_by", Value: upd.UpdatedBy})
	}

	updatedAt := upd.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	set = append(set, bson.E{Key: "updated_at", Value: toMS(updatedAt)})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc articleDocument
	err = m.articles.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// DeleteArticle удаляет статью по идентификатору.
func (m *Mongo) DeleteArticle(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteArticle"

	oid, err := parseOID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := m.articles.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
