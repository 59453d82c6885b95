package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-lawfirm-cms/internal/models"
	"github.com/pribylovaa/go-lawfirm-cms/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// adminDocument — документ коллекции admins.
type adminDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"nome"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Active       bool               `bson:"ativo"`
}

func (d adminDocument) toModel() *models.Admin {
	return &models.Admin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Active:       d.Active,
	}
}

// AdminByUsername ищет администратора по username.
func (m *Mongo) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage/mongo/AdminByUsername"

	var doc adminDocument
	err := m.admins.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

// UpsertAdmin создаёт администратора или перезаписывает имя/хэш/флаг существующего.
func (m *Mongo) UpsertAdmin(ctx context.Context, admin models.Admin) (*models.Admin, error) {
	const op = "storage/mongo/UpsertAdmin"

	admin.Username = strings.TrimSpace(admin.Username)
	if admin.Username == "" || admin.PasswordHash == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "nome", Value: admin.Name},
		{Key: "password_hash", Value: admin.PasswordHash},
		{Key: "ativo", Value: admin.Active},
	}}}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc adminDocument
	err := m.admins.FindOneAndUpdate(ctx, bson.D{{Key: "username", Value: admin.Username}}, update, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}
