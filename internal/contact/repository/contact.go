package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

const (
	CollectionName = "Contact_messages"
)

type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}

type mongoContactRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoContactRepository(cfg *config.Config) ContactRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoContactRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoContactRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	message.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *mongoContactRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*model.ContactMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}

	return messages, nil
}

func (r *mongoContactRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	return count, nil
}
