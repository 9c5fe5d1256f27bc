package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	roomserrors "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	mongotx "github.com/AnshuShetty/HotelManagementBackend/pkg/db/mongo"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

const (
	CollectionName = "Rooms"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error)
	SetReviews(ctx context.Context, id string, reviews []model.Review, averageRating float64, totalReviews int) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoRoomRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// Create inserts the room. A unique index on number surfaces duplicates as
// ErrDuplicateNumber.
func (r *mongoRoomRepository) Create(ctx context.Context, room *model.Room) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	room.CreatedAt = now
	room.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roomserrors.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

func (r *mongoRoomRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "number", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	return count, nil
}

func (r *mongoRoomRepository) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"type":            room.Type,
			"price_per_night": room.PricePerNight,
			"amenities":       room.Amenities,
			"images":          room.Images,
			"is_active":       room.IsActive,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, roomserrors.ErrNotFound
	}

	return result, nil
}

// SetReviews replaces the review list and its derived aggregates in one write.
// Callers recompute the aggregates from the full list before calling.
func (r *mongoRoomRepository) SetReviews(ctx context.Context, id string, reviews []model.Review, averageRating float64, totalReviews int) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"reviews":        reviews,
			"average_rating": averageRating,
			"total_reviews":  totalReviews,
			"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update room reviews: %w", err)
	}

	if result.MatchedCount == 0 {
		return roomserrors.ErrNotFound
	}

	return nil
}

func (r *mongoRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
