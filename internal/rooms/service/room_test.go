package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	roomserrors "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/errors"
	"github.com/AnshuShetty/HotelManagementBackend/internal/rooms/validator"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	mongotx "github.com/AnshuShetty/HotelManagementBackend/pkg/db/mongo"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

const testRoomID = "64a0000000000000000000a1"

type mockRoomRepository struct {
	createFunc     func(ctx context.Context, room *model.Room) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc    func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error)
	countFunc      func(ctx context.Context, activeOnly bool) (int64, error)
	updateFunc     func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error)
	setReviewsFunc func(ctx context.Context, id string, reviews []model.Review, averageRating float64, totalReviews int) error
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = testRoomID
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, roomserrors.ErrNotFound
}

func (m *mockRoomRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, activeOnly, limit, offset)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, activeOnly)
	}
	return 0, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockRoomRepository) SetReviews(ctx context.Context, id string, reviews []model.Review, averageRating float64, totalReviews int) error {
	if m.setReviewsFunc != nil {
		return m.setReviewsFunc(ctx, id, reviews, averageRating, totalReviews)
	}
	return nil
}

func (m *mockRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockRoomRepository) *roomService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
	return &roomService{
		repo:      repo,
		validator: validator.NewRoomValidator(cfg.Log),
		cfg:       cfg,
	}
}

func adminContext() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{ID: "64a0000000000000000000ee", Role: model.RoleAdmin})
}

func userContext() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{ID: "64a0000000000000000000b1", Role: model.RoleUser})
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func validRoom() *model.Room {
	return &model.Room{
		Number:        101,
		Type:          model.RoomTypeDouble,
		PricePerNight: 150,
		IsActive:      true,
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	if err := svc.Create(userContext(), validRoom()); err == nil {
		t.Fatal("expected forbidden error")
	} else {
		assertCode(t, err, apperrors.CodeForbidden)
	}

	if err := svc.Create(context.Background(), validRoom()); err == nil {
		t.Fatal("expected unauthorized error")
	} else {
		assertCode(t, err, apperrors.CodeUnauthorized)
	}

	if err := svc.Create(adminContext(), validRoom()); err != nil {
		t.Fatalf("unexpected error for admin: %v", err)
	}
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.Room) error {
			return roomserrors.ErrDuplicateNumber
		},
	}
	svc := newTestService(repo)

	err := svc.Create(adminContext(), validRoom())
	assertCode(t, err, apperrors.CodeConflict)
}

func TestCreate_SanitizesAmenities(t *testing.T) {
	var created *model.Room
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.Room) error {
			created = room
			room.ID = testRoomID
			return nil
		},
	}
	svc := newTestService(repo)

	room := validRoom()
	room.Amenities = []string{" WiFi ", "wifi", "Mini  Bar", ""}

	if err := svc.Create(adminContext(), room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"wifi", "mini bar"}
	if len(created.Amenities) != len(want) {
		t.Fatalf("expected amenities %v, got %v", want, created.Amenities)
	}
	for i, amenity := range want {
		if created.Amenities[i] != amenity {
			t.Errorf("expected amenity %q at %d, got %q", amenity, i, created.Amenities[i])
		}
	}
	if created.TotalReviews != 0 || created.AverageRating != 0 {
		t.Errorf("expected zeroed aggregates, got total=%d avg=%v", created.TotalReviews, created.AverageRating)
	}
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	existing := validRoom()
	existing.ID = testRoomID
	existing.Amenities = []string{"wifi"}

	var updated *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			r := *existing
			return &r, nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
			updated = room
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	newPrice := 200.0
	inactive := false
	err := svc.Update(adminContext(), testRoomID, &model.RoomUpdate{
		PricePerNight: &newPrice,
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.PricePerNight != 200 {
		t.Errorf("expected price 200, got %v", updated.PricePerNight)
	}
	if updated.IsActive {
		t.Error("expected room deactivated")
	}
	if updated.Type != model.RoomTypeDouble {
		t.Errorf("expected type unchanged, got %s", updated.Type)
	}
	if updated.Number != 101 {
		t.Errorf("expected number unchanged, got %d", updated.Number)
	}
	if len(updated.Amenities) != 1 || updated.Amenities[0] != "wifi" {
		t.Errorf("expected amenities unchanged, got %v", updated.Amenities)
	}
}

func TestUpdate_AdminOnlyAndMissingRoom(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	newPrice := 200.0
	update := &model.RoomUpdate{PricePerNight: &newPrice}

	err := svc.Update(userContext(), testRoomID, update)
	assertCode(t, err, apperrors.CodeForbidden)

	err = svc.Update(adminContext(), testRoomID, update)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestListReviews_EmptyIsNotNil(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			room := validRoom()
			room.ID = id
			return room, nil
		},
	}
	svc := newTestService(repo)

	reviews, err := svc.ListReviews(context.Background(), testRoomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviews == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(reviews) != 0 {
		t.Fatalf("expected no reviews, got %d", len(reviews))
	}
}

func TestGetAll_NormalizesPagination(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockRoomRepository{
		findAllFunc: func(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, error) {
			gotLimit = limit
			gotOffset = offset
			return []*model.Room{}, nil
		},
		countFunc: func(ctx context.Context, activeOnly bool) (int64, error) {
			return 0, nil
		},
	}
	svc := newTestService(repo)

	if _, _, err := svc.GetAll(context.Background(), true, -5, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != config.NormalizePaginationLimit(-5) {
		t.Errorf("expected normalized limit, got %d", gotLimit)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", gotOffset)
	}
}
