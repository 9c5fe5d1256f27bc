package service

import (
	"context"
	"errors"
	"sync"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	roomserrors "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/errors"
	"github.com/AnshuShetty/HotelManagementBackend/internal/rooms/repository"
	"github.com/AnshuShetty/HotelManagementBackend/internal/rooms/validator"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/sanitizer"
)

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id string, updates *model.RoomUpdate) error
	ListReviews(ctx context.Context, id string) ([]model.Review, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return err
	}

	s.applyDefaults(room)
	s.sanitize(room)
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateNumber) {
			return apperrors.Conflict("Room number already exists")
		}
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created", "id", room.ID, "number", room.Number, "type", room.Type)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Room, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, activeOnly)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, activeOnly, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, id string, updates *model.RoomUpdate) error {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Internal("Failed to check room existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeRoomUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Room validation failed", "id", id, "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated", "id", id)
	return nil
}

func (s *roomService) ListReviews(ctx context.Context, id string) ([]model.Review, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.Reviews == nil {
		return []model.Review{}, nil
	}
	return room.Reviews, nil
}

// --- Helpers ---

func (s *roomService) applyDefaults(room *model.Room) {
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if room.Images == nil {
		room.Images = []string{}
	}
	if room.Reviews == nil {
		room.Reviews = []model.Review{}
	}
	room.RecomputeAggregates()
}

func (s *roomService) sanitize(room *model.Room) {
	room.Amenities = sanitizer.NormalizeAmenities(room.Amenities)
	room.Images = sanitizer.NormalizeImages(room.Images)
}

func (s *roomService) mergeRoomUpdates(existing *model.Room, updates *model.RoomUpdate) *model.Room {
	merged := *existing

	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.PricePerNight != nil {
		merged.PricePerNight = *updates.PricePerNight
	}
	if updates.Amenities != nil {
		merged.Amenities = *updates.Amenities
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	return &merged
}
