package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	bookingserrors "github.com/AnshuShetty/HotelManagementBackend/internal/bookings/errors"
	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/events"
	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/repository"
	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/validator"
	roomserrors "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/errors"
	roomsrepository "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/repository"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/sanitizer"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/stay"
)

type BookingService interface {
	Book(ctx context.Context, input *model.BookingInput) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	MyBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Cancel(ctx context.Context, id string) error
	AttachReview(ctx context.Context, bookingID string, input *model.ReviewInput) (*model.Review, error)
	CountConfirmedForRoom(ctx context.Context, roomID string) (int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	roomRepo  roomsrepository.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	roomRepo roomsrepository.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Book admits a reservation. The overlap check and the insert run inside a
// transaction while holding the room's advisory lock, so two requests for the
// same room cannot both pass the check.
func (s *bookingService) Book(ctx context.Context, input *model.BookingInput) (*model.Booking, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateInput(input); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	checkIn, checkOut := stay.Normalize(input.CheckIn, input.CheckOut, s.cfg.CheckInHour, s.cfg.CheckOutHour)
	nights := stay.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, apperrors.InvalidDateRange("Check-out date must be after check-in date")
	}

	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", input.RoomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	if !room.IsActive {
		return nil, apperrors.RoomUnavailable(room.ID)
	}

	guests := input.Guests
	if guests <= 0 {
		guests = 1
	}

	booking := &model.Booking{
		UserID:     identity.ID,
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: float64(nights) * room.PricePerNight,
		Status:     model.StatusConfirmed,
	}

	lockID, err := s.acquireRoomLock(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", room.ID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"user_id", booking.UserID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
		"nights", nights,
		"total_price", booking.TotalPrice,
	)

	s.publisher.BookingCreated(ctx, booking)

	s.project(booking, time.Now())
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != identity.ID && !identity.IsAdmin() {
		return nil, apperrors.Forbidden("Cannot access another user's booking")
	}

	s.project(booking, time.Now())
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	now := time.Now()
	for _, booking := range bookings {
		s.project(booking, now)
	}

	return bookings, count, nil
}

func (s *bookingService) MyBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, identity.ID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count user bookings", "user_id", identity.ID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, identity.ID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list user bookings", "user_id", identity.ID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	now := time.Now()
	for _, booking := range bookings {
		s.project(booking, now)
	}

	return bookings, count, nil
}

// Cancel marks the booking CANCELLED. Cancelling an already-cancelled booking
// is a no-op success: no write, no event.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return err
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != identity.ID && !identity.IsAdmin() {
		return apperrors.Forbidden("Cannot cancel another user's booking")
	}

	if booking.Status == model.StatusCancelled {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	booking.Status = model.StatusCancelled
	s.cfg.Log.Info("Booking cancelled", "id", id, "user_id", booking.UserID, "room_id", booking.RoomID)

	s.publisher.BookingCancelled(ctx, booking)
	return nil
}

// AttachReview writes the review to the booking and appends it to the room's
// review list in one transaction, then recomputes the room's rating summary
// from the full list. The room lock keeps concurrent review writes and
// admissions from interleaving.
func (s *bookingService) AttachReview(ctx context.Context, bookingID string, input *model.ReviewInput) (*model.Review, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateReview(input); err != nil {
		s.cfg.Log.Warn("Review validation failed", "booking_id", bookingID, "error", err)
		return nil, apperrors.Validation("Invalid review input", map[string]any{"error": err.Error()})
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != identity.ID {
		return nil, apperrors.Forbidden("Cannot review another user's booking")
	}
	if booking.Review != nil {
		return nil, apperrors.ReviewAlreadyExists(bookingID)
	}

	review := &model.Review{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    identity.ID,
		Rating:    input.Rating,
		Comment:   sanitizer.NormalizeComment(input.Comment),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	lockID, err := s.acquireRoomLock(ctx, booking.RoomID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Re-read under the transaction so a racing review cannot slip past
		// the earlier check.
		fresh, err := s.repo.FindByID(sessCtx, bookingID)
		if err != nil {
			return apperrors.Internal("Failed to re-read booking", err)
		}
		if fresh.Review != nil {
			return apperrors.ReviewAlreadyExists(bookingID)
		}

		if err := s.repo.SetReview(sessCtx, bookingID, review); err != nil {
			return apperrors.Internal("Failed to attach review to booking", err)
		}

		room, err := s.roomRepo.FindByID(sessCtx, booking.RoomID)
		if err != nil {
			return apperrors.Internal("Failed to re-read room", err)
		}
		room.Reviews = append(room.Reviews, *review)
		room.RecomputeAggregates()

		if err := s.roomRepo.SetReviews(sessCtx, room.ID, room.Reviews, room.AverageRating, room.TotalReviews); err != nil {
			return apperrors.Internal("Failed to update room reviews", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to attach review", "booking_id", bookingID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Review attached", "booking_id", bookingID, "room_id", booking.RoomID, "rating", review.Rating)
	return review, nil
}

func (s *bookingService) CountConfirmedForRoom(ctx context.Context, roomID string) (int64, error) {
	if roomID == "" {
		return 0, apperrors.InvalidInput("Room ID cannot be empty")
	}

	count, err := s.repo.CountConfirmedByRoom(ctx, roomID)
	if err != nil {
		s.cfg.Log.Error("Failed to count confirmed bookings", "room_id", roomID, "error", err)
		return 0, apperrors.Internal("Failed to count bookings", err)
	}

	return count, nil
}

// --- Helpers ---

func (s *bookingService) findBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) project(booking *model.Booking, now time.Time) {
	booking.EffectiveStatus = stay.EffectiveStatus(booking.Status, booking.CheckIn, booking.CheckOut, now)
}

func (s *bookingService) verifyAvailability(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindConfirmedByRoom(ctx, booking.RoomID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if stay.Overlaps(b.CheckIn, b.CheckOut, booking.CheckIn, booking.CheckOut) {
			return apperrors.RoomAlreadyBooked(booking.RoomID)
		}
	}
	return nil
}

// acquireRoomLock creates a per-room advisory lock so all admissions and
// review writes for one room serialize. Expires automatically in case the
// holder dies before releasing.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	lock := &model.RoomLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This room is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire room lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
