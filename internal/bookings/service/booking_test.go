package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/validator"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	roomserrors "github.com/AnshuShetty/HotelManagementBackend/internal/rooms/errors"
	mongotx "github.com/AnshuShetty/HotelManagementBackend/pkg/db/mongo"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

const (
	testRoomID    = "64a0000000000000000000a1"
	testUserID    = "64a0000000000000000000b1"
	testBookingID = "64a0000000000000000000c1"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc               func(ctx context.Context, booking *model.Booking) error
	findByIDFunc             func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc              func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc                func(ctx context.Context) (int64, error)
	findByUserFunc           func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	countByUserFunc          func(ctx context.Context, userID string) (int64, error)
	findConfirmedByRoomFunc  func(ctx context.Context, roomID string) ([]*model.Booking, error)
	countConfirmedByRoomFunc func(ctx context.Context, roomID string) (int64, error)
	updateStatusFunc         func(ctx context.Context, id string, status model.Status) error
	setReviewFunc            func(ctx context.Context, id string, review *model.Review) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.countByUserFunc != nil {
		return m.countByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindConfirmedByRoom(ctx context.Context, roomID string) ([]*model.Booking, error) {
	if m.findConfirmedByRoomFunc != nil {
		return m.findConfirmedByRoomFunc(ctx, roomID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountConfirmedByRoom(ctx context.Context, roomID string) (int64, error) {
	if m.countConfirmedByRoomFunc != nil {
		return m.countConfirmedByRoomFunc(ctx, roomID)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) SetReview(ctx context.Context, id string, review *model.Review) error {
	if m.setReviewFunc != nil {
		return m.setReviewFunc(ctx, id, review)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockRoomLockRepository struct {
	createFunc func(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
	created    []string
	deleted    []string
}

func (m *mockRoomLockRepository) Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	m.created = append(m.created, lock.ID)
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockRoomLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

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
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
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

type mockPublisher struct {
	created   []*model.Booking
	cancelled []*model.Booking
}

func (m *mockPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	m.created = append(m.created, booking)
}

func (m *mockPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	m.cancelled = append(m.cancelled, booking)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		CheckInHour:    14,
		CheckOutHour:   11,
		BookingLockTTL: 10 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, lockRepo *mockRoomLockRepository, roomRepo *mockRoomRepository, publisher *mockPublisher) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		validator: validator.NewBookingValidator(cfg.Log),
		publisher: publisher,
		cfg:       cfg,
	}
}

func userContext(id, role string) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{ID: id, Role: role})
}

func activeRoom() *model.Room {
	return &model.Room{
		ID:            testRoomID,
		Number:        101,
		Type:          model.RoomTypeDouble,
		PricePerNight: 150,
		IsActive:      true,
	}
}

func bookingInput(checkIn, checkOut time.Time) *model.BookingInput {
	return &model.BookingInput{
		RoomID:   testRoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   2,
	}
}

func roomNotFoundErr() error {
	return roomserrors.ErrNotFound
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

func TestBook_ComputesNightsAndPrice(t *testing.T) {
	repo := &mockBookingRepository{}
	lockRepo := &mockRoomLockRepository{}
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return activeRoom(), nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(repo, lockRepo, roomRepo, publisher)

	// Jan 10 to Jan 12: two nights regardless of the times supplied.
	in := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	out := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)

	booking, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(in, out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalPrice != 300 {
		t.Errorf("expected total price 300 (2 nights x 150), got %v", booking.TotalPrice)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected stored status CONFIRMED, got %s", booking.Status)
	}
	if booking.CheckIn.Hour() != 14 {
		t.Errorf("expected check-in normalized to 14:00, got %d:00", booking.CheckIn.Hour())
	}
	if booking.CheckOut.Hour() != 11 {
		t.Errorf("expected check-out normalized to 11:00, got %d:00", booking.CheckOut.Hour())
	}
	if booking.UserID != testUserID {
		t.Errorf("expected booking owner %s, got %s", testUserID, booking.UserID)
	}
	if len(publisher.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(publisher.created))
	}
}

func TestBook_RequiresAuthentication(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockRoomRepository{}, &mockPublisher{})

	in := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	_, err := svc.Book(context.Background(), bookingInput(in, out))
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestBook_InvalidDateRange(t *testing.T) {
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return activeRoom(), nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, roomRepo, &mockPublisher{})

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{
			name:     "check-out before check-in",
			checkIn:  time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "same day",
			checkIn:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(tt.checkIn, tt.checkOut))
			assertCode(t, err, apperrors.CodeInvalidDateRange)
		})
	}
}

func TestBook_RoomNotFoundVsUnavailable(t *testing.T) {
	t.Run("missing room", func(t *testing.T) {
		roomRepo := &mockRoomRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
				return nil, roomNotFoundErr()
			},
		}
		svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, roomRepo, &mockPublisher{})

		in := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(in, in.AddDate(0, 0, 1)))
		assertCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("inactive room", func(t *testing.T) {
		roomRepo := &mockRoomRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
				room := activeRoom()
				room.IsActive = false
				return room, nil
			},
		}
		svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, roomRepo, &mockPublisher{})

		in := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(in, in.AddDate(0, 0, 1)))
		assertCode(t, err, apperrors.CodeRoomUnavailable)
	})
}

func TestBook_RejectsOverlap(t *testing.T) {
	existingIn := time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC)
	existingOut := time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC)

	repo := &mockBookingRepository{
		findConfirmedByRoomFunc: func(ctx context.Context, roomID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: testBookingID, RoomID: roomID, CheckIn: existingIn, CheckOut: existingOut, Status: model.StatusConfirmed},
			}, nil
		},
	}
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return activeRoom(), nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(repo, &mockRoomLockRepository{}, roomRepo, publisher)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantCode string
	}{
		{
			name:     "fully inside existing stay",
			checkIn:  time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
			wantCode: apperrors.CodeRoomAlreadyBooked,
		},
		{
			name:     "straddles the start",
			checkIn:  time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			wantCode: apperrors.CodeRoomAlreadyBooked,
		},
		{
			name:     "back-to-back after existing checkout is admitted",
			checkIn:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC),
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(tt.checkIn, tt.checkOut))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected admission, got error: %v", err)
				}
				return
			}
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestBook_LockHeldByAnotherRequest(t *testing.T) {
	lockRepo := &mockRoomLockRepository{
		createFunc: func(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		},
	}
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return activeRoom(), nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, lockRepo, roomRepo, &mockPublisher{})

	in := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(in, in.AddDate(0, 0, 1)))
	assertCode(t, err, apperrors.CodeConflict)
}

func TestBook_ReleasesLockAfterAdmission(t *testing.T) {
	lockRepo := &mockRoomLockRepository{}
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return activeRoom(), nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, lockRepo, roomRepo, &mockPublisher{})

	in := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Book(userContext(testUserID, model.RoleUser), bookingInput(in, in.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLock := "room_lock_" + testRoomID
	if len(lockRepo.created) != 1 || lockRepo.created[0] != wantLock {
		t.Errorf("expected lock %s created once, got %v", wantLock, lockRepo.created)
	}
	if len(lockRepo.deleted) != 1 || lockRepo.deleted[0] != wantLock {
		t.Errorf("expected lock %s released once, got %v", wantLock, lockRepo.deleted)
	}
}

func TestCancel_IdempotentAndOwnerChecked(t *testing.T) {
	stored := &model.Booking{
		ID:       testBookingID,
		UserID:   testUserID,
		RoomID:   testRoomID,
		CheckIn:  time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 1, 12, 11, 0, 0, 0, time.UTC),
		Status:   model.StatusConfirmed,
	}

	var statusWrites int
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *stored
			return &b, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status model.Status) error {
			statusWrites++
			stored.Status = status
			return nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockRoomRepository{}, publisher)

	t.Run("stranger is rejected", func(t *testing.T) {
		err := svc.Cancel(userContext("64a0000000000000000000ff", model.RoleUser), testBookingID)
		assertCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("owner cancels", func(t *testing.T) {
		if err := svc.Cancel(userContext(testUserID, model.RoleUser), testBookingID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if statusWrites != 1 {
			t.Errorf("expected 1 status write, got %d", statusWrites)
		}
		if len(publisher.cancelled) != 1 {
			t.Errorf("expected 1 cancelled event, got %d", len(publisher.cancelled))
		}
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		if err := svc.Cancel(userContext(testUserID, model.RoleUser), testBookingID); err != nil {
			t.Fatalf("expected idempotent success, got: %v", err)
		}
		if statusWrites != 1 {
			t.Errorf("expected no additional status write, got %d", statusWrites)
		}
		if len(publisher.cancelled) != 1 {
			t.Errorf("expected no additional cancelled event, got %d", len(publisher.cancelled))
		}
	})

	t.Run("admin cancels someone else's booking", func(t *testing.T) {
		stored.Status = model.StatusConfirmed
		if err := svc.Cancel(userContext("64a0000000000000000000ee", model.RoleAdmin), testBookingID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAttachReview_OnePerBooking(t *testing.T) {
	stored := &model.Booking{
		ID:       testBookingID,
		UserID:   testUserID,
		RoomID:   testRoomID,
		CheckIn:  time.Date(2026, 1, 2, 14, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC),
		Status:   model.StatusConfirmed,
	}
	room := activeRoom()

	var roomWrite struct {
		avg   float64
		total int
		count int
	}
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *stored
			return &b, nil
		},
		setReviewFunc: func(ctx context.Context, id string, review *model.Review) error {
			stored.Review = review
			return nil
		},
	}
	roomRepo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			r := *room
			return &r, nil
		},
		setReviewsFunc: func(ctx context.Context, id string, reviews []model.Review, averageRating float64, totalReviews int) error {
			room.Reviews = reviews
			room.AverageRating = averageRating
			room.TotalReviews = totalReviews
			roomWrite.avg = averageRating
			roomWrite.total = totalReviews
			roomWrite.count++
			return nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, roomRepo, &mockPublisher{})

	t.Run("stranger cannot review", func(t *testing.T) {
		_, err := svc.AttachReview(userContext("64a0000000000000000000ff", model.RoleUser), testBookingID, &model.ReviewInput{Rating: 5, Comment: "great"})
		assertCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("first review lands on booking and room", func(t *testing.T) {
		review, err := svc.AttachReview(userContext(testUserID, model.RoleUser), testBookingID, &model.ReviewInput{Rating: 4, Comment: "  nice   stay "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if review.Comment != "nice stay" {
			t.Errorf("expected normalized comment, got %q", review.Comment)
		}
		if stored.Review == nil {
			t.Fatal("expected review attached to booking")
		}
		if roomWrite.count != 1 || roomWrite.total != 1 || roomWrite.avg != 4 {
			t.Errorf("expected room aggregates recomputed (total=1 avg=4), got total=%d avg=%v writes=%d",
				roomWrite.total, roomWrite.avg, roomWrite.count)
		}
	})

	t.Run("second review is rejected", func(t *testing.T) {
		_, err := svc.AttachReview(userContext(testUserID, model.RoleUser), testBookingID, &model.ReviewInput{Rating: 1, Comment: "again"})
		assertCode(t, err, apperrors.CodeReviewAlreadyExists)
		if roomWrite.count != 1 {
			t.Errorf("expected no additional room write, got %d", roomWrite.count)
		}
	})
}

func TestGetByID_ProjectsEffectiveStatus(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		stored   model.Status
		want     model.Status
	}{
		{"future stay", now.AddDate(0, 0, 2), now.AddDate(0, 0, 5), model.StatusConfirmed, model.StatusConfirmed},
		{"current stay", now.AddDate(0, 0, -1), now.AddDate(0, 0, 2), model.StatusConfirmed, model.StatusActive},
		{"past stay", now.AddDate(0, 0, -5), now.AddDate(0, 0, -2), model.StatusConfirmed, model.StatusCompleted},
		{"cancelled stays cancelled", now.AddDate(0, 0, -1), now.AddDate(0, 0, 2), model.StatusCancelled, model.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{
						ID:       testBookingID,
						UserID:   testUserID,
						RoomID:   testRoomID,
						CheckIn:  tt.checkIn,
						CheckOut: tt.checkOut,
						Status:   tt.stored,
					}, nil
				},
			}
			svc := newTestService(repo, &mockRoomLockRepository{}, &mockRoomRepository{}, &mockPublisher{})

			booking, err := svc.GetByID(userContext(testUserID, model.RoleUser), testBookingID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.EffectiveStatus != tt.want {
				t.Errorf("expected effective status %s, got %s", tt.want, booking.EffectiveStatus)
			}
		})
	}
}

func TestGetAll_RequiresAdmin(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockRoomRepository{}, &mockPublisher{})

	_, _, err := svc.GetAll(userContext(testUserID, model.RoleUser), 10, 0)
	assertCode(t, err, apperrors.CodeForbidden)

	_, _, err = svc.GetAll(context.Background(), 10, 0)
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestCountConfirmedForRoom(t *testing.T) {
	repo := &mockBookingRepository{
		countConfirmedByRoomFunc: func(ctx context.Context, roomID string) (int64, error) {
			return 3, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockRoomRepository{}, &mockPublisher{})

	count, err := svc.CountConfirmedForRoom(context.Background(), testRoomID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}
