package validator

import (
	"testing"
	"time"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	}))
}

func TestValidateInput(t *testing.T) {
	v := newTestValidator()
	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	tests := []struct {
		name    string
		input   *model.BookingInput
		wantErr bool
	}{
		{
			name: "valid input",
			input: &model.BookingInput{
				RoomID:   "64a0000000000000000000a1",
				CheckIn:  checkIn,
				CheckOut: checkOut,
				Guests:   2,
			},
			wantErr: false,
		},
		{
			name: "guests omitted",
			input: &model.BookingInput{
				RoomID:   "64a0000000000000000000a1",
				CheckIn:  checkIn,
				CheckOut: checkOut,
			},
			wantErr: false,
		},
		{
			name: "missing room id",
			input: &model.BookingInput{
				CheckIn:  checkIn,
				CheckOut: checkOut,
			},
			wantErr: true,
		},
		{
			name: "malformed room id",
			input: &model.BookingInput{
				RoomID:   "not-an-object-id",
				CheckIn:  checkIn,
				CheckOut: checkOut,
			},
			wantErr: true,
		},
		{
			name: "missing check-in",
			input: &model.BookingInput{
				RoomID:   "64a0000000000000000000a1",
				CheckOut: checkOut,
			},
			wantErr: true,
		},
		{
			name: "zero guests is treated as omitted",
			input: &model.BookingInput{
				RoomID:   "64a0000000000000000000a1",
				CheckIn:  checkIn,
				CheckOut: checkOut,
				Guests:   0,
			},
			wantErr: false,
		},
		{
			name: "negative guests",
			input: &model.BookingInput{
				RoomID:   "64a0000000000000000000a1",
				CheckIn:  checkIn,
				CheckOut: checkOut,
				Guests:   -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInput(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		input   *model.ReviewInput
		wantErr bool
	}{
		{"valid review", &model.ReviewInput{Rating: 4, Comment: "clean and quiet"}, false},
		{"rating too low", &model.ReviewInput{Rating: 0, Comment: "bad"}, true},
		{"rating too high", &model.ReviewInput{Rating: 6, Comment: "too good"}, true},
		{"empty comment", &model.ReviewInput{Rating: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateReview(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
