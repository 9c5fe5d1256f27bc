package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestBookingErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"room unavailable", RoomUnavailable("room-1"), CodeRoomUnavailable, http.StatusConflict},
		{"invalid date range", InvalidDateRange("check-out before check-in"), CodeInvalidDateRange, http.StatusBadRequest},
		{"room already booked", RoomAlreadyBooked("room-1"), CodeRoomAlreadyBooked, http.StatusConflict},
		{"review already exists", ReviewAlreadyExists("booking-1"), CodeReviewAlreadyExists, http.StatusConflict},
		{"duplicate email", DuplicateEmail("jane@example.com"), CodeDuplicateEmail, http.StatusConflict},
		{"invalid credentials", InvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.HTTPStatus)
			}
		})
	}
}

func TestRoomAlreadyBooked_Details(t *testing.T) {
	err := RoomAlreadyBooked("64a0000000000000000000a1")
	if err.Details["room_id"] != "64a0000000000000000000a1" {
		t.Errorf("expected room_id detail, got %v", err.Details)
	}
}

func TestInvalidCredentials_GivesNothingAway(t *testing.T) {
	// The same error regardless of whether the email exists or the password
	// was wrong.
	err := InvalidCredentials()
	if err.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if len(err.Details) != 0 {
		t.Errorf("expected no details, got %v", err.Details)
	}
}

func TestValidation_Status(t *testing.T) {
	err := Validation("validation failed", map[string]any{"field": "email"})

	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
	if err.Details["field"] != "email" {
		t.Errorf("expected field 'email', got %v", err.Details["field"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Booking")
	regularErr := errors.New("regular error")

	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	wrapped := AsAppError(regularErr)
	if wrapped.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if wrapped.Err != regularErr {
		t.Errorf("AsAppError() should keep the original error")
	}
}
