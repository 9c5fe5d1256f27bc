package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateInput covers structural constraints only. Date-range and
// availability checks belong to the admission flow, which runs them against
// the normalized dates.
func (v *BookingValidator) ValidateInput(input *model.BookingInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *BookingValidator) ValidateReview(input *model.ReviewInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *BookingValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var validationErrors ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()

		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}

	return validationErrors
}
