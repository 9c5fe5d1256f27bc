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

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateRegister(input *model.RegisterInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *UserValidator) ValidateLogin(input *model.LoginInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *UserValidator) translate(err error) error {
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
			message = fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}

	return validationErrors
}
