package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	"github.com/AnshuShetty/HotelManagementBackend/internal/contact/repository"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/sanitizer"
)

type ContactService interface {
	Submit(ctx context.Context, message *model.ContactMessage) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.ContactMessage, int64, error)
}

type contactService struct {
	repo     repository.ContactRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewContactService(repo repository.ContactRepository, cfg *config.Config) ContactService {
	return &contactService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Submit stores a contact form message. Open to anonymous callers.
func (s *contactService) Submit(ctx context.Context, message *model.ContactMessage) error {
	message.ID = uuid.NewString()
	message.Name = sanitizer.NormalizeName(message.Name)
	message.Email = sanitizer.NormalizeEmail(message.Email)
	message.Message = sanitizer.NormalizeComment(message.Message)

	if err := s.validate.Struct(message); err != nil {
		s.cfg.Log.Warn("Contact message validation failed", "error", err)
		return apperrors.Validation("Invalid contact message", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, message); err != nil {
		s.cfg.Log.Error("Failed to store contact message", "error", err)
		return apperrors.Internal("Failed to store contact message", err)
	}

	s.cfg.Log.Info("Contact message received", "id", message.ID)
	return nil
}

func (s *contactService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.ContactMessage, int64, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count contact messages", "error", err)
		return nil, 0, apperrors.Internal("Failed to count contact messages", err)
	}

	messages, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list contact messages", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve contact messages", err)
	}

	return messages, count, nil
}
