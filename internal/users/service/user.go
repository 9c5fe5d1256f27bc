package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	userserrors "github.com/AnshuShetty/HotelManagementBackend/internal/users/errors"
	"github.com/AnshuShetty/HotelManagementBackend/internal/users/repository"
	"github.com/AnshuShetty/HotelManagementBackend/internal/users/validator"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/config"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/sanitizer"
)

type UserService interface {
	Register(ctx context.Context, input *model.RegisterInput) (*model.AuthPayload, error)
	Login(ctx context.Context, input *model.LoginInput) (*model.AuthPayload, error)
	Me(ctx context.Context) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, input *model.RegisterInput) (*model.AuthPayload, error) {
	input.Name = sanitizer.NormalizeName(input.Name)
	input.Email = sanitizer.NormalizeEmail(input.Email)

	if err := s.validator.ValidateRegister(input); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.DuplicateEmail(input.Email)
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	token, err := auth.SignToken(auth.Identity{ID: user.ID, Role: user.Role}, s.cfg.JWTSecret, s.cfg.JWTExpiry)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "role", user.Role)
	return &model.AuthPayload{Token: token, User: user}, nil
}

func (s *userService) Login(ctx context.Context, input *model.LoginInput) (*model.AuthPayload, error) {
	input.Email = sanitizer.NormalizeEmail(input.Email)

	if err := s.validator.ValidateLogin(input); err != nil {
		s.cfg.Log.Warn("Login validation failed", "error", err)
		return nil, apperrors.Validation("Invalid login input", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, apperrors.InvalidCredentials()
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := auth.SignToken(auth.Identity{ID: user.ID, Role: user.Role}, s.cfg.JWTSecret, s.cfg.JWTExpiry)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return &model.AuthPayload{Token: token, User: user}, nil
}

func (s *userService) Me(ctx context.Context) (*model.User, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", identity.ID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}
