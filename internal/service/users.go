package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"railres/internal/auth"
	apperrors "railres/internal/errors"
	"railres/internal/models"
	"railres/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	verifier auth.CredentialVerifier
}

func NewUserService(userRepo *repository.UserRepository, verifier auth.CredentialVerifier) *UserService {
	return &UserService{userRepo: userRepo, verifier: verifier}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return s.create(ctx, req, false)
}

// EnsureAdmin creates the admin account unless the username is taken.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return nil
	}
	_, err = s.create(ctx, &models.RegisterRequest{
		Username: username,
		FullName: "Administrator",
		Email:    email,
		Password: password,
	}, true)
	return err
}

// Login checks the password. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	ok, err := s.verifier.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) create(ctx context.Context, req *models.RegisterRequest, admin bool) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.ContainsAny(username, " \t\n") {
		return nil, fmt.Errorf("%w: username must be a single non-empty word", apperrors.ErrInvalidUser)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrInvalidUser)
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      admin,
		RegisteredAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
