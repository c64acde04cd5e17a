package services

import (
	"context"
	"errors"
	"time"

	"aavm-dashboard/clients"
	"aavm-dashboard/config"
	"aavm-dashboard/models"
	"aavm-dashboard/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	// ExchangeCallback trades an OAuth authorization code for an identity
	// and ensures a local user row exists, pending approval.
	ExchangeCallback(ctx context.Context, code string) (*models.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	authAPI  *clients.AuthClient
}

func NewAuthService(userRepo repositories.UserRepository, authAPI *clients.AuthClient) AuthService {
	return &authService{userRepo: userRepo, authAPI: authAPI}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if s.userRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}

	existingUser, err := s.userRepo.GetByEmail(req.Email)
	if err == nil && existingUser != nil {
		return nil, errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// New signups always start unprivileged; roles are granted through
	// the admin approval flow.
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RolePendingApproval,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	if s.userRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		var notFound models.NotFoundError
		if errors.As(err, &notFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if user.Role == models.RoleDisabled {
		return nil, errors.New("account disabled")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(id string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}
	return s.userRepo.GetByID(id)
}

func (s *authService) ExchangeCallback(ctx context.Context, code string) (*models.AuthResponse, error) {
	if code == "" {
		return nil, models.ValidationError{Field: "code", Message: "authorization code is required"}
	}
	if s.userRepo == nil {
		return nil, models.ConfigurationError{Missing: "database"}
	}

	identity, err := s.authAPI.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(identity.ID)
	if err != nil {
		var notFound models.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		user = &models.User{
			ID:    identity.ID,
			Email: identity.Email,
			Role:  models.RolePendingApproval,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     now.Add(config.JWTExpiration).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(config.JWTSecret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
