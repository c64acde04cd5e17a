package services

import (
	"time"

	"aavm-dashboard/models"
	"aavm-dashboard/repositories"

	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

// TokenService issues and consumes single-use approval tokens.
type TokenService interface {
	Issue(userID, email string, role models.UserRole) (*models.ApprovalToken, error)
	// Consume spends the token and returns its payload exactly once.
	// Absent or already-used tokens yield ErrTokenInvalid; expired tokens
	// yield ErrTokenExpired and are marked used so a retry cannot race.
	Consume(token string) (*models.ApprovalToken, error)
}

type tokenService struct {
	store repositories.TokenStore
	now   func() time.Time
}

func NewTokenService(store repositories.TokenStore) TokenService {
	return &tokenService{store: store, now: time.Now}
}

func (s *tokenService) Issue(userID, email string, role models.UserRole) (*models.ApprovalToken, error) {
	token := &models.ApprovalToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: s.now().Add(tokenTTL),
	}
	if err := s.store.Save(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *tokenService) Consume(token string) (*models.ApprovalToken, error) {
	record, err := s.store.Get(token)
	if err != nil {
		return nil, err
	}
	if record.Used {
		return nil, models.ErrTokenInvalid
	}
	if record.Expired(s.now()) {
		s.store.MarkUsed(token)
		return nil, models.ErrTokenExpired
	}
	if err := s.store.MarkUsed(token); err != nil {
		return nil, err
	}
	return record, nil
}
