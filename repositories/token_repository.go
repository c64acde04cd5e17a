package repositories

import (
	"errors"
	"sync"
	"time"

	"aavm-dashboard/models"

	"gorm.io/gorm"
)

// TokenStore abstracts approval-token persistence so the durable and the
// in-memory implementation share one contract.
type TokenStore interface {
	Save(token *models.ApprovalToken) error
	// Get returns the token record or models.ErrTokenInvalid when absent.
	// Expired records are garbage-collected during lookup.
	Get(token string) (*models.ApprovalToken, error)
	MarkUsed(token string) error
	Delete(token string) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenStore {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Save(token *models.ApprovalToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) Get(token string) (*models.ApprovalToken, error) {
	// Lazy garbage collection: drop stale used tokens on the way in.
	r.db.Where("used = ? AND expires_at < ?", true, time.Now().Add(-24*time.Hour)).
		Delete(&models.ApprovalToken{})

	var record models.ApprovalToken
	err := r.db.First(&record, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *tokenRepository) MarkUsed(token string) error {
	return r.db.Model(&models.ApprovalToken{}).
		Where("token = ?", token).
		Update("used", true).Error
}

func (r *tokenRepository) Delete(token string) error {
	return r.db.Delete(&models.ApprovalToken{}, "token = ?", token).Error
}

// MemoryTokenStore is the degraded-mode store used when no database is
// configured. Used-token state does not survive a restart.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.ApprovalToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]*models.ApprovalToken)}
}

func (s *MemoryTokenStore) Save(token *models.ApprovalToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *token
	s.tokens[token.Token] = &copied
	return nil
}

func (s *MemoryTokenStore) Get(token string) (*models.ApprovalToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, record := range s.tokens {
		if record.Used && record.Expired(now) {
			delete(s.tokens, key)
		}
	}

	record, ok := s.tokens[token]
	if !ok {
		return nil, models.ErrTokenInvalid
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryTokenStore) MarkUsed(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.tokens[token]; ok {
		record.Used = true
	}
	return nil
}

func (s *MemoryTokenStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
