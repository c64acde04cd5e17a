package services

import (
	"testing"
	"time"

	"aavm-dashboard/models"
	"aavm-dashboard/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(now *time.Time) TokenService {
	return &tokenService{
		store: repositories.NewMemoryTokenStore(),
		now:   func() time.Time { return *now },
	}
}

func TestTokenConsumedExactlyOnce(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	issued, err := svc.Issue("user-1", "new@example.com", models.RoleChineseTranslator)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, now.Add(24*time.Hour), issued.ExpiresAt)

	payload, err := svc.Consume(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, models.RoleChineseTranslator, payload.Role)

	_, err = svc.Consume(issued.Token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestExpiredTokenIsSpent(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(&now)

	issued, err := svc.Issue("user-1", "new@example.com", models.RoleAdmin)
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)

	_, err = svc.Consume(issued.Token)
	assert.ErrorIs(t, err, models.ErrTokenExpired)

	// The expired token was marked used, so a retry is invalid rather
	// than expired.
	_, err = svc.Consume(issued.Token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestUnknownTokenIsInvalid(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(&now)

	_, err := svc.Consume("nope")
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokensAreUnique(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(&now)

	a, err := svc.Issue("user-1", "a@example.com", models.RoleAdmin)
	require.NoError(t, err)
	b, err := svc.Issue("user-1", "a@example.com", models.RoleKoreanTranslator)
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
}
