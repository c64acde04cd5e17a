package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aavm-dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApprovalService struct {
	payload  *models.ApprovalToken
	err      error
	inserted []models.User
}

func (f *fakeApprovalService) HandleUserInsert(ctx context.Context, user models.User) error {
	f.inserted = append(f.inserted, user)
	return f.err
}

func (f *fakeApprovalService) ApproveUser(token, role string) (*models.ApprovalToken, error) {
	return f.payload, f.err
}

func newApprovalRouter(svc *fakeApprovalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewApprovalHandler(svc)
	router := gin.New()
	router.GET("/approve-user", handler.ApproveUser)
	router.POST("/webhooks/user-approval", handler.HandleUserWebhook)
	return router
}

func TestApproveUserRendersSuccessPage(t *testing.T) {
	svc := &fakeApprovalService{payload: &models.ApprovalToken{
		Email: "new@example.com",
		Role:  models.RoleChineseTranslator,
	}}
	router := newApprovalRouter(svc)

	req := httptest.NewRequest("GET", "/approve-user?token=abc&role=chinese_translator", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "User Approved")
	assert.Contains(t, w.Body.String(), "new@example.com")
}

func TestApproveUserExpiredTokenPage(t *testing.T) {
	svc := &fakeApprovalService{err: models.ErrTokenExpired}
	router := newApprovalRouter(svc)

	req := httptest.NewRequest("GET", "/approve-user?token=abc&role=admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestApproveUserMissingParams(t *testing.T) {
	router := newApprovalRouter(&fakeApprovalService{})

	req := httptest.NewRequest("GET", "/approve-user", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Link")
}

func TestWebhookTriggersApprovalFlow(t *testing.T) {
	svc := &fakeApprovalService{}
	router := newApprovalRouter(svc)

	body, _ := json.Marshal(models.UserWebhookRequest{
		Type:   "INSERT",
		Table:  "users",
		Record: models.User{ID: "user-1", Email: "new@example.com", Role: models.RolePendingApproval},
	})
	req := httptest.NewRequest("POST", "/webhooks/user-approval", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.inserted, 1)
	assert.Equal(t, "user-1", svc.inserted[0].ID)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	svc := &fakeApprovalService{}
	router := newApprovalRouter(svc)

	body, _ := json.Marshal(models.UserWebhookRequest{Type: "UPDATE", Table: "users"})
	req := httptest.NewRequest("POST", "/webhooks/user-approval", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.inserted)
}
