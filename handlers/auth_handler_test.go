package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"aavm-dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	response *models.AuthResponse
	err      error
}

func (f *fakeAuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	return f.response, f.err
}

func (f *fakeAuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	return f.response, f.err
}

func (f *fakeAuthService) GetUserByID(id string) (*models.User, error) {
	if f.response == nil {
		return nil, f.err
	}
	return &f.response.User, f.err
}

func (f *fakeAuthService) ExchangeCallback(ctx context.Context, code string) (*models.AuthResponse, error) {
	return f.response, f.err
}

func newCallbackRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(svc, "https://dash.example.com")
	router := gin.New()
	router.GET("/auth/callback", handler.Callback)
	return router
}

func getCallback(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCallbackRedirectsApprovedUser(t *testing.T) {
	svc := &fakeAuthService{response: &models.AuthResponse{
		Token: "signed-jwt",
		User:  models.User{ID: "user-1", Role: models.RoleAdmin},
	}}
	router := newCallbackRouter(svc)

	w := getCallback(router, "/auth/callback?code=abc")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://dash.example.com/?token=signed-jwt", w.Header().Get("Location"))
}

func TestCallbackSendsPendingUserToWaitingPage(t *testing.T) {
	svc := &fakeAuthService{response: &models.AuthResponse{
		Token: "signed-jwt",
		User:  models.User{ID: "user-1", Role: models.RolePendingApproval},
	}}
	router := newCallbackRouter(svc)

	w := getCallback(router, "/auth/callback?code=abc")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://dash.example.com/pending-approval", w.Header().Get("Location"))
}

func TestCallbackRedirectsWithErrorOnFailedExchange(t *testing.T) {
	svc := &fakeAuthService{err: models.ValidationError{Field: "code", Message: "authorization code is required"}}
	router := newCallbackRouter(svc)

	w := getCallback(router, "/auth/callback")

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "https://dash.example.com/?auth_error=")
	assert.NotContains(t, location, "token=")
}
