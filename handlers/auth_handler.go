package handlers

import (
	"net/http"
	"net/url"

	"aavm-dashboard/helper"
	"aavm-dashboard/models"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	siteURL     string
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, siteURL string) *AuthHandler {
	return &AuthHandler{authService: authService, siteURL: siteURL, Helper: &helper.HTTPHelper{}}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendUnauthorizedError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.authService.GetUserByID(userID.(string))
	if err != nil {
		h.Helper.SendNotFoundError(c, "User not found", h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

// Callback completes the hosted-auth OAuth flow and sends the browser
// back into the dashboard. Users whose role is still pending land on
// the waiting page instead of the signed-in view.
func (h *AuthHandler) Callback(c *gin.Context) {
	response, err := h.authService.ExchangeCallback(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Redirect(http.StatusFound, h.siteURL+"/?auth_error="+url.QueryEscape(err.Error()))
		return
	}

	switch response.User.Role {
	case models.RolePendingApproval, models.RoleDisabled:
		c.Redirect(http.StatusFound, h.siteURL+"/pending-approval")
	default:
		c.Redirect(http.StatusFound, h.siteURL+"/?token="+url.QueryEscape(response.Token))
	}
}
