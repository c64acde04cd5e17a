package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"aavm-dashboard/models"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
)

// ApprovalHandler serves the admin-facing approval link and the
// data-store webhook that triggers the approval email.
type ApprovalHandler struct {
	approvalService services.ApprovalService
}

func NewApprovalHandler(approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// ApproveUser handles the link clicked from the approval email. The
// response is a human-readable HTML page, not JSON.
func (h *ApprovalHandler) ApproveUser(c *gin.Context) {
	token := c.Query("token")
	role := c.Query("role")

	if token == "" || role == "" {
		h.renderPage(c, http.StatusBadRequest, approvalPage{
			Title:   "Invalid Link",
			Message: "The approval link is missing its token or role.",
			IsError: true,
		})
		return
	}

	payload, err := h.approvalService.ApproveUser(token, role)
	if err != nil {
		page := approvalPage{Title: "Approval Failed", IsError: true}
		switch {
		case errors.Is(err, models.ErrTokenExpired):
			page.Message = "This approval link has expired. Ask the user to sign up again."
		case errors.Is(err, models.ErrTokenInvalid):
			page.Message = "This approval link is invalid or has already been used."
		default:
			page.Message = "Approval failed: " + err.Error()
		}
		h.renderPage(c, http.StatusBadRequest, page)
		return
	}

	h.renderPage(c, http.StatusOK, approvalPage{
		Title:   "User Approved",
		Message: payload.Email + " now has the role " + string(payload.Role) + ".",
	})
}

// HandleUserWebhook receives users-table change notifications. Only
// INSERT events on the users table are acted on.
func (h *ApprovalHandler) HandleUserWebhook(c *gin.Context) {
	var req models.UserWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != "INSERT" || req.Table != "users" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event ignored"})
		return
	}

	if err := h.approvalService.HandleUserInsert(c.Request.Context(), req.Record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type approvalPage struct {
	Title   string
	Message string
	IsError bool
}

var approvalPageTmpl = template.Must(template.New("approval-page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}} - AAVM Dashboard</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 80px auto; text-align: center;">
  <h1 style="color: {{if .IsError}}#c0392b{{else}}#27ae60{{end}};">{{.Title}}</h1>
  <p>{{.Message}}</p>
</body>
</html>`))

func (h *ApprovalHandler) renderPage(c *gin.Context, status int, page approvalPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := approvalPageTmpl.Execute(c.Writer, page); err != nil {
		c.String(http.StatusInternalServerError, "template error")
	}
}
