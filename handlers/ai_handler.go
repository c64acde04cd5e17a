package handlers

import (
	"net/http"

	"aavm-dashboard/helper"
	"aavm-dashboard/models"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
)

// AIHandler serves the single-endpoint workflow API: GET /ai for reads
// and POST /ai with an action field for every pipeline operation.
type AIHandler struct {
	workflowService  services.WorkflowService
	dashboardService services.DashboardService
	Helper           *helper.HTTPHelper
}

func NewAIHandler(workflowService services.WorkflowService, dashboardService services.DashboardService) *AIHandler {
	return &AIHandler{
		workflowService:  workflowService,
		dashboardService: dashboardService,
		Helper:           &helper.HTTPHelper{},
	}
}

func (h *AIHandler) Get(c *gin.Context) {
	switch c.Query("type") {
	case "", "dashboard":
		dashboard, err := h.dashboardService.Dashboard()
		if err != nil {
			c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dashboard)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown type: " + c.Query("type")})
	}
}

func (h *AIHandler) HandleAction(c *gin.Context) {
	var req models.AIActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article ID is required"})
		return
	}

	ctx := c.Request.Context()

	var (
		article *models.Article
		err     error
	)

	switch req.Action {
	case "generate_title":
		article, err = h.workflowService.GenerateTitle(ctx, req.ID)
	case "approve_title":
		article, err = h.workflowService.ApproveTitle(req.ID, req.Title)
	case "summarize", "generate_summary":
		article, err = h.workflowService.Summarize(ctx, req.ID)
	case "approve_summary":
		article, err = h.workflowService.ApproveSummary(req.ID)
	case "translate":
		article, err = h.workflowService.Translate(ctx, req.ID, req.Language)
	case "approve_translation":
		article, err = h.workflowService.ApproveTranslation(req.ID, req.Language, req.Approver)
	case "generate_image_prompt":
		article, err = h.workflowService.GenerateImagePrompt(ctx, req.ID)
	case "generate_image":
		article, err = h.workflowService.GenerateImage(ctx, req.ID)
	case "publish":
		article, err = h.workflowService.Publish(req.ID)
	case "unpublish":
		article, err = h.workflowService.Unpublish(req.ID)
	case "discard":
		article, err = h.workflowService.Discard(req.ID)
	case "delete":
		article, err = h.workflowService.Delete(req.ID)
	case "restore":
		article, err = h.workflowService.Restore(req.ID)
	case "start_over":
		article, err = h.workflowService.StartOver(req.ID)
	case "update_status":
		article, err = h.workflowService.UpdateStatus(req.ID, req.Status)
	case "permanent_delete":
		if err := h.workflowService.PermanentDelete(req.ID); err != nil {
			c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article permanently deleted"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action: " + req.Action})
		return
	}

	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
}
