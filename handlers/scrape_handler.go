package handlers

import (
	"net/http"

	"aavm-dashboard/helper"
	"aavm-dashboard/models"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
)

type ScrapeHandler struct {
	scraperService services.ScraperService
	Helper         *helper.HTTPHelper
}

func NewScrapeHandler(scraperService services.ScraperService) *ScrapeHandler {
	return &ScrapeHandler{scraperService: scraperService, Helper: &helper.HTTPHelper{}}
}

func (h *ScrapeHandler) ScrapeArticle(c *gin.Context) {
	var req models.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.scraperService.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
