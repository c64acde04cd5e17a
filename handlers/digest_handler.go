package handlers

import (
	"net/http"

	"aavm-dashboard/helper"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
)

type DigestHandler struct {
	digestService services.DigestService
	Helper        *helper.HTTPHelper
}

func NewDigestHandler(digestService services.DigestService) *DigestHandler {
	return &DigestHandler{digestService: digestService, Helper: &helper.HTTPHelper{}}
}

// Run computes the digest and sends it when configured. Registered on
// both GET and POST so cron schedulers of either kind can trigger it.
func (h *DigestHandler) Run(c *gin.Context) {
	result, err := h.digestService.Run(c.Request.Context())
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
