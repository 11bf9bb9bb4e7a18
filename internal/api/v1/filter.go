package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Filter aggregates the deduplicated people list for the selected
// groups and volunteer positions.
// POST /api/filter
func (h *Handler) Filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	people, err := h.engine.Aggregate(c.Request.Context(), req.APIKey, req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filterResponse{People: people, Count: len(people)})
}
