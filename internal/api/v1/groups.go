package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GroupsAndServices lists the combined picker of groups and volunteer
// positions. Every item is returned with its category IDs attached;
// hiding excluded groups happens client-side.
// POST /api/groups-and-services
func (h *Handler) GroupsAndServices(c *gin.Context) {
	var req groupsAndServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	items, err := h.catalog.SelectableItems(c.Request.Context(), req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
