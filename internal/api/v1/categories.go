package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaaclee0/elvantoexport/internal/model"
)

// Categories lists the person categories offered for exclusion.
// POST /api/categories
func (h *Handler) Categories(c *gin.Context) {
	var req categoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	cats, err := h.catalog.PeopleCategories(c.Request.Context(), req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}

// GroupCategories lists the group categories in use, with the
// "No Category" sentinel prepended when uncategorized groups exist.
// POST /api/group-categories
func (h *Handler) GroupCategories(c *gin.Context) {
	var req categoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	cats, err := h.catalog.GroupCategories(c.Request.Context(), req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}
