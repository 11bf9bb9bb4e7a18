package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isaaclee0/elvantoexport/internal/elvanto"
	"github.com/isaaclee0/elvantoexport/internal/service/filter"
)

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures 400, rejected credentials 401, upstream failures 502,
// anything else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *filter.ValidationError
	var credentialErr *elvanto.CredentialError
	var upstreamErr *elvanto.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &credentialErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": credentialErr.Message})
	case errors.As(err, &upstreamErr):
		log.Printf("upstream error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Error()})
	default:
		log.Printf("internal error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
