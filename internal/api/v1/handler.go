package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/isaaclee0/elvantoexport/internal/metrics"
	"github.com/isaaclee0/elvantoexport/internal/model"
	"github.com/isaaclee0/elvantoexport/internal/service/catalog"
	"github.com/isaaclee0/elvantoexport/internal/service/excel"
)

// Catalog lists the browsable taxonomies and selectable items.
type Catalog interface {
	PeopleCategories(ctx context.Context, apiKey string) ([]model.Category, error)
	GroupCategories(ctx context.Context, apiKey string) ([]model.Category, error)
	SelectableItems(ctx context.Context, apiKey string) (catalog.ItemList, error)
}

// Aggregator computes the deduplicated people list for a filter
// request.
type Aggregator interface {
	Aggregate(ctx context.Context, apiKey string, req model.FilterRequest) ([]model.Person, error)
}

// Handler holds the collaborators behind the API endpoints.
type Handler struct {
	catalog   Catalog
	engine    Aggregator
	exporter  *excel.Exporter
	downloads *exportDownloadStore
	metrics   *metrics.Metrics
}

// NewHandler creates the API handler.
func NewHandler(cat Catalog, engine Aggregator, m *metrics.Metrics) *Handler {
	return &Handler{
		catalog:   cat,
		engine:    engine,
		exporter:  excel.NewExporter(),
		downloads: newExportDownloadStore(),
		metrics:   m,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	// Catalog browsing
	router.POST("/categories", h.Categories)
	router.POST("/group-categories", h.GroupCategories)
	router.POST("/groups-and-services", h.GroupsAndServices)

	// Filtering
	router.POST("/filter", h.Filter)

	// Export
	router.POST("/export/xlsx", h.ExportXLSX)
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
