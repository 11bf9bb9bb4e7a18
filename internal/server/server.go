package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/isaaclee0/elvantoexport/internal/api/v1"
	"github.com/isaaclee0/elvantoexport/internal/config"
	"github.com/isaaclee0/elvantoexport/internal/elvanto"
	"github.com/isaaclee0/elvantoexport/internal/metrics"
	"github.com/isaaclee0/elvantoexport/internal/service/catalog"
	"github.com/isaaclee0/elvantoexport/internal/service/filter"
)

// Development frontend origins allowed when dev mode is on.
var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://localhost:4000": true,
}

// Server is the HTTP server.
type Server struct {
	router   *gin.Engine
	v1       *v1.Handler
	registry *prometheus.Registry
}

// NewServer wires the upstream client, services, and routes from the
// configuration.
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Each server carries its own metrics registry so tests can build
	// servers freely.
	registry := prometheus.NewRegistry()
	m := metrics.NewWith(registry)

	client := elvanto.NewClient(cfg.Elvanto.APIURL,
		elvanto.WithHTTPClient(&http.Client{Timeout: cfg.Elvanto.Timeout()}),
		elvanto.WithPageSize(cfg.Elvanto.PageSize),
		elvanto.WithMetrics(m),
	)

	handler := v1.NewHandler(catalog.NewService(client), filter.NewEngine(client, m), m)

	s := &Server{
		router:   gin.Default(),
		v1:       handler,
		registry: registry,
	}
	s.setupRoutes(devMode)
	return s
}

// setupRoutes registers middleware and routes.
func (s *Server) setupRoutes(devMode bool) {
	s.router.Use(corsMiddleware(devMode))

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Elvanto Export API is running"})
	})
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// corsMiddleware allows the deployed frontend to call the API. In
// production the frontend origin is unknown, so any origin is allowed
// without credentials; in dev mode only the local frontend ports are
// allowed, with credentials.
func corsMiddleware(devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if devMode {
			origin := c.GetHeader("Origin")
			if devOrigins[origin] {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
