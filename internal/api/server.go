package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/paulstansifer/number-loom/internal/config"
	log "github.com/sirupsen/logrus"
)

// Server serves the run report and screenshot artifacts for human review
// after a verification run.
type Server struct {
	engine *gin.Engine
	server *http.Server
}

// ServerConfig contains configuration for the artifact server.
type ServerConfig struct {
	Port      string
	Debug     bool
	OutputDir string
}

// NewServer creates a new artifact server instance.
func NewServer(cfg *ServerConfig, appConfig *config.AppConfig) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	s := &Server{
		engine: engine,
	}

	s.setupRoutes(cfg, appConfig)

	s.server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	return s
}

func (s *Server) setupRoutes(cfg *ServerConfig, appConfig *config.AppConfig) {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":    "number-loom UI verification",
			"version":    appConfig.Version,
			"target_url": appConfig.TargetURL,
			"endpoints": []string{
				"GET /report",
				"GET /artifacts/*filepath",
			},
		})
	})

	s.engine.GET("/report", func(c *gin.Context) {
		c.File(filepath.Join(cfg.OutputDir, "report.json"))
	})

	s.engine.Static("/artifacts", cfg.OutputDir)
}

// Start starts the artifact server.
func (s *Server) Start() error {
	log.Debugf("Starting artifact server on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %v", err)
	}

	return nil
}

// Stop gracefully stops the artifact server.
func (s *Server) Stop(ctx context.Context) error {
	log.Debug("Stopping artifact server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}

	log.Debug("Artifact server stopped")
	return nil
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
