package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/repositories"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Server is the HTTP management surface, separate from the chat bot.
type Server struct {
	http *http.Server
}

func NewServer(cfg *config.Config, store *repositories.Store, admins *repositories.AdminRepository) *Server {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := NewHandler(cfg, store, admins)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/login", handler.Login)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	authorized := api.Group("/")
	authorized.Use(authRequired(cfg.JWTSecret))
	{
		authorized.GET("/questions", handler.ListQuestions)
		authorized.POST("/questions", handler.CreateQuestion)
		authorized.DELETE("/questions/:id", handler.DeleteQuestion)
		authorized.GET("/stats", handler.Stats)
	}

	return &Server{
		http: &http.Server{
			Addr:         ":" + cfg.AppPort,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	logger.Info("Admin API listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
