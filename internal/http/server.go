package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// Server wraps the gin engine in an http.Server so shutdown can drain
// in-flight requests.
type Server struct {
	srv *http.Server
	log *logger.Logger
}

func NewServer(addr string, engine *gin.Engine, log *logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run blocks until the listener fails or the server is shut down.
func (s *Server) Run() error {
	s.log.Info("http server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
