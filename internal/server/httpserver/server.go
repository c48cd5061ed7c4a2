// Package httpserver exposes the auth operations over JSON-over-HTTP.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravcov/authgate/internal/logging"
	"github.com/mkravcov/authgate/internal/server/models"
	"github.com/mkravcov/authgate/internal/server/services"
)

// AuthService is the slice of the service layer the handlers need.
type AuthService interface {
	Authenticate(ctx context.Context, username string, password string) (*services.Session, error)
	Identify(ctx context.Context, accessToken string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*models.User, error)
}

type Server struct {
	address string
	auth    AuthService
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, auth AuthService) *Server {
	return &Server{
		address: address,
		auth:    auth,
		logger:  l.With("module", "http_server"),
	}
}

// Routes builds the gin engine with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/authenticate", s.handleAuthenticate)
	api.POST("/getUserByToken", s.handleGetUserByToken)
	api.POST("/refreshToken", s.handleRefreshToken)
	api.POST("/register", s.handleRegister)
	api.POST("/changePassword", s.handleChangePassword)
	api.GET("/ping", s.handlePing)

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
