// Package rest exposes the HTTP/JSON surface of the backend: account
// signup, OTP verification, login, and task CRUD plus the dashboard.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskpilot/internal/logging"
	"taskpilot/internal/server/accounts"
	"taskpilot/internal/server/tasks"
)

type Server struct {
	addr     string
	logger   logging.Logger
	accounts *accounts.Service
	tasks    *tasks.Service
}

func NewServer(addr string, logger logging.Logger, accountService *accounts.Service, taskService *tasks.Service) *Server {
	return &Server{
		addr:     addr,
		logger:   logger,
		accounts: accountService,
		tasks:    taskService,
	}
}

// Router builds the gin engine with all routes registered. CORS allows all
// origins, matching the deployed frontend setup.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.POST("/signup", s.handleSignup)
	router.POST("/verify-otp", s.handleVerifyOTP)
	router.POST("/login", s.handleLogin)
	router.GET("/test", s.handleTest)

	router.POST("/tasks", s.handleCreateTask)
	router.PUT("/tasks/:id", s.handleUpdateTask)
	router.DELETE("/tasks/:id", s.handleDeleteTask)
	router.GET("/tasks", s.handleListTasks)
	router.GET("/tasks/dashboard", s.handleDashboard)

	return router
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully with a short drain timeout.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{Addr: s.addr, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
