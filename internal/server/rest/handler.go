package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/server/accounts"
	"taskpilot/internal/server/tasks"
	"taskpilot/internal/shared"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (s *Server) handleSignup(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.logger.Info(ctx, "signup requested")

	outcome, err := s.accounts.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already registered and verified."})
			return
		}
		s.logger.Error(ctx, "signup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if outcome == accounts.SignupOTPResent {
		c.JSON(http.StatusOK, gin.H{"message": "OTP resent. Please verify your email."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered. Please verify your email."})
}

func (s *Server) handleVerifyOTP(c *gin.Context) {
	ctx := c.Request.Context()

	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.logger.Info(ctx, "otp verification requested")

	if err := s.accounts.VerifyOTP(ctx, req.Email, req.OTP); err != nil {
		if errors.Is(err, shared.ErrorInvalidOTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return
		}
		s.logger.Error(ctx, "otp verification failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error verifying OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (s *Server) handleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.logger.Info(ctx, "login requested")

	token, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorNotVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email not verified"})
		case errors.Is(err, shared.ErrorInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		default:
			s.logger.Error(ctx, "login failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Test API called successfully"})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	var task tasks.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := s.tasks.Create(ctx, &task)
	if err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error(ctx, "task creation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating task"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	ctx := c.Request.Context()

	var task tasks.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := s.tasks.Update(ctx, c.Param("id"), &task)
	if err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error(ctx, "task update failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating task"})
		return
	}

	// an unknown id renders as a JSON null body, not a 404
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	if err := s.tasks.Delete(ctx, c.Param("id")); err != nil {
		s.logger.Error(ctx, "task deletion failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	filter := tasks.Filter{
		Status: c.Query("status"),
		SortBy: c.Query("sortBy"),
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		filter.Priority = &priority
	}

	list, err := s.tasks.List(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "task listing failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving tasks"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	dashboard, err := s.tasks.Dashboard(ctx)
	if err != nil {
		s.logger.Error(ctx, "dashboard aggregation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving task dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
