package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravcov/authgate/internal/common"
	"github.com/mkravcov/authgate/internal/server/services"
)

// Business-rule failures are data, not status codes: they go out as
// HTTP 200 with success:false. Only refresh verification (403), malformed
// requests (400), changePassword's unknown user (404) and unexpected
// failures (500) use the status line.

func (s *Server) handleAuthenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	sess, err := s.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   fieldError{Message: "User not found", FieldName: "username"},
			})
		case errors.Is(err, common.ErrorInvalidCredentials):
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   fieldError{Message: "Password is not correct", FieldName: "password"},
			})
		default:
			s.internalError(c, err)
		}
		return
	}

	s.logger.Info(c.Request.Context(), "login", "username", sess.User.Username)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token generated Successfully",
		"user": userEnvelope{
			AccessToken: sess.AccessToken,
			Settings:    sess.Settings,
			Data:        sess.User.Public(),
			Role:        roleAdmin,
			Shortcuts:   defaultShortcuts(),
		},
	})
}

func (s *Server) handleGetUserByToken(c *gin.Context) {
	var req getUserByTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	sess, err := s.auth.Identify(c.Request.Context(), req.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   fieldError{Message: "User not found or token is not correct", FieldName: "username"},
			})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token generated Successfully",
		"user": userEnvelope{
			AccessToken: sess.AccessToken,
			Settings:    sess.Settings,
			Data:        sess.User.Public(),
			Role:        roleAdmin,
			Shortcuts:   defaultShortcuts(),
		},
	})
}

func (s *Server) handleRefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	accessToken, err := s.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Token is not correct"})
		case errors.Is(err, common.ErrForbidden):
			c.Status(http.StatusForbidden)
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": accessToken})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	user, err := s.auth.Register(c.Request.Context(), services.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhotoURL:    req.PhotoURL,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   fieldError{Message: "User already exists", FieldName: "username"},
			})
			return
		}
		s.internalError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "registered", "username", user.Username)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User Successfully created",
		"data":    user.Public(),
	})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	user, err := s.auth.ChangePassword(c.Request.Context(), req.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "oldPassword and newPassword are mandatory",
			})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not authorized"})
		default:
			s.internalError(c, err)
		}
		return
	}

	s.logger.Info(c.Request.Context(), "password changed", "username", user.Username)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has changed",
		"data":    user.Public(),
	})
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
}
