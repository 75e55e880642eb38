package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/session"
)

// respondError translates a service failure into an HTTP response. A rejected
// token forces an unconditional logout before the 401 goes out, so the next
// page load lands on the login surface.
func respondError(c *gin.Context, store *session.Store, logger *zap.Logger, err error) {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "please fill all required fields",
			"fields": apperror.FieldErrors(err),
		})
	case apperror.KindAuthorization:
		store.Logout(c.Request.Context())
		logger.Warn("session expired, forcing logout", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "your session has expired, please login again"})
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case apperror.KindNetwork:
		logger.Error("livestock api unreachable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "farm service unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
