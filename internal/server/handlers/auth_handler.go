package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/auth"
	"github.com/karangnongko/goatherd/internal/session"
)

// AuthHandler exposes login, logout and the current-actor query.
type AuthHandler struct {
	store  *session.Store
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter for authentication.
func NewAuthHandler(store *session.Store, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{store: store, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the livestock API. Bad credentials and an
// unreachable API produce the same generic message on purpose.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	actor, err := h.store.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         actor,
		"default_barn": auth.DefaultBarn(actor),
	})
}

// Logout clears the session unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Me returns the restored or logged-in actor, for navigation guarding.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         sess.Actor,
		"default_barn": auth.DefaultBarn(sess.Actor),
	})
}

// RequireSession aborts with 401 when no actor is authenticated and stashes
// the session for downstream handlers otherwise.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := store.Current()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) session.Session {
	return c.MustGet("session").(session.Session)
}
