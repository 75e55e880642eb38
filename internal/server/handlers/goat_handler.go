package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/auth"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/internal/service/goats"
	"github.com/karangnongko/goatherd/internal/session"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

// GoatHandler exposes the goat CRUD surface and the herd stats card.
type GoatHandler struct {
	svc    *goats.Service
	store  *session.Store
	logger *zap.Logger
}

// NewGoatHandler constructs the HTTP handler adapter for goats.
func NewGoatHandler(svc *goats.Service, store *session.Store, logger *zap.Logger) *GoatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoatHandler{svc: svc, store: store, logger: logger}
}

// goatRow pairs a goat with the per-row manageability flag that gates the
// Edit/Delete controls.
type goatRow struct {
	models.Goat
	CanManage bool `json:"can_manage"`
}

// List returns all goats, optionally filtered by barn. The listing itself is
// never restricted by role; only the mutation affordances are.
func (h *GoatHandler) List(c *gin.Context) {
	sess := currentSession(c)

	var filter farmapi.GoatFilter
	if barnParam := c.Query("barn"); barnParam != "" {
		barn, err := models.ParseBarn(barnParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown barn"})
			return
		}
		filter.Barn = barn
	}

	goatList, err := h.svc.List(c.Request.Context(), sess.Token, filter)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	rows := make([]goatRow, 0, len(goatList))
	for _, goat := range goatList {
		rows = append(rows, goatRow{Goat: goat, CanManage: auth.CanManage(sess.Actor, goat.Barn)})
	}

	c.JSON(http.StatusOK, rows)
}

// Get returns a single goat.
func (h *GoatHandler) Get(c *gin.Context) {
	sess := currentSession(c)

	goat, err := h.svc.Get(c.Request.Context(), sess.Token, c.Param("id"))
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, goatRow{Goat: *goat, CanManage: auth.CanManage(sess.Actor, goat.Barn)})
}

// Create registers a new goat. Handlers get their own barn preset; a barn
// outside the actor's scope is refused before the remote call.
func (h *GoatHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	var in models.GoatCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid goat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if in.Barn == "" {
		in.Barn = auth.DefaultBarn(sess.Actor)
	}
	if !auth.CanManage(sess.Actor, in.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}

	goat, err := h.svc.Create(c.Request.Context(), sess.Token, in)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, goat)
}

// Update replaces the mutable fields of a goat. Both the record's current
// barn and the submitted barn must be within the actor's scope.
func (h *GoatHandler) Update(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")

	var in models.GoatCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid goat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	existing, err := h.svc.Get(c.Request.Context(), sess.Token, id)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}
	if !auth.CanManage(sess.Actor, existing.Barn) || !auth.CanManage(sess.Actor, in.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}

	goat, err := h.svc.Update(c.Request.Context(), sess.Token, id, in)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, goat)
}

// Delete removes a goat permanently.
func (h *GoatHandler) Delete(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")

	existing, err := h.svc.Get(c.Request.Context(), sess.Token, id)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}
	if !auth.CanManage(sess.Actor, existing.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), sess.Token, id); err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats returns the herd counts for the dashboard cards.
func (h *GoatHandler) Stats(c *gin.Context) {
	sess := currentSession(c)

	stats, err := h.svc.Stats(c.Request.Context(), sess.Token)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
