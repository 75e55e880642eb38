package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/auth"
	"github.com/karangnongko/goatherd/internal/calendar"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/internal/service/feedlogs"
	"github.com/karangnongko/goatherd/internal/session"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

// FeedingHandler exposes the feeding-log CRUD surface and the calendar view.
type FeedingHandler struct {
	svc    *feedlogs.Service
	store  *session.Store
	logger *zap.Logger
}

// NewFeedingHandler constructs the HTTP handler adapter for feeding logs.
func NewFeedingHandler(svc *feedlogs.Service, store *session.Store, logger *zap.Logger) *FeedingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedingHandler{svc: svc, store: store, logger: logger}
}

// logRow pairs a feeding log with the per-row manageability flag.
type logRow struct {
	models.FeedingLog
	CanManage bool `json:"can_manage"`
}

// calendarDay is one rendered cell of the month grid.
type calendarDay struct {
	Date string   `json:"date"`
	Logs []logRow `json:"logs"`
}

func parseMonthQuery(c *gin.Context) (farmapi.LogFilter, bool) {
	var filter farmapi.LogFilter

	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil || year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return filter, false
		}
		filter.Year = year
	}
	if monthParam := c.Query("month"); monthParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return filter, false
		}
		filter.Month = time.Month(month)
	}

	return filter, true
}

// List returns feeding logs, optionally restricted to one month.
func (h *FeedingHandler) List(c *gin.Context) {
	sess := currentSession(c)

	filter, ok := parseMonthQuery(c)
	if !ok {
		return
	}

	logs, err := h.svc.List(c.Request.Context(), sess.Token, filter)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	rows := make([]logRow, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, logRow{FeedingLog: log, CanManage: auth.CanManage(sess.Actor, log.Barn)})
	}

	c.JSON(http.StatusOK, rows)
}

// Calendar returns the month grid: one cell per day of the requested month,
// defaulting to the current one. Every record of the month shows up exactly
// once, with its own manageability flag.
func (h *FeedingHandler) Calendar(c *gin.Context) {
	sess := currentSession(c)

	filter, ok := parseMonthQuery(c)
	if !ok {
		return
	}
	now := time.Now().UTC()
	if filter.Year == 0 {
		filter.Year = now.Year()
	}
	if filter.Month == 0 {
		filter.Month = now.Month()
	}

	logs, err := h.svc.List(c.Request.Context(), sess.Token, filter)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	grid := calendar.Bucket(logs, filter.Year, filter.Month)
	days := make([]calendarDay, 0, len(grid))
	for _, day := range grid {
		rows := make([]logRow, 0, len(day.Logs))
		for _, log := range day.Logs {
			rows = append(rows, logRow{FeedingLog: log, CanManage: auth.CanManage(sess.Actor, log.Barn)})
		}
		days = append(days, calendarDay{Date: day.Date.Format(models.DateLayout), Logs: rows})
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  filter.Year,
		"month": int(filter.Month),
		"days":  days,
	})
}

// Create records a feeding activity, preset to the actor's barn when absent.
func (h *FeedingHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	var in models.FeedingLogCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid feeding log payload", zap.Error(err))
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

	log, err := h.svc.Create(c.Request.Context(), sess.Token, in)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// Update replaces the mutable fields of a feeding log. The record's barn is
// taken from the listed view; barn gating is advisory here and authoritative
// on the server.
func (h *FeedingHandler) Update(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")

	var in models.FeedingLogCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid feeding log payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if existing, ok := h.svc.Cached(id); ok && !auth.CanManage(sess.Actor, existing.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}
	if !auth.CanManage(sess.Actor, in.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}

	log, err := h.svc.Update(c.Request.Context(), sess.Token, id, in)
	if err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// Delete removes a feeding log permanently.
func (h *FeedingHandler) Delete(c *gin.Context) {
	sess := currentSession(c)
	id := c.Param("id")

	if existing, ok := h.svc.Cached(id); ok && !auth.CanManage(sess.Actor, existing.Barn) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot manage this barn"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), sess.Token, id); err != nil {
		respondError(c, h.store, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
