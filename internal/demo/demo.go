// Package demo provides an in-memory stand-in for the remote livestock API.
// It exists for offline demos and tests only and is selected explicitly via
// configuration, never as a fallback on production failures.
package demo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

type account struct {
	password string
	actor    models.Actor
}

// Client keeps the whole farm in memory and enforces the same contract as the
// real API: bearer tokens, server-assigned ids, barn counts that always sum
// to the total.
type Client struct {
	mu       sync.RWMutex
	accounts map[string]account
	tokens   map[string]models.Actor
	goats    []models.Goat
	logs     []models.FeedingLog
}

var _ farmapi.Client = (*Client)(nil)

// NewClient seeds the demo farm with two handler accounts, one admin and a
// small herd split across both barns.
func NewClient() *Client {
	c := &Client{
		accounts: map[string]account{
			"admin": {password: "admin123", actor: models.Actor{ID: "u1", Username: "admin", Role: models.AdminRole()}},
			"wati":  {password: "barat123", actor: models.Actor{ID: "u2", Username: "wati", Role: models.HandlerRole(models.BarnWest)}},
			"tono":  {password: "timur123", actor: models.Actor{ID: "u3", Username: "tono", Role: models.HandlerRole(models.BarnEast)}},
		},
		tokens: make(map[string]models.Actor),
	}

	c.goats = []models.Goat{
		{ID: uuid.NewString(), Tag: "G001", Weight: 35.5, Age: 14, Gender: models.GenderFemale, Status: models.StatusHealthy, Barn: models.BarnWest},
		{ID: uuid.NewString(), Tag: "G002", Weight: 42.0, Age: 22, Gender: models.GenderMale, Status: models.StatusHealthy, Barn: models.BarnWest},
		{ID: uuid.NewString(), Tag: "G003", Weight: 28.3, Age: 8, Gender: models.GenderFemale, Status: models.StatusSick, Barn: models.BarnEast},
		{ID: uuid.NewString(), Tag: "G004", Weight: 39.1, Age: 18, Gender: models.GenderMale, Status: models.StatusHealthy, Barn: models.BarnEast},
	}

	today := time.Now().UTC().Format(models.DateLayout)
	c.logs = []models.FeedingLog{
		{ID: uuid.NewString(), Date: today, FeedTime: "07:00", Barn: models.BarnWest, Note: "morning hay", UserID: "u2"},
		{ID: uuid.NewString(), Date: today, FeedTime: "17:30", Barn: models.BarnEast, Note: "evening concentrate", UserID: "u3"},
	}

	return c
}

// Login checks the seeded accounts and issues a fresh bearer token.
func (c *Client) Login(_ context.Context, username, password string) (*farmapi.LoginResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, ok := c.accounts[strings.ToLower(username)]
	if !ok || acc.password != password {
		return nil, apperror.New(apperror.KindAuthentication, "invalid username or password")
	}

	token := uuid.NewString()
	c.tokens[token] = acc.actor
	return &farmapi.LoginResult{Token: token, User: acc.actor}, nil
}

func (c *Client) authorize(token string) (models.Actor, error) {
	actor, ok := c.tokens[token]
	if !ok {
		return models.Actor{}, apperror.New(apperror.KindAuthorization, "token rejected")
	}
	return actor, nil
}

// ListGoats returns the herd, optionally restricted to one barn.
func (c *Client) ListGoats(_ context.Context, token string, filter farmapi.GoatFilter) ([]models.Goat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	out := make([]models.Goat, 0, len(c.goats))
	for _, g := range c.goats {
		if filter.Barn != "" && g.Barn != filter.Barn {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// GetGoat returns one goat by id.
func (c *Client) GetGoat(_ context.Context, token, id string) (*models.Goat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	for _, g := range c.goats {
		if g.ID == id {
			goat := g
			return &goat, nil
		}
	}
	return nil, apperror.New(apperror.KindNotFound, "goat not found")
}

// CreateGoat appends a goat with a freshly assigned id.
func (c *Client) CreateGoat(_ context.Context, token string, in models.GoatCreate) (*models.Goat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	goat := models.Goat{
		ID:     uuid.NewString(),
		Tag:    in.Tag,
		Weight: *in.Weight,
		Age:    *in.Age,
		Gender: in.Gender,
		Status: in.Status,
		Barn:   in.Barn,
	}
	c.goats = append(c.goats, goat)
	return &goat, nil
}

// UpdateGoat replaces the mutable fields of an existing goat.
func (c *Client) UpdateGoat(_ context.Context, token, id string, in models.GoatCreate) (*models.Goat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	for i, g := range c.goats {
		if g.ID != id {
			continue
		}
		c.goats[i] = models.Goat{
			ID:     g.ID,
			Tag:    in.Tag,
			Weight: *in.Weight,
			Age:    *in.Age,
			Gender: in.Gender,
			Status: in.Status,
			Barn:   in.Barn,
		}
		goat := c.goats[i]
		return &goat, nil
	}
	return nil, apperror.New(apperror.KindNotFound, "goat not found")
}

// DeleteGoat removes a goat permanently.
func (c *Client) DeleteGoat(_ context.Context, token, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(token); err != nil {
		return err
	}

	for i, g := range c.goats {
		if g.ID == id {
			c.goats = append(c.goats[:i], c.goats[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.KindNotFound, "goat not found")
}

// GoatStats counts the herd per barn. Total is derived from the per-barn
// counts so the sum invariant holds by construction.
func (c *Client) GoatStats(_ context.Context, token string) (*models.GoatStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	stats := new(models.GoatStats)
	for _, g := range c.goats {
		switch g.Barn {
		case models.BarnWest:
			stats.West++
		case models.BarnEast:
			stats.East++
		}
	}
	stats.Total = stats.West + stats.East
	return stats, nil
}

// ListFeedingLogs returns the logs, optionally restricted to one month.
func (c *Client) ListFeedingLogs(_ context.Context, token string, filter farmapi.LogFilter) ([]models.FeedingLog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	out := make([]models.FeedingLog, 0, len(c.logs))
	for _, l := range c.logs {
		if filter.Year != 0 || filter.Month != 0 {
			day, err := l.Day()
			if err != nil {
				continue
			}
			if filter.Year != 0 && day.Year() != filter.Year {
				continue
			}
			if filter.Month != 0 && day.Month() != filter.Month {
				continue
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// CreateFeedingLog appends a log, stamping id and the creator reference.
func (c *Client) CreateFeedingLog(_ context.Context, token string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.authorize(token)
	if err != nil {
		return nil, err
	}

	log := models.FeedingLog{
		ID:       uuid.NewString(),
		Date:     in.Date,
		FeedTime: in.FeedTime,
		Barn:     in.Barn,
		Note:     in.Note,
		UserID:   actor.ID,
	}
	c.logs = append(c.logs, log)
	return &log, nil
}

// UpdateFeedingLog replaces the mutable fields; the creator reference stays.
func (c *Client) UpdateFeedingLog(_ context.Context, token, id string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(token); err != nil {
		return nil, err
	}

	for i, l := range c.logs {
		if l.ID != id {
			continue
		}
		c.logs[i] = models.FeedingLog{
			ID:       l.ID,
			Date:     in.Date,
			FeedTime: in.FeedTime,
			Barn:     in.Barn,
			Note:     in.Note,
			UserID:   l.UserID,
		}
		log := c.logs[i]
		return &log, nil
	}
	return nil, apperror.New(apperror.KindNotFound, "feeding log not found")
}

// DeleteFeedingLog removes a log permanently.
func (c *Client) DeleteFeedingLog(_ context.Context, token, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.authorize(token); err != nil {
		return err
	}

	for i, l := range c.logs {
		if l.ID == id {
			c.logs = append(c.logs[:i], c.logs[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.KindNotFound, "feeding log not found")
}
