package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used by the livestock API.
const DateLayout = "2006-01-02"

// FeedingLog records one feeding activity. Date carries no time component and
// FeedTime no date component; both stay in their wire form. UserID is assigned
// by the server at creation and records provenance only — authorization is
// barn-based, never creator-based.
type FeedingLog struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	FeedTime string `json:"feed_time"`
	Barn     Barn   `json:"barn"`
	Note     string `json:"note"`
	UserID   string `json:"user_id"`
}

// Day parses the log date into a UTC-midnight time for calendar grouping.
func (l FeedingLog) Day() (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, l.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse feeding log date %q: %w", l.Date, err)
	}
	return day, nil
}

// FeedingLogCreate is the client-settable portion of a feeding log, used for
// both create and full-replace update requests.
type FeedingLogCreate struct {
	Date     string `json:"date" validate:"required"`
	FeedTime string `json:"feed_time" validate:"required"`
	Barn     Barn   `json:"barn" validate:"required,oneof=barat timur"`
	Note     string `json:"note"`
}
