// Package calendar turns a month of feeding logs into the day grid the
// schedule view renders.
package calendar

import (
	"time"

	"github.com/karangnongko/goatherd/internal/domain/models"
)

// Day is one cell of the month grid: a calendar date plus every feeding log
// recorded on it, in the order the logs arrived from the API.
type Day struct {
	Date time.Time
	Logs []models.FeedingLog
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Bucket lays out the full run of days from the first to the last of the
// month and groups logs by exact calendar date. Days from adjacent months are
// never included, and logs dated outside the month are dropped. Logs whose
// date fails to parse are dropped as well rather than failing the whole grid.
func Bucket(logs []models.FeedingLog, year int, month time.Month) []Day {
	days := make([]Day, DaysIn(year, month))
	for i := range days {
		days[i].Date = time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)
	}

	for _, log := range logs {
		day, err := log.Day()
		if err != nil {
			continue
		}
		if day.Year() != year || day.Month() != month {
			continue
		}
		idx := day.Day() - 1
		days[idx].Logs = append(days[idx].Logs, log)
	}

	return days
}
