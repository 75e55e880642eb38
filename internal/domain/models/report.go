package models

import "time"

// MonthlyFeedingReport is the aggregated snapshot stored after each scheduled
// report export.
type MonthlyFeedingReport struct {
	Month       string    `bson:"month" json:"month"` // YYYY-MM
	LogCount    int       `bson:"log_count" json:"log_count"`
	WestLogs    int       `bson:"west_logs" json:"west_logs"`
	EastLogs    int       `bson:"east_logs" json:"east_logs"`
	HerdTotal   int       `bson:"herd_total" json:"herd_total"`
	HerdWest    int       `bson:"herd_west" json:"herd_west"`
	HerdEast    int       `bson:"herd_east" json:"herd_east"`
	GeneratedAt time.Time `bson:"generated_at" json:"generated_at"`
}
