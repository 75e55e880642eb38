package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	FarmAPI   FarmAPIConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// FarmAPIConfig points at the remote livestock API. DemoMode swaps the real
// client for the in-memory demo farm.
type FarmAPIConfig struct {
	BaseURL  string
	DemoMode bool
}

// MongoDBConfig holds settings for the session and report snapshot store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ReportingConfig drives the scheduled monthly feeding report. The job runs
// under a dedicated service account on the livestock API.
type ReportingConfig struct {
	Enabled         bool
	CronSchedule    string
	ServiceUsername string
	ServicePassword string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		FarmAPI: FarmAPIConfig{
			BaseURL:  getenvWithDefault("FARM_API_BASE_URL", "https://api.karangnongkofarm.com/api"),
			DemoMode: getenvBool("DEMO_MODE"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "goatherd"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
		},
		Reporting: ReportingConfig{
			Enabled:         getenvBool("REPORT_ENABLED"),
			CronSchedule:    getenvWithDefault("REPORT_CRON_SCHEDULE", "0 6 1 * *"),
			ServiceUsername: os.Getenv("REPORT_SERVICE_USERNAME"),
			ServicePassword: os.Getenv("REPORT_SERVICE_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if !c.FarmAPI.DemoMode && c.FarmAPI.BaseURL == "" {
		return errors.New("FARM_API_BASE_URL must be provided unless DEMO_MODE is enabled")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.Enabled {
		switch {
		case c.Sheets.CredentialsPath == "":
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when reporting is enabled")
		case c.Sheets.SpreadsheetID == "":
			return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when reporting is enabled")
		case c.Reporting.CronSchedule == "":
			return errors.New("REPORT_CRON_SCHEDULE must be provided when reporting is enabled")
		case c.Reporting.ServiceUsername == "":
			return errors.New("REPORT_SERVICE_USERNAME must be provided when reporting is enabled")
		case c.Reporting.ServicePassword == "":
			return errors.New("REPORT_SERVICE_PASSWORD must be provided when reporting is enabled")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return value
}
