package common

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Drive    DriveConfig
	Storage  StorageConfig
	Model    ModelConfig
	Pages    PagesConfig
	Pipeline PipelineConfig
}

// ServerConfig holds webhook server settings.
type ServerConfig struct {
	Addr string
}

// DriveConfig holds document repository settings.
type DriveConfig struct {
	CredentialsFile  string
	ProjectsFolderID string
	CodelabsFolderID string
}

// StorageConfig holds object storage settings.
type StorageConfig struct {
	Bucket string
}

// ModelConfig holds generative model settings.
type ModelConfig struct {
	Name    string
	APIKey  string
	Timeout time.Duration
}

// PagesConfig holds document store settings.
type PagesConfig struct {
	Backend    string // "firestore" or "sqlite"
	ProjectID  string
	Collection string
	SQLitePath string
}

// PipelineConfig bounds each external call and sizes the publish queue.
type PipelineConfig struct {
	StageTimeout time.Duration
	RunTimeout   time.Duration
	Workers      int
	QueueSize    int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Drive: DriveConfig{
			CredentialsFile:  getEnv("DRIVE_CREDENTIALS_FILE", ""),
			ProjectsFolderID: getEnv("DRIVE_PROJECTS_FOLDER_ID", ""),
			CodelabsFolderID: getEnv("DRIVE_CODELABS_FOLDER_ID", ""),
		},
		Storage: StorageConfig{
			Bucket: getEnv("ASSETS_BUCKET", "gdg-fisk-assets"),
		},
		Model: ModelConfig{
			Name:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Pages: PagesConfig{
			Backend:    getEnv("PAGES_BACKEND", "firestore"),
			ProjectID:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
			Collection: getEnv("PAGES_COLLECTION", "gdg-fisk-content"),
			SQLitePath: getEnv("PAGES_SQLITE_PATH", "./pages.db"),
		},
		Pipeline: PipelineConfig{
			StageTimeout: getEnvAsDuration("STAGE_TIMEOUT", 30*time.Second),
			RunTimeout:   getEnvAsDuration("RUN_TIMEOUT", 3*time.Minute),
			Workers:      getEnvAsInt("PUBLISH_WORKERS", 2),
			QueueSize:    getEnvAsInt("PUBLISH_QUEUE_SIZE", 64),
		},
	}
}

// Validate checks the settings required to reach the backing services.
func (c *Config) Validate() error {
	if c.Model.APIKey == "" {
		return errors.New("config: GEMINI_API_KEY is required")
	}
	if c.Drive.ProjectsFolderID == "" && c.Drive.CodelabsFolderID == "" {
		return errors.New("config: at least one Drive folder ID is required")
	}
	if c.Pages.Backend == "firestore" && c.Pages.ProjectID == "" {
		return errors.New("config: GOOGLE_CLOUD_PROJECT is required for the firestore backend")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
