package infra

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"comfygen/internal/workflow"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	ComfyHost        string
	AppRoot          string
	WorkflowPath     string
	FieldMapPath     string
	OutputDir        string
	DatabaseURL      string
	PollInterval     time.Duration
	JobTimeout       time.Duration
	RequestTimeout   time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	appRoot := getEnv("COMFYUI_APP_ROOT", ".")
	jobTimeout := time.Second * time.Duration(getEnvInt("COMFYUI_TIMEOUT_SECONDS", 600))
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		ComfyHost:        strings.TrimRight(getEnv("COMFYUI_HOST", "http://127.0.0.1:8188"), "/"),
		AppRoot:          appRoot,
		WorkflowPath:     getEnv("COMFYUI_WORKFLOW_PATH", workflow.DefaultTemplatePath(appRoot)),
		FieldMapPath:     strings.TrimSpace(os.Getenv("COMFYUI_FIELD_MAP_PATH")),
		OutputDir:        getEnv("OUTPUT_DIR", filepath.Join(appRoot, "storage", "videos")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PollInterval:     time.Millisecond * time.Duration(getEnvInt("COMFYUI_POLL_INTERVAL_MS", 1000)),
		JobTimeout:       jobTimeout,
		RequestTimeout:   time.Second * time.Duration(getEnvInt("COMFYUI_REQUEST_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", int(jobTimeout/time.Second)+60)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	parsed, err := url.Parse(cfg.ComfyHost)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("COMFYUI_HOST must be an absolute url, got %q", cfg.ComfyHost)
	}

	if cfg.JobTimeout <= 0 {
		return nil, fmt.Errorf("COMFYUI_TIMEOUT_SECONDS must be positive")
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("COMFYUI_POLL_INTERVAL_MS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
