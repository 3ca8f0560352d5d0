package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultRemoteURL = "https://api.jsonbin.io/v3/b/6935048fd0ea881f4017fc3e/latest"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	StorageKey    string
	RemoteURL     string
	RemoteTimeout time.Duration
	SeedFile      string
	ViewCacheSize int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOrDefault("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  envOrDefault("DATABASE_PATH", "projectgallery.db"),
		SessionSecret: envOrDefault("SESSION_SECRET", "projectgallery-dev-secret"),
		GinMode:       envOrDefault("GIN_MODE", "release"),
		UploadDir:     envOrDefault("UPLOAD_DIR", "web/uploads"),
		UploadURLPath: envOrDefault("UPLOAD_URL_PATH", "/uploads"),
		StorageKey:    envOrDefault("STORAGE_KEY", "projects-local"),
		RemoteURL:     envOrDefault("REMOTE_URL", defaultRemoteURL),
		RemoteTimeout: envDuration("REMOTE_TIMEOUT", 10*time.Second),
		SeedFile:      strings.TrimSpace(os.Getenv("SEED_FILE")),
		ViewCacheSize: envInt("VIEW_CACHE_SIZE", 1024),
	}
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// envDuration accepts Go duration strings ("15s") or a plain number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
