package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDownloadDir          = "downloads"
	defaultUploadDir            = "uploads"
	defaultUserAgent            = "windows:reddit-archiver:v1.0"
	defaultDownloadLimit        = 100
	defaultMaxConcurrent        = 10
	defaultChunkSize            = 32768
	defaultValidFormats         = "jpg,jpeg,png,gif,mp4"
	defaultListerTimeoutSeconds = 30
)

type Config struct {
	LogMode                string
	ServerPort             string
	DownloadDir            string
	UploadDir              string
	UserAgent              string
	DownloadLimit          int
	MaxConcurrentDownloads int
	ChunkSize              int
	ValidFormats           map[string]bool
	ListerTimeout          time.Duration
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	}

	return nil
}

func validateEnv() error {
	err := checkEnv([]string{
		"LOG_MODE",
		"SERVER_PORT",
	})
	if err != nil {
		return err
	}

	return nil
}

func stringToInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if n := stringToInt(value); n > 0 {
		return n
	}

	return fallback
}

func parseFormats(raw string) map[string]bool {
	formats := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			formats[f] = true
		}
	}

	return formats
}

func LoadConfig(envFile string) (*Config, error) {
	err := godotenv.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration file: %w", err)
	}

	err = validateEnv()
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	return &Config{
		LogMode:                os.Getenv("LOG_MODE"),
		ServerPort:             os.Getenv("SERVER_PORT"),
		DownloadDir:            getEnv("DOWNLOAD_DIR", defaultDownloadDir),
		UploadDir:              getEnv("UPLOAD_DIR", defaultUploadDir),
		UserAgent:              getEnv("USER_AGENT", defaultUserAgent),
		DownloadLimit:          getEnvInt("DOWNLOAD_LIMIT", defaultDownloadLimit),
		MaxConcurrentDownloads: getEnvInt("MAX_CONCURRENT_DOWNLOADS", defaultMaxConcurrent),
		ChunkSize:              getEnvInt("CHUNK_SIZE", defaultChunkSize),
		ValidFormats:           parseFormats(getEnv("VALID_FORMATS", defaultValidFormats)),
		ListerTimeout:          time.Duration(getEnvInt("LISTER_TIMEOUT_SECONDS", defaultListerTimeoutSeconds)) * time.Second,
	}, nil
}
