package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	ExportDir           string
	MaxWeeks            int
	HTTPAddr            string
	SweepConcurrency    int
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority when launched by an MCP host)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	exportDir := getEnv("INVSIM_EXPORT_DIR", filepath.Join(dataPath, "exports"))

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", exportDir).Msg("Failed to create export directory")
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		ExportDir:           exportDir,
		MaxWeeks:            getEnvInt("INVSIM_MAX_WEEKS", 52),
		HTTPAddr:            getEnv("INVSIM_HTTP_ADDR", ":8080"),
		SweepConcurrency:    getEnvInt("INVSIM_SWEEP_CONCURRENCY", 4),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	if cfg.MaxWeeks < 1 {
		log.Warn().Int("maxWeeks", cfg.MaxWeeks).Msg("INVSIM_MAX_WEEKS must be positive, using 52")
		cfg.MaxWeeks = 52
	}
	if cfg.SweepConcurrency < 1 {
		cfg.SweepConcurrency = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
