package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadEnv loads environment variables from a .env file, searching the
// current directory and up to two parents. Values already present in the
// environment win over the file.
func LoadEnv() error {
	envPaths := []string{".env", "../.env", "../../.env"}

	for _, envPath := range envPaths {
		data, err := os.ReadFile(envPath)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
		break
	}
	return nil
}

// GetEnv gets a string environment variable with a default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool gets a boolean environment variable with a default.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

// OutputDir is where run artifacts (districts.json, GeoJSON snapshots,
// history) are written. Mirrors the directory the static frontend serves.
func OutputDir() string {
	return GetEnv("OUTPUT_DIR", filepath.Join("site", "public"))
}

// CorrectionsDir is where per-district correction files live.
func CorrectionsDir() string {
	return GetEnv("CORRECTIONS_DIR", filepath.Join(OutputDir(), "corrections"))
}

// HistoryPath is the location of the coverage time series file.
func HistoryPath() string {
	return GetEnv("HISTORY_FILE", filepath.Join(OutputDir(), "detailed_history.json"))
}
