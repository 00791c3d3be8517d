package web

import "github.com/alkis-osm-coverage/internal/config"

// Config holds the web server configuration.
type Config struct {
	Server struct {
		Host string
		Port int
	}
	Data struct {
		OutputDir      string
		CorrectionsDir string
		HistoryPath    string
	}
	Trend struct {
		WindowDays int
		TopK       int
	}
}

// LoadConfig builds the server configuration from the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.Server.Host = config.GetEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = config.GetEnvInt("SERVER_PORT", 5000)
	cfg.Data.OutputDir = config.OutputDir()
	cfg.Data.CorrectionsDir = config.CorrectionsDir()
	cfg.Data.HistoryPath = config.HistoryPath()
	cfg.Trend.WindowDays = config.GetEnvInt("TREND_WINDOW_DAYS", 7)
	cfg.Trend.TopK = config.GetEnvInt("TREND_TOP_K", 10)
	return cfg
}
