package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from environment variables.
// Property and loan data live in the portfolio file, not here.
type Config struct {
	PortfolioPath string

	OutputDir      string
	DataFileName   string
	ReportFileName string

	MaxConcurrency int
	Verbose        bool

	ChartWidth  int
	ChartHeight int

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PortfolioPath: getEnv("PORTFOLIO_PATH", "./properties.json"),

		OutputDir:      getEnv("OUTPUT_DIR", "./output"),
		DataFileName:   getEnv("OUTPUT_DATA", "mortgage_results.csv"),
		ReportFileName: getEnv("OUTPUT_REPORT", "report.md"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		Verbose:        getEnvBool("VERBOSE", false),

		ChartWidth:  getEnvInt("CHART_WIDTH", 900),
		ChartHeight: getEnvInt("CHART_HEIGHT", 600),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "mortgage"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "mortgage123"),
		PostgresDB:       getEnv("POSTGRES_DB", "mortgage_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
