package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	LogLevel  string
	LogFormat string

	LookupIgnoreCase    bool
	LookupWarnOnMissing bool

	CSVDelimiter rune
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "tabkit.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		LookupIgnoreCase:    getEnvBool("LOOKUP_IGNORE_CASE", true),
		LookupWarnOnMissing: getEnvBool("LOOKUP_WARN_MISSING", true),
	}

	delim, err := getEnvRune("CSV_DELIMITER", ',')
	if err != nil {
		return Config{}, err
	}
	cfg.CSVDelimiter = delim

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvRune(key string, fallback rune) (rune, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	if value == `\t` {
		return '\t', nil
	}
	r := []rune(value)
	if len(r) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, value)
	}
	return r[0], nil
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
