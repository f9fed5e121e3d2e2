package config

import (
	"os"
	"strings"

	"faqreport/internal/errors"
	"faqreport/ports"
)

// Config represents the complete application configuration
type Config struct {
	Source   SourceConfig
	Export   ExportConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// SourceConfig locates the input table and the rules that classify it
type SourceConfig struct {
	// File is the source workbook or CSV file
	File string
	// Sheet is the source table name inside the workbook; blank means the
	// first sheet
	Sheet string
	// OutputFile is the workbook receiving the category sheets; defaults
	// to the source file itself
	OutputFile string
	// RulesFile optionally points to a JSON classification setup; blank
	// uses the built-in rules
	RulesFile string
	// CleanupPolicy decides what happens to stale category tables
	CleanupPolicy ports.CleanupPolicy
}

// ExportConfig controls document export
type ExportConfig struct {
	// Dir is the destination folder for report documents; blank falls
	// back to the default root at export time
	Dir string
	// Skip disables the document export stage entirely
	Skip bool
}

// DatabaseConfig holds the optional Postgres destination
type DatabaseConfig struct {
	URL    string
	Schema string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	policy, err := ports.ParseCleanupPolicy(getEnv("CLEANUP_POLICY", ""))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	cfg := &Config{
		Source: SourceConfig{
			File:          getEnv("SOURCE_FILE", "faq.xlsx"),
			Sheet:         getEnv("SOURCE_SHEET", ""),
			OutputFile:    getEnv("OUTPUT_FILE", ""),
			RulesFile:     getEnv("RULES_FILE", ""),
			CleanupPolicy: policy,
		},
		Export: ExportConfig{
			Dir:  getEnv("EXPORT_DIR", ""),
			Skip: getEnvBool("SKIP_EXPORT", false),
		},
		Database: DatabaseConfig{
			URL:    getEnv("DATABASE_URL", ""),
			Schema: getEnv("DB_SCHEMA", "faqreport"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
	}

	if cfg.Source.OutputFile == "" {
		cfg.Source.OutputFile = cfg.Source.File
	}
	if cfg.Source.File == "" {
		return nil, errors.ConfigInvalid("SOURCE_FILE is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}
