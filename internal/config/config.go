package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	DatabasePath string
	OutputDir    string
	BrandName    string
	LogMode      string
}

const (
	defaultGeminiModel  = "gemini-1.5-pro"
	defaultDatabasePath = "data/macroplan.db"
	defaultOutputDir    = "deliverables"
)

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	databasePath := os.Getenv("MACROPLAN_DB_PATH")
	if databasePath == "" {
		databasePath = defaultDatabasePath
	}

	outputDir := os.Getenv("MACROPLAN_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	return &Config{
		GeminiAPIKey: geminiAPIKey,
		GeminiModel:  geminiModel,
		DatabasePath: databasePath,
		OutputDir:    outputDir,
		BrandName:    os.Getenv("MACROPLAN_BRAND_NAME"),
		LogMode:      os.Getenv("MACROPLAN_LOG_MODE"),
	}, nil
}
