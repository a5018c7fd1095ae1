package config

import (
	"os"
	"strconv"

	"matchlens/internal/errors"
)

// Config represents the complete application configuration. Environment
// variables provide the defaults; command-line flags override them.
type Config struct {
	Inputs   InputConfig
	Analysis AnalysisConfig
	Report   ReportConfig
}

// InputConfig holds the three input file paths (CSV or Excel each).
type InputConfig struct {
	MatchLog             string
	Demographics         string
	HispanicDemographics string
}

// AnalysisConfig holds computation settings.
type AnalysisConfig struct {
	// SampleCutoff zeroes the weight of races observed fewer times than
	// this. Zero includes every sample.
	SampleCutoff uint

	OnlyMet       bool
	OnlyConvo     bool
	OnlySpecified bool
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Format     string
	OutputPath string // empty writes to stdout
	ServeAddr  string // empty disables the report server
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Inputs: InputConfig{
			MatchLog:             getEnvOrDefault("MATCHLENS_MATCHES", "matches.csv"),
			Demographics:         getEnvOrDefault("MATCHLENS_DEMOGRAPHICS", "demographics.csv"),
			HispanicDemographics: getEnvOrDefault("MATCHLENS_HISPANIC_DEMOGRAPHICS", "hispanic_demographics.csv"),
		},
		Analysis: AnalysisConfig{
			SampleCutoff:  getEnvUintOrDefault("MATCHLENS_CUTOFF", 2),
			OnlyMet:       getEnvBoolOrDefault("MATCHLENS_ONLY_MET", false),
			OnlyConvo:     getEnvBoolOrDefault("MATCHLENS_ONLY_CONVO", false),
			OnlySpecified: getEnvBoolOrDefault("MATCHLENS_ONLY_SPECIFIED", false),
		},
		Report: ReportConfig{
			Format:     getEnvOrDefault("MATCHLENS_FORMAT", "text"),
			OutputPath: getEnvOrDefault("MATCHLENS_OUTPUT", ""),
			ServeAddr:  getEnvOrDefault("MATCHLENS_SERVE", ""),
		},
	}
}

// Validate checks required fields before any file is read.
func (c *Config) Validate() error {
	if c.Inputs.MatchLog == "" {
		return errors.ConfigInvalid("match log path is required")
	}
	if c.Inputs.Demographics == "" {
		return errors.ConfigInvalid("demographics path is required")
	}
	if c.Inputs.HispanicDemographics == "" {
		return errors.ConfigInvalid("hispanic demographics path is required")
	}
	switch c.Report.Format {
	case "text", "markdown", "html":
	default:
		return errors.ConfigInvalid("report format must be text, markdown, or html")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint) uint {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint(n)
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
