package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all tool settings, populated from environment variables.
// Input and output paths come from the CLI; everything else lives here.
type Config struct {
	OutputDir string
	LogLevel  string
	LogFormat string

	// Field delimiters per source. GBIF ships tab-separated downloads, SCAR
	// comma-separated ones.
	GBIFDelimiter rune
	SCARDelimiter rune

	// Coordinate validator proximity radii.
	CapitalRadiusKm  float64
	CentroidRadiusKm float64
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	gbifDelim, err := parseDelimiter(envOrDefault("GBIF_DELIMITER", "tab"))
	if err != nil {
		return nil, fmt.Errorf("GBIF_DELIMITER: %w", err)
	}
	scarDelim, err := parseDelimiter(envOrDefault("SCAR_DELIMITER", ","))
	if err != nil {
		return nil, fmt.Errorf("SCAR_DELIMITER: %w", err)
	}

	capitalRadius, err := parseRadius("CAPITAL_RADIUS_KM", 10)
	if err != nil {
		return nil, err
	}
	centroidRadius, err := parseRadius("CENTROID_RADIUS_KM", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OutputDir:        envOrDefault("OUTPUT_DIR", "Cleaned_Data"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		GBIFDelimiter:    gbifDelim,
		SCARDelimiter:    scarDelim,
		CapitalRadiusKm:  capitalRadius,
		CentroidRadiusKm: centroidRadius,
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("OUTPUT_DIR is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDelimiter accepts a literal single character or the word "tab".
func parseDelimiter(s string) (rune, error) {
	if s == "tab" || s == "\t" {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("want a single character or %q, got %q", "tab", s)
	}
	return runes[0], nil
}

func parseRadius(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}
