package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the environment-level configuration surface. Command-line flags
// override whatever is loaded here.
type Config struct {
	Policy         string // boundary policy: adjust, clip, error, none
	SpacingMs      int64  // minimum inter-segment spacing
	Language       string // alignment language tag
	AlignerCommand string // forced-alignment command template
	AlignerOptions string // extra task options appended verbatim
	OpenAIKey      string
	GeminiKey      string
}

// Load reads .env (when present) and the SUBTIDE_* environment.
func Load() (*Config, error) {
	// a missing .env is fine; explicit environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		Policy:         getenv("SUBTIDE_POLICY", "adjust"),
		Language:       getenv("SUBTIDE_LANGUAGE", ""),
		AlignerCommand: getenv("SUBTIDE_ALIGNER", "python3 -m aeneas.tools.execute_task"),
		AlignerOptions: getenv("SUBTIDE_ALIGNER_OPTIONS", ""),
		OpenAIKey:      getenv("OPENAI_API_KEY", ""),
		GeminiKey:      getenv("GEMINI_API_KEY", ""),
	}

	if raw := os.Getenv("SUBTIDE_SPACING_MS"); raw != "" {
		spacing, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBTIDE_SPACING_MS %q: %w", raw, err)
		}
		cfg.SpacingMs = spacing
	}

	return cfg, nil
}

// AlignerArgv splits the aligner command template into argv form.
func (c *Config) AlignerArgv() []string {
	return strings.Fields(c.AlignerCommand)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
