package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings of the trip planner service.
type Config struct {
	Env         string `mapstructure:"app_env"`
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	SeedPath    string `mapstructure:"seed_path"`

	ORSAPIKey  string `mapstructure:"ors_api_key"`
	ORSBaseURL string `mapstructure:"ors_base_url"`
	ORSProfile string `mapstructure:"ors_profile"`

	OSRMBaseURL string `mapstructure:"osrm_base_url"`
	OSRMProfile string `mapstructure:"osrm_profile"`

	NominatimBaseURL   string `mapstructure:"nominatim_base_url"`
	NominatimUserAgent string `mapstructure:"nominatim_user_agent"`

	// Per-attempt bound on each remote routing provider.
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	// Multiplier applied to straight-line distance when no routing data is available.
	RoadFactor float64 `mapstructure:"road_factor"`
}

var keys = []string{
	"app_env", "port", "database_url", "seed_path",
	"ors_api_key", "ors_base_url", "ors_profile",
	"osrm_base_url", "osrm_profile",
	"nominatim_base_url", "nominatim_user_agent",
	"provider_timeout", "road_factor",
}

// Load reads an optional .env file, then environment variables over defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load config: read .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("seed_path", "data/seeds/trips.json")
	v.SetDefault("ors_api_key", "")
	v.SetDefault("ors_base_url", "https://api.openrouteservice.org")
	v.SetDefault("ors_profile", "driving-car")
	v.SetDefault("osrm_base_url", "https://router.project-osrm.org")
	v.SetDefault("osrm_profile", "driving")
	v.SetDefault("nominatim_base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim_user_agent", "trip-planner-service/1.0")
	v.SetDefault("provider_timeout", 5*time.Second)
	v.SetDefault("road_factor", 1.3)

	// Environment variables: ORS_API_KEY -> ors_api_key
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("load config: bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that settings are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, "port is required")
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("provider_timeout must be positive, got %s", c.ProviderTimeout))
	}
	if c.RoadFactor <= 0 {
		errs = append(errs, fmt.Sprintf("road_factor must be positive, got %v", c.RoadFactor))
	}
	if strings.TrimSpace(c.OSRMBaseURL) == "" {
		errs = append(errs, "osrm_base_url is required")
	}
	if strings.TrimSpace(c.NominatimBaseURL) == "" {
		errs = append(errs, "nominatim_base_url is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
