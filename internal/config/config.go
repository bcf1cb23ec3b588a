package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	AppEnv string
	Port   string

	NominatimURL       string
	NominatimUserAgent string
	OSRMURL            string
	OSRMProfile        string

	// Geocoder is "nominatim" or "ors"; Router is "osrm" or "ors".
	Geocoder   string
	Router     string
	ORSAPIKey  string
	ORSURL     string
	ORSProfile string
	ORSCountry string

	HTTPTimeout     time.Duration
	HTTPMaxAttempts int

	ArtifactDir string
	MapZoom     int

	// GeocodeCache is one of "none", "sqlite" or "postgres".
	GeocodeCache  string
	DBPath        string
	DatabaseURL   string
	RedisURL      string
	RouteCacheTTL time.Duration
}

// LoadDotEnv loads a .env file if present. The returned bool reports whether one was found.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:             Get("APP_ENV", "production"),
		Port:               Get("PORT", "5000"),
		NominatimURL:       Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "map-routing-service/1.0"),
		OSRMURL:            Get("OSRM_URL", "http://router.project-osrm.org"),
		OSRMProfile:        Get("OSRM_PROFILE", "driving"),
		Geocoder:           strings.ToLower(Get("GEOCODER", "nominatim")),
		Router:             strings.ToLower(Get("ROUTER", "osrm")),
		ORSAPIKey:          os.Getenv("ORS_API_KEY"),
		ORSURL:             Get("ORS_URL", "https://api.openrouteservice.org"),
		ORSProfile:         Get("ORS_PROFILE", "driving-car"),
		ORSCountry:         os.Getenv("ORS_COUNTRY"),
		ArtifactDir:        Get("ARTIFACT_DIR", "data/maps"),
		GeocodeCache:       strings.ToLower(Get("GEOCODE_CACHE", "none")),
		DBPath:             Get("DB_PATH", "data/app.db"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.HTTPTimeout, err = GetDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HTTPMaxAttempts, err = GetInt("HTTP_MAX_ATTEMPTS", 1); err != nil {
		return nil, err
	}
	if cfg.MapZoom, err = GetInt("MAP_ZOOM", 13); err != nil {
		return nil, err
	}

	if cfg.HTTPMaxAttempts < 1 {
		return nil, fmt.Errorf("load config: HTTP_MAX_ATTEMPTS must be >= 1, got %d", cfg.HTTPMaxAttempts)
	}

	if cfg.Geocoder != "nominatim" && cfg.Geocoder != "ors" {
		return nil, fmt.Errorf("load config: unknown GEOCODER %q", cfg.Geocoder)
	}
	if cfg.Router != "osrm" && cfg.Router != "ors" {
		return nil, fmt.Errorf("load config: unknown ROUTER %q", cfg.Router)
	}
	if (cfg.Geocoder == "ors" || cfg.Router == "ors") && strings.TrimSpace(cfg.ORSAPIKey) == "" {
		return nil, fmt.Errorf("load config: ORS_API_KEY is required when GEOCODER or ROUTER is ors")
	}

	switch cfg.GeocodeCache {
	case "none", "sqlite":
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("load config: DATABASE_URL is required when GEOCODE_CACHE=postgres")
		}
	default:
		return nil, fmt.Errorf("load config: unknown GEOCODE_CACHE %q", cfg.GeocodeCache)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return d, nil
}
