// Package config loads the run configuration from an INI file, .env,
// the process environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/logging"
	"os"
	"strconv"
	"strings"

	"github.com/go-viper/encoding/ini"
	"github.com/golang/geo/s2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "config.ini"

// Distance providers.
const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"
)

type Config struct {
	Provider    string
	GoogleMaps  GoogleMapsConfig
	ORS         ORSConfig
	Files       FilesConfig
	Destination DestinationConfig
	Logging     logging.Config
	Metrics     MetricsConfig
}

type GoogleMapsConfig struct {
	APIKey    string
	BatchSize int
}

type ORSConfig struct {
	APIKey  string
	BaseURL string
}

type FilesConfig struct {
	Input                 string
	OutputLGA             string
	OutputWeightedAverage string
}

type DestinationConfig struct {
	Latitude    float64
	Longitude   float64
	StateFilter string
}

type MetricsConfig struct {
	// Textfile, when set, receives Prometheus metrics at the end of the run.
	Textfile string
}

// Coordinates returns the destination as domain coordinates.
func (d DestinationConfig) Coordinates() domain.Coordinates {
	return domain.Coordinates{Lat: d.Latitude, Lon: d.Longitude}
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"provider":         "provider.name",
	"batch-size":       "googlemaps.batch_size",
	"input":            "files.input_filename",
	"output-lga":       "files.output_filename_lga",
	"output-summary":   "files.output_filename_weighted_average",
	"state":            "destination.state_filter",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"metrics-textfile": "metrics.textfile",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", ProviderGoogle)
	v.SetDefault("googlemaps.batch_size", 25)
	v.SetDefault("ors.base_url", "https://api.openrouteservice.org")
	v.SetDefault("files.output_filename_lga", "results_lga.csv")
	v.SetDefault("files.output_filename_weighted_average", "results_weighted_average.csv")
	v.SetDefault("destination.state_filter", domain.AllStates)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// LoadDotEnv loads a .env file into the process environment.
// It reports whether a file was found; a missing file is not an error.
func LoadDotEnv(path string) bool {
	if path == "" {
		path = ".env"
	}
	return godotenv.Load(path) == nil
}

// Load reads the configuration. Precedence, highest first: flags that were
// set, environment variables, the INI file, defaults. A missing file is only
// an error when path was given explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec("ini", ini.Codec{}); err != nil {
		return nil, fmt.Errorf("load config: register ini codec: %w", err)
	}

	v := viper.NewWithOptions(viper.WithCodecRegistry(codecs))
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
		if explicit || !missing {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("load config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	lat, err := requiredFloat(v, "destination.latitude")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	lng, err := requiredFloat(v, "destination.longitude")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &Config{
		Provider: strings.ToLower(strings.TrimSpace(v.GetString("provider.name"))),
		GoogleMaps: GoogleMapsConfig{
			APIKey:    v.GetString("googlemaps.api_key"),
			BatchSize: v.GetInt("googlemaps.batch_size"),
		},
		ORS: ORSConfig{
			APIKey:  v.GetString("ors.api_key"),
			BaseURL: v.GetString("ors.base_url"),
		},
		Files: FilesConfig{
			Input:                 v.GetString("files.input_filename"),
			OutputLGA:             v.GetString("files.output_filename_lga"),
			OutputWeightedAverage: v.GetString("files.output_filename_weighted_average"),
		},
		Destination: DestinationConfig{
			Latitude:    lat,
			Longitude:   lng,
			StateFilter: v.GetString("destination.state_filter"),
		},
		Logging: logging.Config{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			Output: v.GetString("logging.output"),
		},
		Metrics: MetricsConfig{
			Textfile: v.GetString("metrics.textfile"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// requiredFloat reads key as a number. Text that does not parse is an error,
// never 0.
func requiredFloat(v *viper.Viper, key string) (float64, error) {
	if !v.IsSet(key) {
		return 0, fmt.Errorf("%s is required", key)
	}
	raw := strings.TrimSpace(v.GetString(key))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", key, raw, err)
	}
	return f, nil
}

// Validate checks the values a run cannot do without.
func (c *Config) Validate() error {
	if c.GoogleMaps.BatchSize <= 0 {
		return fmt.Errorf("googlemaps.batch_size must be positive, got %d", c.GoogleMaps.BatchSize)
	}

	switch c.Provider {
	case ProviderGoogle:
		if strings.TrimSpace(c.GoogleMaps.APIKey) == "" {
			return errors.New("googlemaps.api_key is required")
		}
	case ProviderORS:
		if strings.TrimSpace(c.ORS.APIKey) == "" {
			return errors.New("ors.api_key is required")
		}
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", c.Provider, ProviderGoogle, ProviderORS)
	}

	if strings.TrimSpace(c.Files.Input) == "" {
		return errors.New("files.input_filename is required")
	}
	if strings.TrimSpace(c.Files.OutputLGA) == "" || strings.TrimSpace(c.Files.OutputWeightedAverage) == "" {
		return errors.New("output file names must be non-empty")
	}

	if !s2.LatLngFromDegrees(c.Destination.Latitude, c.Destination.Longitude).IsValid() {
		return fmt.Errorf("destination (%v, %v) is not a valid latitude/longitude",
			c.Destination.Latitude, c.Destination.Longitude)
	}

	return nil
}
