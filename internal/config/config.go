// Package config loads settings from defaults, ~/.config/briefly/config.toml and
// BRIEFLY_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "briefly"
	envPrefix  = "BRIEFLY"
)

const (
	keyBaseURL           = "api.base_url"
	keyCountriesPath     = "api.countries_path"
	keyIntelligencePath  = "api.intelligence_path"
	keyPingPath          = "api.ping_path"
	keyRequestsPerMinute = "api.requests_per_minute"
	keyRequestTimeout    = "api.request_timeout"
	keyMainTimeout       = "fetch.main_timeout"
	keyProbeTimeout      = "fetch.probe_timeout"
	keyColdStartAfter    = "fetch.cold_start_after"
	keyProgressInterval  = "fetch.progress_interval"
	keyProgressStep      = "fetch.progress_step"
	keyRegistryAttempts  = "registry.attempts"
	keyRegistryBackoff   = "registry.backoff"
	keyResolverMetric    = "resolver.metric"
	keySizeClassesFile   = "resolver.size_classes_file"
	keyLogLevel          = "log.level"
)

type Config struct {
	API      APIConfig
	Fetch    FetchConfig
	Registry RegistryConfig
	Resolver ResolverConfig
	Log      LogConfig
}

type APIConfig struct {
	BaseURL           string
	CountriesPath     string
	IntelligencePath  string
	PingPath          string
	RequestsPerMinute int
	RequestTimeout    time.Duration
}

type FetchConfig struct {
	MainTimeout      time.Duration
	ProbeTimeout     time.Duration
	ColdStartAfter   time.Duration
	ProgressInterval time.Duration
	ProgressStep     int
}

type RegistryConfig struct {
	Attempts int
	Backoff  time.Duration
}

type ResolverConfig struct {
	Metric          string
	SizeClassesFile string
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyBaseURL, "http://localhost:8000")
	v.SetDefault(keyCountriesPath, "/countries")
	v.SetDefault(keyIntelligencePath, "/intelligence/{code}")
	v.SetDefault(keyPingPath, "/ping")
	v.SetDefault(keyRequestsPerMinute, 0)
	v.SetDefault(keyRequestTimeout, 30*time.Second)
	v.SetDefault(keyMainTimeout, 3*time.Minute)
	v.SetDefault(keyProbeTimeout, 2*time.Minute)
	v.SetDefault(keyColdStartAfter, 15*time.Second)
	v.SetDefault(keyProgressInterval, 2*time.Second)
	v.SetDefault(keyProgressStep, 5)
	v.SetDefault(keyRegistryAttempts, 3)
	v.SetDefault(keyRegistryBackoff, time.Second)
	v.SetDefault(keyResolverMetric, "planar")
	v.SetDefault(keySizeClassesFile, "")
	v.SetDefault(keyLogLevel, "warn")
}

// NewViper returns a viper instance with defaults and env binding in place. configFile
// overrides the default search path when non-empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, ".config", configDir))

	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
		setDefaults(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL:           strings.TrimSpace(v.GetString(keyBaseURL)),
			CountriesPath:     v.GetString(keyCountriesPath),
			IntelligencePath:  v.GetString(keyIntelligencePath),
			PingPath:          v.GetString(keyPingPath),
			RequestsPerMinute: v.GetInt(keyRequestsPerMinute),
			RequestTimeout:    v.GetDuration(keyRequestTimeout),
		},
		Fetch: FetchConfig{
			MainTimeout:      v.GetDuration(keyMainTimeout),
			ProbeTimeout:     v.GetDuration(keyProbeTimeout),
			ColdStartAfter:   v.GetDuration(keyColdStartAfter),
			ProgressInterval: v.GetDuration(keyProgressInterval),
			ProgressStep:     v.GetInt(keyProgressStep),
		},
		Registry: RegistryConfig{
			Attempts: v.GetInt(keyRegistryAttempts),
			Backoff:  v.GetDuration(keyRegistryBackoff),
		},
		Resolver: ResolverConfig{
			Metric:          strings.ToLower(strings.TrimSpace(v.GetString(keyResolverMetric))),
			SizeClassesFile: strings.TrimSpace(v.GetString(keySizeClassesFile)),
		},
		Log: LogConfig{
			Level: strings.TrimSpace(v.GetString(keyLogLevel)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%s: %w", keyBaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s: %q must be an absolute http or https url", keyBaseURL, c.API.BaseURL)
	}

	for key, path := range map[string]string{
		keyCountriesPath:    c.API.CountriesPath,
		keyIntelligencePath: c.API.IntelligencePath,
		keyPingPath:         c.API.PingPath,
	} {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("%s: path is required", key)
		}
	}
	if c.API.RequestsPerMinute < 0 {
		return fmt.Errorf("%s: must not be negative", keyRequestsPerMinute)
	}

	for key, d := range map[string]time.Duration{
		keyRequestTimeout:   c.API.RequestTimeout,
		keyMainTimeout:      c.Fetch.MainTimeout,
		keyProbeTimeout:     c.Fetch.ProbeTimeout,
		keyColdStartAfter:   c.Fetch.ColdStartAfter,
		keyProgressInterval: c.Fetch.ProgressInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s: duration must be positive, got %s", key, d)
		}
	}
	if c.Fetch.ProgressStep <= 0 {
		return fmt.Errorf("%s: must be positive", keyProgressStep)
	}

	if c.Registry.Attempts < 1 {
		return fmt.Errorf("%s: at least one attempt is required", keyRegistryAttempts)
	}
	if c.Registry.Backoff < 0 {
		return fmt.Errorf("%s: must not be negative", keyRegistryBackoff)
	}

	switch c.Resolver.Metric {
	case "planar", "central-angle":
	default:
		return fmt.Errorf("%s: unknown metric %q (want planar or central-angle)", keyResolverMetric, c.Resolver.Metric)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%s: %w", keyLogLevel, err)
	}

	return nil
}
