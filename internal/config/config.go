package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atomicstack/popular-movies/internal/app"
	"github.com/atomicstack/popular-movies/internal/logging"
	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

// BuildAPIKey is the fallback API key baked in at build time. It is never
// shown as a flag default:
//
//	go build -ldflags "-X github.com/atomicstack/popular-movies/internal/config.BuildAPIKey=..."
var BuildAPIKey string

// EnvPrefix namespaces environment overrides, e.g. POPULAR_MOVIES_API_KEY.
const EnvPrefix = "POPULAR_MOVIES"

const redacted = "REDACTED"

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	c.App = c.App.Redacted()
	flags := make(map[string]string, len(c.Flags))
	for k, v := range c.Flags {
		flags[k] = v
	}
	if flags[keyAPIKey] != "" {
		flags[keyAPIKey] = redacted
	}
	c.Flags = flags
	return c
}

const (
	keyConfig         = "config"
	keyAPIKey         = "api-key"
	keyBaseURL        = "base-url"
	keyLanguage       = "language"
	keySort           = "sort"
	keyColumns        = "columns"
	keyWidth          = "width"
	keyHeight         = "height"
	keyFooter         = "footer"
	keyTimeout        = "timeout"
	keyConnectivity   = "connectivity"
	keyStatusInterval = "status-interval"
	keyLogFile        = "log-file"
	keyLogLevel       = "log-level"
	keyTrace          = "trace"
)

// BindFlags registers every setting on fs. Flag defaults double as the
// configuration defaults.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "path to a YAML config file")
	fs.String(keyAPIKey, "", "movie database API key (defaults to the key built into the binary)")
	fs.String(keyBaseURL, tmdb.DefaultBaseURL, "API base URL for movie endpoints")
	fs.String(keyLanguage, "", "optional language for titles and overviews (e.g. en-US)")
	fs.String(keySort, tmdb.Popularity.Segment(), "initial sort order (popular or top_rated)")
	fs.Int(keyColumns, 3, "number of grid columns")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, false, "enable footer hint row")
	fs.Duration(keyTimeout, 30*time.Second, "HTTP request timeout")
	fs.String(keyConnectivity, string(netcheck.ModeInterface), "connectivity check (interface, probe or always)")
	fs.Duration(keyStatusInterval, 5*time.Second, "how often the header connectivity indicator refreshes (0 disables)")
	fs.String(keyLogFile, "", "path to the log file")
	fs.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
}

// NewFlagSet returns a flag set with every setting registered.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("popular-movies", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	BindFlags(fs)
	return fs
}

// LoadArgs parses args against a fresh flag set. Environment variables are
// read from the process environment.
func LoadArgs(args []string) (Config, error) {
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err}
	}
	return FromFlags(fs, args)
}

// FromFlags resolves configuration from already parsed flags, the
// environment, an optional config file and defaults, in that order of
// precedence.
func FromFlags(fs *pflag.FlagSet, args []string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	configFile := strings.TrimSpace(v.GetString(keyConfig))
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &UsageError{Err: fmt.Errorf("read config %s: %w", configFile, err)}
		}
	}

	sortOpt, err := tmdb.ParseSortOption(v.GetString(keySort))
	if err != nil {
		return Config{}, &UsageError{Err: err}
	}
	timeout, err := duration(v, keyTimeout)
	if err != nil {
		return Config{}, err
	}
	statusInterval, err := duration(v, keyStatusInterval)
	if err != nil {
		return Config{}, err
	}

	apiKey := strings.TrimSpace(v.GetString(keyAPIKey))
	if apiKey == "" {
		apiKey = strings.TrimSpace(BuildAPIKey)
	}

	cfg := Config{
		App: app.Config{
			APIKey:         apiKey,
			BaseURL:        strings.TrimSpace(v.GetString(keyBaseURL)),
			Language:       strings.TrimSpace(v.GetString(keyLanguage)),
			Sort:           sortOpt,
			Columns:        v.GetInt(keyColumns),
			Width:          v.GetInt(keyWidth),
			Height:         v.GetInt(keyHeight),
			ShowFooter:     v.GetBool(keyFooter),
			Timeout:        timeout,
			Connectivity:   netcheck.Mode(strings.ToLower(strings.TrimSpace(v.GetString(keyConnectivity)))),
			StatusInterval: statusInterval,
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Level:    strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
			Trace:    v.GetBool(keyTrace),
		},
		ConfigFile: configFile,
		Flags:      make(map[string]string),
		Args:       append([]string(nil), args...),
	}
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = v.GetString(f.Name)
	})
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &UsageError{Err: fmt.Errorf("%s: %w", key, err)}
	}
	return d, nil
}

// UsageError marks a configuration problem. The process exits with status 2
// for these.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// IsUsageError reports whether err stems from bad configuration.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate ensures the configuration can start the application.
func Validate(cfg Config) error {
	var problems []string
	if cfg.App.APIKey == "" {
		problems = append(problems, fmt.Sprintf("an API key is required (--%s or %s_API_KEY)", keyAPIKey, EnvPrefix))
	} else if _, err := tmdb.NewURLBuilder(cfg.App.BaseURL, cfg.App.APIKey); err != nil {
		problems = append(problems, err.Error())
	}
	if !cfg.App.Connectivity.Valid() {
		modes := make([]string, 0, len(netcheck.Modes()))
		for _, m := range netcheck.Modes() {
			modes = append(modes, string(m))
		}
		problems = append(problems, fmt.Sprintf("connectivity must be one of %s (got %q)", strings.Join(modes, ", "), cfg.App.Connectivity))
	}
	if cfg.App.Columns <= 0 {
		problems = append(problems, fmt.Sprintf("columns must be > 0 (got %d)", cfg.App.Columns))
	}
	if cfg.App.Width < 0 {
		problems = append(problems, fmt.Sprintf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		problems = append(problems, fmt.Sprintf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("timeout must be > 0 (got %s)", cfg.App.Timeout))
	}
	if cfg.App.StatusInterval < 0 {
		problems = append(problems, fmt.Sprintf("status-interval must be >= 0 (got %s)", cfg.App.StatusInterval))
	}
	if cfg.Logging.Level != "" && !validLogLevels[cfg.Logging.Level] {
		problems = append(problems, fmt.Sprintf("invalid log level %q", cfg.Logging.Level))
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &UsageError{Err: errors.New(strings.Join(problems, "; "))}
}

// Apply configures the shared logger from cfg.
func (c Config) Apply() {
	logging.Configure(c.Logging.FilePath, c.Logging.Level)
	logging.SetTraceEnabled(c.Logging.Trace)
}
