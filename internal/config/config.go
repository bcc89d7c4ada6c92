package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stahnma/gh-search/internal/github"
)

// Keys double as environment variable names.
const (
	KeyToken    = "GITHUB_TOKEN"
	KeyDebug    = "DEBUG"
	KeyLogFile  = "GH_SEARCH_LOG_FILE"
	KeyDebounce = "GH_SEARCH_DEBOUNCE"
	KeyPerPage  = "GH_SEARCH_PER_PAGE"
)

// Defaults.
const (
	DefaultLogFile  = "gh-search.log"
	DefaultDebounce = 500 * time.Millisecond
)

// Config holds application configuration loaded from environment variables
// and command line flags.
type Config struct {
	GitHubToken string
	DebugMode   bool
	LogFile     string
	Debounce    time.Duration
	PerPage     int
}

// New returns a viper instance reading the environment, with defaults set.
// Flags bound to it with BindPFlag take precedence over the environment.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyDebug, "")
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyDebounce, DefaultDebounce.String())
	v.SetDefault(KeyPerPage, github.DefaultPerPage)
	return v
}

// Load builds a Config from v.
func Load(v *viper.Viper) (Config, error) {
	debounce, err := time.ParseDuration(strings.TrimSpace(v.GetString(KeyDebounce)))
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", KeyDebounce, err)
	}
	if debounce <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyDebounce, debounce)
	}

	perPage := v.GetInt(KeyPerPage)
	if !github.ValidPerPage(perPage) {
		return Config{}, fmt.Errorf("%s must be one of %v, got %q", KeyPerPage, github.PerPageOptions, v.GetString(KeyPerPage))
	}

	logFile := strings.TrimSpace(v.GetString(KeyLogFile))
	if logFile == "" {
		logFile = DefaultLogFile
	}

	return Config{
		GitHubToken: strings.TrimSpace(v.GetString(KeyToken)),
		DebugMode:   truthy(v.GetString(KeyDebug)),
		LogFile:     logFile,
		Debounce:    debounce,
		PerPage:     perPage,
	}, nil
}

// LoadDotEnv copies KEY=value pairs from the file at path into the
// environment. Variables that are already set win, and a missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() (Config, error) {
	return Load(New())
}

// truthy treats anything but "", "0" and "false" as set.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "0" && strings.ToLower(s) != "false"
}
