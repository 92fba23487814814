package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/weave/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "weave.json"

	// DefaultPort is the default dev server port.
	DefaultPort = 7070

	// DefaultHost is the default dev server host.
	DefaultHost = "localhost"

	// DefaultApp is the demo app served when none is configured.
	DefaultApp = "counter"

	// DefaultInterval is the default pause between scheduler slices.
	DefaultInterval = "16ms"

	// DefaultSlice is the default time budget of one scheduler slice.
	DefaultSlice = "8ms"

	// DefaultYieldThreshold is the default remaining time below which the
	// work loop yields.
	DefaultYieldThreshold = "1ms"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "weave"

	// DefaultExportDir is the default directory for rendered snapshots.
	DefaultExportDir = "dist"
)

// Config represents the complete weave.json configuration.
type Config struct {
	// App is the name of the demo app to serve or render.
	App string `json:"app,omitempty"`

	// Server contains dev server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Scheduler contains work loop pacing.
	Scheduler SchedulerConfig `json:"scheduler,omitempty"`

	// Debug contains development checks.
	Debug DebugConfig `json:"debug,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Export contains snapshot export targets.
	Export ExportConfig `json:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains dev server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// SchedulerConfig contains scheduler timings as duration strings ("16ms").
type SchedulerConfig struct {
	// Interval is the pause between slices.
	Interval string `json:"interval,omitempty"`

	// Slice is the time budget of one slice.
	Slice string `json:"slice,omitempty"`

	// YieldThreshold is the remaining slice time below which the work loop
	// yields.
	YieldThreshold string `json:"yieldThreshold,omitempty"`
}

// DebugConfig contains development checks.
type DebugConfig struct {
	// HookOrder logs a warning when a component changes its hook count.
	HookOrder bool `json:"hookOrder,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics on the dev server.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// ExportConfig contains snapshot export settings.
type ExportConfig struct {
	// Dir is the local output directory.
	Dir string `json:"dir,omitempty"`

	// S3 is used for s3:// targets without an explicit bucket.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 export settings.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		App: DefaultApp,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Scheduler: SchedulerConfig{
			Interval:       DefaultInterval,
			Slice:          DefaultSlice,
			YieldThreshold: DefaultYieldThreshold,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Export: ExportConfig{
			Dir: DefaultExportDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for weave.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("W121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("W120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("W120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("W120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.App == "" {
		c.App = DefaultApp
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	// Scheduler
	if c.Scheduler.Interval == "" {
		c.Scheduler.Interval = DefaultInterval
	}
	if c.Scheduler.Slice == "" {
		c.Scheduler.Slice = DefaultSlice
	}
	if c.Scheduler.YieldThreshold == "" {
		c.Scheduler.YieldThreshold = DefaultYieldThreshold
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}

	// Export
	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("W122").
			WithDetail("server.port must be between 0 and 65535")
	}

	durations := []struct {
		name  string
		value string
		zero  bool // Whether zero is allowed
	}{
		{"scheduler.interval", c.Scheduler.Interval, false},
		{"scheduler.slice", c.Scheduler.Slice, false},
		{"scheduler.yieldThreshold", c.Scheduler.YieldThreshold, true},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return errors.New("W122").
				WithDetail(d.name + ": " + err.Error()).
				WithExample(`"16ms"`)
		}
		if v < 0 || (v == 0 && !d.zero) {
			return errors.New("W122").
				WithDetail(d.name + " must be positive")
		}
	}
	return nil
}

// Address returns the listen address of the dev server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the dev server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Interval returns the parsed scheduler interval.
func (c *Config) Interval() time.Duration {
	return parseDuration(c.Scheduler.Interval, DefaultInterval)
}

// Slice returns the parsed scheduler slice budget.
func (c *Config) Slice() time.Duration {
	return parseDuration(c.Scheduler.Slice, DefaultSlice)
}

// YieldThreshold returns the parsed yield threshold.
func (c *Config) YieldThreshold() time.Duration {
	return parseDuration(c.Scheduler.YieldThreshold, DefaultYieldThreshold)
}

// parseDuration parses s, falling back to def when s is empty or invalid.
// Validate reports invalid values.
func parseDuration(s, def string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	d, _ := time.ParseDuration(def)
	return d
}

// ExportPath returns the absolute path to the export directory.
func (c *Config) ExportPath() string {
	if filepath.IsAbs(c.Export.Dir) {
		return c.Export.Dir
	}
	return filepath.Join(c.Dir(), c.Export.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing weave.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W121").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// Resolve loads path when it is set, otherwise the nearest weave.json above
// the working directory, otherwise the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("W120").Wrap(err)
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
