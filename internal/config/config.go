package config

import (
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval     = 10 * time.Millisecond
	DefaultLogDir       = "telemetry_logs"
	DefaultFlushEvery   = 100
	DefaultStatusEvery  = 100
	DefaultLogLevel     = "info"
	DefaultPhysicsName  = `Local\acpmf_physics`
	DefaultGraphicsName = `Local\acpmf_graphics`

	defaultEnvPrefix  = "ACTELEMETRY"
	defaultConfigName = "actelemetry"
)

type Config struct {
	Interval     time.Duration `mapstructure:"interval"`
	LogDir       string        `mapstructure:"log_dir"`
	FlushEvery   int           `mapstructure:"flush_every"`
	StatusEvery  int           `mapstructure:"status_every"`
	Monitor      bool          `mapstructure:"monitor"`
	Deadzone     float64       `mapstructure:"deadzone"`
	PhysicsName  string        `mapstructure:"physics_name"`
	GraphicsName string        `mapstructure:"graphics_name"`
	MetricsAddr  string        `mapstructure:"metrics_addr"`
	LogLevel     string        `mapstructure:"log_level"`
	Debug        bool          `mapstructure:"debug"`
	Verbose      bool          `mapstructure:"verbose"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"interval":      "interval",
	"log-dir":       "log_dir",
	"flush-every":   "flush_every",
	"status-every":  "status_every",
	"monitor":       "monitor",
	"deadzone":      "deadzone",
	"physics-name":  "physics_name",
	"graphics-name": "graphics_name",
	"metrics-addr":  "metrics_addr",
	"log-level":     "log_level",
	"debug":         "debug",
	"verbose":       "verbose",
}

func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{
		envPrefix: defaultEnvPrefix,
		args:      os.Args[1:],
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	// Define flags
	flags := pflag.NewFlagSet("actelemetry", pflag.ContinueOnError)
	flags.Duration("interval", DefaultInterval, "Interval between telemetry samples")
	flags.String("log-dir", DefaultLogDir, "Directory for session CSV files")
	flags.Int("flush-every", DefaultFlushEvery, "Flush the CSV file every N samples")
	flags.Int("status-every", DefaultStatusEvery, "Log a status line every N samples")
	flags.Bool("monitor", false, "Only monitor telemetry, do not write CSV")
	flags.Float64("deadzone", 0, "Steering deadzone (0 disables)")
	flags.String("physics-name", DefaultPhysicsName, "Name of the physics shared memory segment")
	flags.String("graphics-name", DefaultGraphicsName, "Name of the graphics shared memory segment")
	flags.String("metrics-addr", "", "Listen address for Prometheus metrics (empty disables)")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")

	if err := flags.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Load configuration from file
	v.SetEnvPrefix(o.envPrefix)
	v.AutomaticEnv()

	configPath := o.configPath
	if configPath == "" {
		configPath = os.Getenv(o.envPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		if home, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, defaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Override config file values with command line flags
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		if bindErr == nil {
			bindErr = v.BindPFlag(flagKeys[f.Name], f)
		}
	})
	if bindErr != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, bindErr)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if config.Debug {
		config.LogLevel = LogLevelDebug.String()
	} else if config.Verbose && (config.LogLevel == LogLevelWarning.String() || config.LogLevel == LogLevelError.String()) {
		config.LogLevel = LogLevelInfo.String()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_dir", DefaultLogDir)
	v.SetDefault("flush_every", DefaultFlushEvery)
	v.SetDefault("status_every", DefaultStatusEvery)
	v.SetDefault("monitor", false)
	v.SetDefault("deadzone", 0.0)
	v.SetDefault("physics_name", DefaultPhysicsName)
	v.SetDefault("graphics_name", DefaultGraphicsName)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, ValidationError{
			Field: "interval", Value: c.Interval, Reason: "must be positive",
		})
	}
	if c.FlushEvery <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, ValidationError{
			Field: "flush_every", Value: c.FlushEvery, Reason: "must be positive",
		})
	}
	if c.StatusEvery <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, ValidationError{
			Field: "status_every", Value: c.StatusEvery, Reason: "must be positive",
		})
	}
	if c.Deadzone < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, ValidationError{
			Field: "deadzone", Value: c.Deadzone, Reason: "must not be negative",
		})
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, ValidationError{
			Field: "log_level", Value: c.LogLevel, Reason: "must be one of debug, info, warning, error",
		})
	}

	return nil
}
