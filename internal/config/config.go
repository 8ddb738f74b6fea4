package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"heater_dashboard/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix scopes environment overrides, e.g. DASH_DEVICE_ORIGIN.
const envPrefix = "DASH"

// Config is the typed, validated runtime configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	DB     DBConfig
	Device DeviceConfig
	Sync   SyncConfig
	Charts ChartsConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// DBConfig points at the notice store. The default DSN is an in-memory
// SQLite database, nothing survives a restart.
type DBConfig struct {
	Path       string
	MaxNotices int
}

// DeviceConfig controls base URL resolution and request timeouts.
type DeviceConfig struct {
	Origin    string
	DevOrigin string
	DevHost   string
	Timeout   time.Duration
}

type SyncConfig struct {
	Interval  time.Duration
	Retention int
}

type ChartsConfig struct {
	Width       int
	Height      int
	MaxItems    int
	LabelStride int
	Axes        map[string]Axis
}

// Axis holds the seed bounds of one chart.
type Axis struct {
	MinValue float64 `mapstructure:"min_value"`
	MaxValue float64 `mapstructure:"max_value"`
	GridStep float64 `mapstructure:"grid_step"`
	Unit     string  `mapstructure:"unit"`
	Color    string  `mapstructure:"color"`
}

// DefaultAxes mirrors the seed bounds the device firmware was tuned for.
func DefaultAxes() map[string]Axis {
	return map[string]Axis{
		"temperature": {MinValue: 30, MaxValue: 150, GridStep: 10, Unit: "℃", Color: "ff0000"},
		"output":      {MinValue: -5, MaxValue: 200, GridStep: 50, Unit: "", Color: "0000ff"},
		"heater":      {MinValue: 0, MaxValue: 1, GridStep: 0.25, Unit: "", Color: "00ff00"},
		"health":      {MinValue: 0, MaxValue: 50, GridStep: 10, Unit: "ms", Color: "ffa000"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("db.path", "file::memory:?cache=shared")
	v.SetDefault("db.max_notices", 1000)
	v.SetDefault("device.origin", "http://localhost:8080")
	v.SetDefault("device.dev_origin", "http://localhost:8080")
	v.SetDefault("device.dev_host", "http://esp-grey")
	v.SetDefault("device.timeout", "5s")
	v.SetDefault("sync.interval", "1s")
	v.SetDefault("sync.retention", 120)
	v.SetDefault("charts.width", 640)
	v.SetDefault("charts.height", 240)
	v.SetDefault("charts.max_items", 15)
	v.SetDefault("charts.label_stride", 1)
}

// Read builds a viper instance from <dir>/config.yml, an optional .env file and
// DASH_* environment variables. A missing config file is not an error.
func Read(dir string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load extracts and validates a Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:            v.GetString("port"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Log: LogConfig{Level: strings.ToLower(strings.TrimSpace(v.GetString("log.level")))},
		DB:  DBConfig{Path: v.GetString("db.path"), MaxNotices: v.GetInt("db.max_notices")},
		Device: DeviceConfig{
			Origin:    strings.TrimRight(v.GetString("device.origin"), "/"),
			DevOrigin: strings.TrimRight(v.GetString("device.dev_origin"), "/"),
			DevHost:   strings.TrimRight(v.GetString("device.dev_host"), "/"),
			Timeout:   v.GetDuration("device.timeout"),
		},
		Sync: SyncConfig{
			Interval:  v.GetDuration("sync.interval"),
			Retention: v.GetInt("sync.retention"),
		},
		Charts: ChartsConfig{
			Width:       v.GetInt("charts.width"),
			Height:      v.GetInt("charts.height"),
			MaxItems:    v.GetInt("charts.max_items"),
			LabelStride: v.GetInt("charts.label_stride"),
			Axes:        DefaultAxes(),
		},
	}

	if v.IsSet("charts.axes") {
		overrides := map[string]Axis{}
		if err := v.UnmarshalKey("charts.axes", &overrides); err != nil {
			return Config{}, fmt.Errorf("parse charts.axes: %w", err)
		}
		for name, axis := range overrides {
			cfg.Charts.Axes[strings.ToLower(name)] = axis
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise surface as runtime faults.
func (c Config) Validate() error {
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.Device.Origin == "" {
		return errors.New("device.origin must not be empty")
	}
	if c.Device.Timeout <= 0 {
		return errors.New("device.timeout must be > 0")
	}
	if c.Sync.Interval <= 0 {
		return errors.New("sync.interval must be > 0")
	}
	if c.DB.MaxNotices < 0 {
		return errors.New("db.max_notices must be >= 0")
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return errors.New("charts.width and charts.height must be > 0")
	}
	if c.Charts.MaxItems <= 0 {
		return errors.New("charts.max_items must be > 0")
	}
	for name, axis := range c.Charts.Axes {
		if axis.MaxValue <= axis.MinValue {
			return fmt.Errorf("charts.axes.%s: max_value must be greater than min_value", name)
		}
		if axis.GridStep <= 0 {
			return fmt.Errorf("charts.axes.%s: grid_step must be > 0", name)
		}
	}
	return nil
}
