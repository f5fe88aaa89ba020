package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alovak/cardflow-swipe/internal/expiry"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Config is a configuration for the reader application
type Config struct {
	HTTPAddr string `toml:"http_addr" yaml:"http_addr"`
	// ISO8583Addr is the acquirer host; empty disables authorization.
	ISO8583Addr string        `toml:"iso8583_addr" yaml:"iso8583_addr"`
	SendTimeout time.Duration `toml:"send_timeout" yaml:"send_timeout"`
	// Amount (minor units) and Currency (ISO 4217 numeric) of the purchase
	// authorized for every accepted swipe.
	Amount   int64  `toml:"amount" yaml:"amount"`
	Currency string `toml:"currency" yaml:"currency"`

	// ExpiryTZ is an IANA timezone name for expiry computations (e.g., "Australia/Sydney").
	ExpiryTZ string `toml:"expiry_tz" yaml:"expiry_tz"`

	// PANHashKey peppers the PAN fingerprints written to logs.
	PANHashKey string `toml:"pan_hash_key" yaml:"pan_hash_key"`

	// CVVKey enables the CVV1 check; CVVOffset/CVVWidth locate the value
	// inside the discretionary data.
	CVVKey    string `toml:"cvv_key" yaml:"cvv_key"`
	CVVOffset int    `toml:"cvv_offset" yaml:"cvv_offset"`
	CVVWidth  int    `toml:"cvv_width" yaml:"cvv_width"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:    "localhost:9091",
		SendTimeout: 10 * time.Second,
		Currency:    "840",
		PANHashKey:  "dev-secret-pepper",
		CVVWidth:    3,
		LogLevel:    "info",
	}
}

// LoadConfig reads a TOML or YAML file (picked by extension) over the
// defaults, then applies environment overrides. An empty path skips the
// file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			return nil, fmt.Errorf("config format not supported: %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("READER_HTTP_ADDR", c.HTTPAddr)
	c.ISO8583Addr = getenv("READER_ISO8583_ADDR", c.ISO8583Addr)
	c.ExpiryTZ = getenv("READER_EXPIRY_TZ", c.ExpiryTZ)
	c.PANHashKey = getenv("PAN_HASH_KEY", c.PANHashKey)
	c.CVVKey = getenv("CVK_DEMO", c.CVVKey)
	c.LogLevel = getenv("READER_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("READER_AMOUNT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Amount = n
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("config missing http_addr")
	}
	if c.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if c.ISO8583Addr != "" && c.Amount > 0 && len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-digit ISO 4217 code")
	}
	if c.CVVOffset < 0 {
		return fmt.Errorf("cvv_offset must not be negative")
	}
	if c.CVVWidth != 3 && c.CVVWidth != 4 {
		return fmt.Errorf("cvv_width must be 3 or 4")
	}
	if c.ExpiryTZ != "" {
		if _, err := time.LoadLocation(c.ExpiryTZ); err != nil {
			return fmt.Errorf("expiry_tz: %w", err)
		}
	}
	return nil
}

// ConfigureExpiry wires the expiry timezone from config.
func ConfigureExpiry(cfg *Config, logger *slog.Logger) {
	if cfg == nil || cfg.ExpiryTZ == "" {
		return
	}
	if loc, err := time.LoadLocation(cfg.ExpiryTZ); err == nil {
		expiry.SetDefaultExpiryLocation(loc)
	} else {
		logger.Info("invalid ExpiryTZ; using default UTC", slog.String("tz", cfg.ExpiryTZ), slog.Any("err", err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
