package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/medanat/reviewboard/internal/domain"
)

const (
	DefaultConfigFileName = ".webhookd.yaml"
	DefaultNATSURL        = "nats://127.0.0.1:4222"
	DefaultSubject        = "events.domain"
)

// Duration wraps time.Duration so YAML configs can use "5s"-style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type DeliveryConfig struct {
	MaxRetries  int      `yaml:"max_retries"`
	DelayUnit   Duration `yaml:"delay_unit"`
	Workers     int      `yaml:"workers"`
	HTTPTimeout Duration `yaml:"http_timeout"`
}

type Config struct {
	DatabaseURL string          `yaml:"database_url"`
	NATSURL     string          `yaml:"nats_url"`
	Subject     string          `yaml:"subject"`
	Owner       domain.OwnerRef `yaml:"owner"`
	Delivery    DeliveryConfig  `yaml:"delivery"`
}

func DefaultConfig() *Config {
	return &Config{
		NATSURL: DefaultNATSURL,
		Subject: DefaultSubject,
		Owner:   domain.OwnerRef{Kind: "site", ID: "1"},
		Delivery: DeliveryConfig{
			MaxRetries:  3,
			DelayUnit:   Duration(5 * time.Second),
			Workers:     8,
			HTTPTimeout: Duration(30 * time.Second),
		},
	}
}

func (c *Config) Validate() error {
	if c.NATSURL == "" {
		return fmt.Errorf("nats_url is required")
	}
	if c.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if c.Owner.IsZero() {
		return fmt.Errorf("owner kind and id are required")
	}
	if c.Delivery.MaxRetries < 0 {
		return fmt.Errorf("delivery.max_retries must not be negative")
	}
	if c.Delivery.DelayUnit <= 0 {
		return fmt.Errorf("delivery.delay_unit must be positive")
	}
	if c.Delivery.Workers <= 0 {
		return fmt.Errorf("delivery.workers must be positive")
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if dsn := os.Getenv("WEBHOOKD_DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if url := os.Getenv("WEBHOOKD_NATS_URL"); url != "" {
		cfg.NATSURL = url
	}
	if subject := os.Getenv("WEBHOOKD_SUBJECT"); subject != "" {
		cfg.Subject = subject
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
