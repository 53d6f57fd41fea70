package siripush

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// UpstreamConfig points at the notifier's subscription API and tells it where
// to push. An empty SubscriptionURL runs the registry in local-only mode
// (useful for development and tests).
type UpstreamConfig struct {
	SubscriptionURL string `yaml:"subscriptionURL" validate:"omitempty,url"`
	PushBaseURL     string `yaml:"pushBaseURL" validate:"omitempty,url"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
}

type HistoryConfig struct {
	MaxPerSubscription int `yaml:"maxPerSubscription" validate:"gte=0"`
}

// PushConfig bounds the webhook endpoint.
type PushConfig struct {
	RatePerSecond float64 `yaml:"ratePerSecond" validate:"gte=0"`
	Burst         int     `yaml:"burst" validate:"gte=0"`
	MaxBodyBytes  int64   `yaml:"maxBodyBytes" validate:"gte=0"`
}

type LogConfig struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Console bool   `yaml:"console"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Upstream UpstreamConfig `yaml:"upstream"`
	History  HistoryConfig  `yaml:"history"`
	Push     PushConfig     `yaml:"push"`
	Log      LogConfig      `yaml:"log"`
}

// LoadAppConfig reads and validates the YAML configuration. When path is
// empty a small list of conventional locations is tried.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "/etc/siri-push-monitor/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = 15000
	}
	if cfg.History.MaxPerSubscription == 0 {
		cfg.History.MaxPerSubscription = DefaultMaxPerSubscription
	}
	if cfg.Push.RatePerSecond == 0 {
		cfg.Push.RatePerSecond = 20
	}
	if cfg.Push.Burst == 0 {
		cfg.Push.Burst = 40
	}
	if cfg.Push.MaxBodyBytes == 0 {
		cfg.Push.MaxBodyBytes = 1 << 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
