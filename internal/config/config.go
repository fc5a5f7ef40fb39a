package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read once at startup and passed by reference into each
// component; request handlers never look up the environment themselves.
// Required secrets abort startup when missing.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`

	// Shared secret callers must present in the x-api-key header.
	APISecretKey string `envconfig:"API_SECRET_KEY" required:"true"`

	CRMSigningSecret string `envconfig:"CRM_HMAC_SECRET" required:"true"`
	CRMTargetURL     string `envconfig:"CRM_TARGET_URL" required:"true"`

	SerpAPIKey     string `envconfig:"SERPAPI_API_KEY" required:"true"`
	SearchLocation string `envconfig:"SEARCH_LOCATION" default:"Austin, Texas, United States"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	PersonaPath string `envconfig:"PERSONA_PATH" default:"prompts/persona.yaml"`

	ModelTimeout  time.Duration `envconfig:"MODEL_TIMEOUT" default:"30s"`
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"8s"`
	CRMTimeout    time.Duration `envconfig:"CRM_TIMEOUT" default:"10s"`

	LogDebug  bool `envconfig:"LOG_DEBUG" default:"false"`
	LogPretty bool `envconfig:"LOG_PRETTY" default:"false"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
