// Package config loads the agent, inference and server settings
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderEcho      = "echo"
)

const (
	DefaultModel         = "claude-4-sonnet"
	DefaultInferenceURL  = "https://us.inference.heroku.com"
	DefaultAgentName     = "heroku_demo_agent"
	DefaultPort          = 8000
	DefaultMaxToolRounds = 8
	DefaultMaxTokens     = 1024
	DefaultTemperature   = 0.7
	DefaultMaxBodyBytes  = 1 << 20
)

// DotenvFile is read by Load when present
var DotenvFile = ".env"

// Inference points at the remote model
type Inference struct {
	Provider string `yaml:"provider"`
	URL      string `yaml:"url"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// RequiresKey reports whether the provider needs a credential
func (c Inference) RequiresKey() bool {
	return c.Provider != ProviderEcho
}

// Agent holds the defaults applied to every constructed agent
type Agent struct {
	DefaultName   string  `yaml:"default_name"`
	MaxToolRounds int     `yaml:"max_tool_rounds"`
	MaxTokens     int     `yaml:"max_tokens"`
	Temperature   float32 `yaml:"temperature"`
}

// Server configures the HTTP API
type Server struct {
	Port         int    `yaml:"port"`
	APIKey       string `yaml:"api_key"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

type Config struct {
	Inference Inference `yaml:"inference"`
	Agent     Agent     `yaml:"agent"`
	Server    Server    `yaml:"server"`
}

// Default returns the built in configuration
func Default() Config {
	return Config{
		Inference: Inference{
			Provider: ProviderOpenAI,
			URL:      DefaultInferenceURL,
			Model:    DefaultModel,
		},
		Agent: Agent{
			DefaultName:   DefaultAgentName,
			MaxToolRounds: DefaultMaxToolRounds,
			MaxTokens:     DefaultMaxTokens,
			Temperature:   DefaultTemperature,
		},
		Server: Server{
			Port:         DefaultPort,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Load builds the configuration from defaults, the .env file, the optional
// YAML file at path and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(DotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: loading %s: %w", DotenvFile, err)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML document at path, fields missing from the file keep their value
func (c *Config) LoadFile(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bs, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment looked up by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}
	if v, ok := get("INFERENCE_API_KEY"); ok {
		c.Inference.APIKey = v
	} else if v, ok := get("INFERENCE_KEY"); ok {
		c.Inference.APIKey = v
	}
	if v, ok := get("MODEL_ID"); ok {
		c.Inference.Model = v
	}
	if v, ok := get("INFERENCE_URL"); ok {
		c.Inference.URL = v
	}
	if v, ok := get("INFERENCE_PROVIDER"); ok {
		c.Inference.Provider = strings.ToLower(v)
	}
	if v, ok := get("AGENT_NAME"); ok {
		c.Agent.DefaultName = v
	}
	if v, ok := get("API_KEY"); ok {
		c.Server.APIKey = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Server.Port},
		{"AGENT_MAX_TOOL_ROUNDS", &c.Agent.MaxToolRounds},
		{"AGENT_MAX_TOKENS", &c.Agent.MaxTokens},
	}
	for _, field := range ints {
		v, ok := get(field.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", field.key, v, err)
		}
		*field.dst = n
	}
	if v, ok := get("AGENT_TEMPERATURE"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("config: invalid AGENT_TEMPERATURE %q: %w", v, err)
		}
		c.Agent.Temperature = float32(f)
	}
	return nil
}

// Validate checks the value ranges, a missing API key is not an error here
func (c Config) Validate() error {
	switch c.Inference.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderEcho:
	default:
		return fmt.Errorf("config: unknown inference provider %q", c.Inference.Provider)
	}
	if c.Inference.Model == "" {
		return errors.New("config: model is empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Server.Port)
	}
	if c.Agent.MaxToolRounds < 0 {
		return fmt.Errorf("config: max tool rounds %d is negative", c.Agent.MaxToolRounds)
	}
	if c.Agent.MaxTokens <= 0 {
		return fmt.Errorf("config: max tokens %d must be positive", c.Agent.MaxTokens)
	}
	return nil
}

// Addr returns the listen address of the HTTP server
func (c Server) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
