package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported judge providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrMissingAPIKey is returned when no judge credential is configured
var ErrMissingAPIKey = errors.New("judge API key is not set: export OPENAI_API_KEY (or GEMINI_API_KEY for the gemini provider) or add it to .env")

// Config is the process configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Judge   JudgeConfig   `mapstructure:"judge"`
	Targets TargetsConfig `mapstructure:"targets"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// JudgeConfig configures the external judging service
type JudgeConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TargetsConfig points at an optional target catalog file
type TargetsConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.debug", false)
	v.SetDefault("judge.provider", ProviderOpenAI)
	v.SetDefault("judge.model", "")
	v.SetDefault("judge.base_url", "")
	v.SetDefault("judge.api_key", "")
	v.SetDefault("judge.timeout", time.Duration(0))
	v.SetDefault("targets.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// New returns a viper instance wired to the environment and the optional config file.
// An empty configFile searches for drawday.yaml in the working directory and $HOME.
func New(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("DRAWDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "DRAWDAY_SERVER_PORT", "PORT")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("drawday")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	return v
}

// Load reads the config file (when present) and the .env file in dotenvDir, then
// decodes everything into a Config. Variables already set in the process
// environment win over .env entries.
func Load(v *viper.Viper, dotenvDir string) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dotenv, err := readDotenv(dotenvDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Judge.APIKey == "" {
		cfg.Judge.APIKey = apiKeyFor(cfg.Judge.Provider, dotenv)
	}
	return &cfg, nil
}

// Validate checks the configuration is usable for serving
func (c *Config) Validate() error {
	switch c.Judge.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown judge provider %q", c.Judge.Provider)
	}
	if c.Judge.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func apiKeyFor(provider string, dotenv *viper.Viper) string {
	names := []string{"OPENAI_API_KEY"}
	if provider == ProviderGemini {
		names = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	if dotenv == nil {
		return ""
	}
	for _, name := range names {
		if val := dotenv.GetString(name); val != "" {
			return val
		}
	}
	return ""
}

func readDotenv(dir string) (*viper.Viper, error) {
	if dir == "" {
		return nil, nil
	}
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat .env: %w", err)
	}
	d := viper.New()
	d.SetConfigFile(path)
	d.SetConfigType("env")
	if err := d.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return d, nil
}
