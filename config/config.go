package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-level configuration, sourced from an optional
// tributary.yaml and TRIBUTARY_* environment variables. Provider keys are
// deliberately optional; components report their absence at execution time.
type Config struct {
	ListenAddr   string `mapstructure:"listen_addr"`
	DefaultModel string `mapstructure:"default_model"`

	GoogleAIAPIKey string `mapstructure:"googleai_api_key"`
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	GroqAPIKey     string `mapstructure:"groq_api_key"`
	OllamaHost     string `mapstructure:"ollama_host"`

	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
}

// Load reads configuration with env vars taking precedence over the config
// file. A missing config file is fine; defaults cover everything.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("tributary")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/tributary")

	v.SetEnvPrefix("TRIBUTARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be registered for AutomaticEnv to surface them in Unmarshal.
	v.SetDefault("googleai_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("groq_api_key", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("default_model", "gemini")
	v.SetDefault("ollama_host", "http://localhost:11434")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Settings flattens provider credentials into the key-value shape component
// factories consume.
func (c Config) Settings() map[string]string {
	return map[string]string{
		"googleai_api_key": c.GoogleAIAPIKey,
		"openai_api_key":   c.OpenAIAPIKey,
		"groq_api_key":     c.GroqAPIKey,
		"ollama_host":      c.OllamaHost,
		"smtp_host":        c.SMTPHost,
		"smtp_port":        c.SMTPPort,
	}
}
