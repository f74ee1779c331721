// Package config loads configuration from the environment and an optional
// YAML file, and wires the process logger.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names for the text-generation backend.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// Text generation
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Speech to text (OpenAI Whisper; falls back to OpenAIAPIKey)
	WhisperAPIKey string

	// Video download basic auth
	DownloadUser string
	DownloadPass string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the shape of the optional YAML config file. Values from the
// file sit beneath the environment: an env var always wins.
type fileConfig struct {
	LLMProvider  string `yaml:"llm_provider"`
	LLMModel     string `yaml:"llm_model"`
	OllamaHost   string `yaml:"ollama_host"`
	DownloadUser string `yaml:"download_user"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`
}

// Load reads configuration from the environment, merged over the optional
// YAML file at path (ignored when path is empty).
func Load(path string) (Config, error) {
	var file fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		LLMProvider:     getEnv("APUNTES_LLM_PROVIDER", or(file.LLMProvider, ProviderOpenAI)),
		LLMModel:        getEnv("APUNTES_LLM_MODEL", or(file.LLMModel, "gpt-4")),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", or(file.OllamaHost, "http://localhost:11434")),

		WhisperAPIKey: getEnv("APUNTES_WHISPER_API_KEY", ""),

		DownloadUser: getEnv("APUNTES_DOWNLOAD_USER", file.DownloadUser),
		DownloadPass: getEnv("APUNTES_DOWNLOAD_PASS", ""),

		LogFile:  getEnv("APUNTES_LOG_FILE", file.LogFile),
		LogLevel: parseLogLevel(getEnv("APUNTES_LOG_LEVEL", or(file.LogLevel, "INFO"))),
	}

	if cfg.WhisperAPIKey == "" {
		cfg.WhisperAPIKey = cfg.OpenAIAPIKey
	}

	return cfg, nil
}

// ValidateLLM checks that the configured text-generation provider is usable.
// Called once before any stage runs so a missing key fails fast instead of
// surfacing mid-pipeline.
func (c Config) ValidateLLM() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOllama, ProviderBedrock:
		// Ollama is keyless; Bedrock resolves credentials through the
		// standard AWS chain.
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}
	return nil
}

// ValidateTranscription checks that speech-to-text can be called.
func (c Config) ValidateTranscription() error {
	if c.WhisperAPIKey == "" {
		return errors.New("APUNTES_WHISPER_API_KEY or OPENAI_API_KEY is required for transcription")
	}
	return nil
}

// ValidateDownload checks that the authenticated download can be made.
// Every missing variable is reported in one error.
func (c Config) ValidateDownload() error {
	var missing []string
	if c.DownloadUser == "" {
		missing = append(missing, "APUNTES_DOWNLOAD_USER")
	}
	if c.DownloadPass == "" {
		missing = append(missing, "APUNTES_DOWNLOAD_PASS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("download credentials missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func or(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
