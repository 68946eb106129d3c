package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	JSON  bool
	Debug bool
}

// Config is read once at startup and handed to constructors explicitly.
type Config struct {
	App AppConfig
	DB  DBConfig
	LLM LLMConfig
	Log LogConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "Resume Critique")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_port", ":3000")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("max_file_size", 10*1024*1024)

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")

	v.SetDefault("llm_provider", ProviderOpenAI)
	v.SetDefault("max_tokens", 2000)
	v.SetDefault("temperature", 0.3)
	v.SetDefault("llm_request_timeout", "90s")
	v.SetDefault("llm_max_retries", 1)
	v.SetDefault("llm_retry_base_delay", "1s")
	v.SetDefault("llm_retry_max_delay", "30s")
	v.SetDefault("score_policy", "clamp")
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v, filling in defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm_provider")))
	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app_name"),
			Env:         v.GetString("app_env"),
			Port:        v.GetString("app_port"),
			BaseURL:     v.GetString("app_url"),
			UploadDir:   v.GetString("upload_dir"),
			MaxFileSize: v.GetInt64("max_file_size"),
		},
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
			TimeZone: v.GetString("db_timezone"),
		},
		LLM: LLMConfig{
			Provider:       provider,
			APIKey:         providerAPIKey(v, provider),
			BaseURL:        providerBaseURL(v, provider),
			Model:          providerModel(v, provider),
			MaxTokens:      v.GetInt("max_tokens"),
			Temperature:    float32(v.GetFloat64("temperature")),
			RequestTimeout: v.GetDuration("llm_request_timeout"),
			MaxRetries:     v.GetInt("llm_max_retries"),
			RetryBaseDelay: v.GetDuration("llm_retry_base_delay"),
			RetryMaxDelay:  v.GetDuration("llm_retry_max_delay"),
			ScorePolicy:    v.GetString("score_policy"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("log_json"),
			Debug: v.GetBool("log_debug"),
		},
	}

	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}
	return cfg, nil
}

func providerAPIKey(v *viper.Viper, provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return v.GetString("openrouter_api_key")
	case ProviderGemini:
		return v.GetString("gemini_api_key")
	default:
		return v.GetString("openai_api_key")
	}
}

// providerModel returns MODEL_NAME, or the provider's default model when unset.
func providerModel(v *viper.Viper, provider string) string {
	if model := strings.TrimSpace(v.GetString("model_name")); model != "" {
		return model
	}
	return defaultModel(provider)
}

func providerBaseURL(v *viper.Viper, provider string) string {
	var url string
	switch provider {
	case ProviderOpenRouter:
		url = v.GetString("openrouter_base_url")
	case ProviderGemini:
		url = v.GetString("gemini_base_url")
	default:
		url = v.GetString("openai_base_url")
	}
	if url == "" {
		url = defaultBaseURL(provider)
	}
	return strings.TrimRight(url, "/")
}
