// Package config holds startup configuration for the LearnMint service.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// Config is the resolved service configuration. Built once in the serve
// command and passed down explicitly.
type Config struct {
	Addr      string
	CachePath string
	LogLevel  string
	LogFormat string

	LLM         llm.Config
	Credentials CredentialSet
	Trivia      TriviaConfig
}

// TriviaConfig holds API keys for the passthrough integrations.
type TriviaConfig struct {
	NewsAPIKey    string
	YouTubeAPIKey string
	BooksAPIKey   string

	// Timeout bounds each outbound passthrough request.
	Timeout time.Duration
}

// FromViper builds a Config from bound flags/env/config file.
func FromViper(v *viper.Viper) Config {
	llmCfg := llm.DefaultConfig()

	if p := v.GetString("llm-provider"); p != "" {
		llmCfg.Provider = p
	}
	if m := v.GetString("llm-model"); m != "" {
		llmCfg.Gemini.Model = m
		llmCfg.OpenAI.Model = m
		llmCfg.Anthropic.Model = m
		llmCfg.OpenRouter.Model = m
	}
	if m := v.GetString("tts-model"); m != "" {
		llmCfg.Gemini.SpeechModel = m
	}
	if d := v.GetDuration("llm-timeout"); d > 0 {
		llmCfg.Timeout = d
	}

	creds := ResolveCredentials(v)
	creds.Apply(&llmCfg)

	return Config{
		Addr:        v.GetString("addr"),
		CachePath:   v.GetString("cache"),
		LogLevel:    v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
		LLM:         llmCfg,
		Credentials: creds,
		Trivia: TriviaConfig{
			NewsAPIKey:    creds.News.Key,
			YouTubeAPIKey: creds.YouTube.Key,
			BooksAPIKey:   creds.Books.Key,
			Timeout:       10 * time.Second,
		},
	}
}
