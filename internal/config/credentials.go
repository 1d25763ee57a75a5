package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mrgarvitoffice/LearnMint-Ai-sub000/internal/llm"
)

// Credential is one resolved API key for a capability family.
type Credential struct {
	// Family names what the key unlocks: "text", "speech", "news",
	// "youtube", "books".
	Family string

	// Key is the resolved key value; empty when nothing was configured.
	Key string

	// Source records which setting the key came from, for diagnostics.
	Source string

	// Required marks families the service cannot run without.
	Required bool
}

// CredentialSet is the immutable record of every API key the service uses,
// resolved once at startup. Each capability family reads an ordered list of
// settings and takes the first non-empty value; nothing re-reads the
// environment after this.
type CredentialSet struct {
	Text    Credential
	Speech  Credential
	News    Credential
	YouTube Credential
	Books   Credential
}

// ResolveCredentials builds the CredentialSet from bound configuration.
// Ordered fallbacks: a capability-specific setting wins over the shared
// Google key, so one key can serve text, speech, youtube and books in the
// minimal setup.
func ResolveCredentials(v *viper.Viper) CredentialSet {
	shared := v.GetString("google-api-key")

	pick := func(family string, required bool, candidates ...[2]string) Credential {
		for _, c := range candidates {
			if c[1] != "" {
				return Credential{Family: family, Key: c[1], Source: c[0], Required: required}
			}
		}
		return Credential{Family: family, Required: required}
	}

	return CredentialSet{
		Text: pick("text", true,
			[2]string{"llm-api-key", v.GetString("llm-api-key")},
			[2]string{"google-api-key", shared},
		),
		Speech: pick("speech", false,
			[2]string{"tts-api-key", v.GetString("tts-api-key")},
			[2]string{"google-api-key", shared},
		),
		News: pick("news", false,
			[2]string{"news-api-key", v.GetString("news-api-key")},
		),
		YouTube: pick("youtube", false,
			[2]string{"youtube-api-key", v.GetString("youtube-api-key")},
			[2]string{"google-api-key", shared},
		),
		Books: pick("books", false,
			[2]string{"books-api-key", v.GetString("books-api-key")},
			[2]string{"google-api-key", shared},
		),
	}
}

// Apply copies the text/speech credentials into the provider config for
// whichever provider is selected.
func (cs CredentialSet) Apply(cfg *llm.Config) {
	switch cfg.Provider {
	case "gemini":
		cfg.Gemini.APIKey = cs.Text.Key
	case "openai":
		cfg.OpenAI.APIKey = cs.Text.Key
	case "anthropic":
		cfg.Anthropic.APIKey = cs.Text.Key
	case "openrouter":
		cfg.OpenRouter.APIKey = cs.Text.Key
	}
}

// placeholders are values that look like copy-pasted template keys.
var placeholders = []string{
	"your_api_key",
	"your-api-key",
	"changeme",
	"replace_me",
	"demo",
	"xxxx",
}

// Warnings reports shape problems with the resolved keys. A misconfigured
// optional key must not stop the service from booting, so these surface as
// startup log warnings only; the real check is deferred to the first call
// that fails.
func (cs CredentialSet) Warnings() []string {
	var out []string
	for _, c := range []Credential{cs.Text, cs.Speech, cs.News, cs.YouTube, cs.Books} {
		if c.Key == "" {
			if c.Required {
				out = append(out, fmt.Sprintf("no %s API key configured; generation requests will fail", c.Family))
			} else {
				out = append(out, fmt.Sprintf("no %s API key configured; %s features are disabled", c.Family, c.Family))
			}
			continue
		}
		if msg := checkShape(c); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func checkShape(c Credential) string {
	lower := strings.ToLower(c.Key)
	for _, p := range placeholders {
		if strings.Contains(lower, p) {
			return fmt.Sprintf("%s API key from %s looks like a placeholder value", c.Family, c.Source)
		}
	}
	if len(c.Key) < 12 {
		return fmt.Sprintf("%s API key from %s is suspiciously short", c.Family, c.Source)
	}
	return ""
}
