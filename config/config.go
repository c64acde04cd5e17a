package config

import "os"

// Config carries every recognized environment option. Absence of a
// credential toggles a degraded path instead of crashing: no OpenAI key
// fails AI actions fast, no Resend key disables digest sending, no
// database URL switches to the in-memory token store and file snapshot.
type Config struct {
	DatabaseURL    string
	OpenAIKey      string
	OpenAIBaseURL  string
	ChatModel      string
	ImageModel     string
	ResendKey      string
	DigestFrom     string
	DigestTo       string
	SiteURL        string
	AuthURL        string
	AuthServiceKey string
	Port           string
}

func Load() Config {
	cfg := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:      getenv("OPENAI_CHAT_MODEL", "gpt-4o"),
		ImageModel:     getenv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		ResendKey:      os.Getenv("RESEND_API_KEY"),
		DigestFrom:     getenv("DIGEST_FROM", "AAVM Dashboard <noreply@mail.asianamericanvoices.us>"),
		DigestTo:       getenv("DIGEST_TO", "digest@asianamericanvoices.us"),
		SiteURL:        getenv("SITE_URL", "http://localhost:8080"),
		AuthURL:        os.Getenv("AUTH_URL"),
		AuthServiceKey: os.Getenv("AUTH_SERVICE_KEY"),
		Port:           getenv("PORT", "8080"),
	}
	return cfg
}

func (c Config) HasDatabase() bool { return c.DatabaseURL != "" }
func (c Config) HasOpenAI() bool   { return c.OpenAIKey != "" }
func (c Config) HasResend() bool   { return c.ResendKey != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
