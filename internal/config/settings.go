package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Env         string
	Port        string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	LLMProvider   string
	GeminiAPIKey  string
	GeminiModel   string
	LLMTimeout    time.Duration
	LLMMaxRetries int

	QuestionCount int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LLM_MAX_RETRIES", 0)
	v.SetDefault("TEST_QUESTION_COUNT", 3)

	apiKey := v.GetString("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GOOGLE_API_KEY")
	}

	s := &Settings{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("PORT"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LLMProvider:   strings.ToLower(v.GetString("LLM_PROVIDER")),
		GeminiAPIKey:  apiKey,
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		LLMTimeout:    v.GetDuration("LLM_TIMEOUT"),
		LLMMaxRetries: v.GetInt("LLM_MAX_RETRIES"),
		QuestionCount: v.GetInt("TEST_QUESTION_COUNT"),
	}

	if s.LLMMaxRetries < 0 {
		s.LLMMaxRetries = 0
	}
	if s.QuestionCount <= 0 {
		s.QuestionCount = 3
	}
	if s.QuestionCount > 10 {
		s.QuestionCount = 10
	}

	return s, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
