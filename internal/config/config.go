package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	CORSOrigins []string

	UploadDir      string
	MaxUploadBytes int64

	AuthSecret string

	// LLM endpoint. The key lives here and is handed to the client
	// explicitly; nothing reads it from the environment at call time.
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMTimeout   time.Duration
	LLMMaxTokens int

	OCRLang    string
	OCRTimeout time.Duration

	// TTL for the duplicate-request result cache; 0 disables it.
	GradeCacheTTL time.Duration
}

func FromEnv() Config {
	return Config{
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("DB_DSN"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		UploadDir:      envOr("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 16<<20),

		AuthSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
		LLMBaseURL:   envOr("LLM_BASE_URL", "https://api.mistral.ai/v1"),
		LLMModel:     envOr("LLM_MODEL", "mistral-medium"),
		LLMTimeout:   envSeconds("LLM_TIMEOUT_SEC", 30),
		LLMMaxTokens: int(envInt64("LLM_MAX_TOKENS", 1000)),

		OCRLang:    envOr("OCR_LANG", "eng"),
		OCRTimeout: envSeconds("OCR_TIMEOUT_SEC", 60),

		GradeCacheTTL: envSeconds("GRADE_CACHE_TTL_SEC", 0),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envSeconds(k string, def int64) time.Duration {
	return time.Duration(envInt64(k, def)) * time.Second
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
