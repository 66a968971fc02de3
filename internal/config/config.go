package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// UnsetAPIKey is the sentinel value meaning no remote story service is configured.
const UnsetAPIKey = "not-set"

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Story     StoryConfig
	Book      BookConfig
	Payment   PaymentConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// StoryConfig configures the remote chat-completion call used for story text.
type StoryConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	AppURL      string
	AppTitle    string
}

// RemoteEnabled reports whether a usable API key is configured.
func (s StoryConfig) RemoteEnabled() bool {
	k := strings.TrimSpace(s.APIKey)
	return k != "" && k != UnsetAPIKey
}

type BookConfig struct {
	OutputDir      string
	StaticDir      string
	DownloadPrefix string
}

type PaymentConfig struct {
	Link  string
	Price string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 120)
	viper.SetDefault("MAX_BODY_BYTES", 10<<20)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("OPENROUTER_API_KEY", UnsetAPIKey)
	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("STORY_MODEL", "openai/gpt-4o-mini")
	viper.SetDefault("STORY_MAX_TOKENS", 2000)
	viper.SetDefault("STORY_TEMPERATURE", 0.8)
	viper.SetDefault("STORY_TIMEOUT_SECONDS", 60)
	viper.SetDefault("APP_URL", "https://adventuresof.app")
	viper.SetDefault("APP_TITLE", "Adventures Of")

	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("STATIC_DIR", "public")
	viper.SetDefault("DOWNLOAD_PREFIX", "/output")

	viper.SetDefault("PAYMENT_LINK", "https://cash.app/$AprilJetson")
	viper.SetDefault("PAYMENT_PRICE", "$12")

	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("PORT"),
			Host:           viper.GetString("HOST"),
			Environment:    viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:    time.Duration(viper.GetInt("SERVER_READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout:   time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT_SECONDS")) * time.Second,
			MaxBodyBytes:   viper.GetInt64("MAX_BODY_BYTES"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Story: StoryConfig{
			APIKey:      viper.GetString("OPENROUTER_API_KEY"),
			BaseURL:     viper.GetString("OPENROUTER_BASE_URL"),
			Model:       viper.GetString("STORY_MODEL"),
			MaxTokens:   viper.GetInt("STORY_MAX_TOKENS"),
			Temperature: float32(viper.GetFloat64("STORY_TEMPERATURE")),
			Timeout:     time.Duration(viper.GetInt("STORY_TIMEOUT_SECONDS")) * time.Second,
			AppURL:      viper.GetString("APP_URL"),
			AppTitle:    viper.GetString("APP_TITLE"),
		},
		Book: BookConfig{
			OutputDir:      viper.GetString("OUTPUT_DIR"),
			StaticDir:      viper.GetString("STATIC_DIR"),
			DownloadPrefix: downloadPrefix(viper.GetString("DOWNLOAD_PREFIX")),
		},
		Payment: PaymentConfig{
			Link:  viper.GetString("PAYMENT_LINK"),
			Price: viper.GetString("PAYMENT_PRICE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// downloadPrefix normalizes the URL path books are served under. The root
// path would shadow the API routes, so it falls back to /output.
func downloadPrefix(v string) string {
	v = strings.Trim(strings.TrimSpace(v), "/")
	if v == "" {
		return "/output"
	}
	return "/" + v
}
