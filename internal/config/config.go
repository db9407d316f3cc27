package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	OpenRouter OpenRouterConfig
	WaveSpeed  WaveSpeedConfig
	Kling      KlingConfig
	Video      VideoConfig
	Gateway    GatewayConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ApiDomain string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	GeneratePerMin int
	VideoPerHour   int
	ExportPerHour  int
}

type OpenRouterConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
}

type WaveSpeedConfig struct {
	APIKey  string
	BaseURL string
}

type KlingConfig struct {
	APIKey  string
	BaseURL string
}

type VideoConfig struct {
	Dir             string
	DefaultProvider string
	BatchDelaySec   int
}

type GatewayConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("OPENROUTER_API_KEY")
	readSecret("WAVESPEED_API_KEY")
	readSecret("KLING_API_KEY")
	readSecret("JWT_SECRET")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.api_domain", "API_DOMAIN")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	_ = viper.BindEnv("openrouter.base_url", "OPENROUTER_BASE_URL")
	_ = viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	_ = viper.BindEnv("openrouter.max_retries", "OPENROUTER_MAX_RETRIES")
	_ = viper.BindEnv("wavespeed.api_key", "WAVESPEED_API_KEY")
	_ = viper.BindEnv("wavespeed.base_url", "WAVESPEED_BASE_URL")
	_ = viper.BindEnv("kling.api_key", "KLING_API_KEY")
	_ = viper.BindEnv("kling.base_url", "KLING_BASE_URL")
	_ = viper.BindEnv("video.dir", "VIDEO_DIR")
	_ = viper.BindEnv("video.default_provider", "VIDEO_DEFAULT_PROVIDER")
	_ = viper.BindEnv("video.batch_delay_sec", "VIDEO_BATCH_DELAY_SEC")
	_ = viper.BindEnv("gateway.enabled", "GATEWAY_ENABLED")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("ratelimit.generate_per_min", 20)
	viper.SetDefault("ratelimit.video_per_hour", 30)
	viper.SetDefault("ratelimit.export_per_hour", 20)

	// OpenRouter defaults
	viper.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("openrouter.model", "anthropic/claude-3.5-sonnet")
	viper.SetDefault("openrouter.max_retries", 3)

	// Video provider defaults
	viper.SetDefault("wavespeed.base_url", "https://api.wavespeed.ai")
	viper.SetDefault("kling.base_url", "https://api-singapore.klingai.com")
	viper.SetDefault("video.dir", "./videos")
	viper.SetDefault("video.default_provider", "wavespeed")
	viper.SetDefault("video.batch_delay_sec", 3)

	// Gateway defaults
	viper.SetDefault("gateway.enabled", false)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			ApiDomain: viper.GetString("server.api_domain"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("jwt.secret"),
		},
		RateLimit: RateLimitConfig{
			GeneratePerMin: viper.GetInt("ratelimit.generate_per_min"),
			VideoPerHour:   viper.GetInt("ratelimit.video_per_hour"),
			ExportPerHour:  viper.GetInt("ratelimit.export_per_hour"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:     viper.GetString("openrouter.api_key"),
			BaseURL:    viper.GetString("openrouter.base_url"),
			Model:      viper.GetString("openrouter.model"),
			MaxRetries: viper.GetInt("openrouter.max_retries"),
		},
		WaveSpeed: WaveSpeedConfig{
			APIKey:  viper.GetString("wavespeed.api_key"),
			BaseURL: viper.GetString("wavespeed.base_url"),
		},
		Kling: KlingConfig{
			APIKey:  viper.GetString("kling.api_key"),
			BaseURL: viper.GetString("kling.base_url"),
		},
		Video: VideoConfig{
			Dir:             viper.GetString("video.dir"),
			DefaultProvider: viper.GetString("video.default_provider"),
			BatchDelaySec:   viper.GetInt("video.batch_delay_sec"),
		},
		Gateway: GatewayConfig{
			Enabled: viper.GetBool("gateway.enabled"),
		},
	}

	return cfg, nil
}
