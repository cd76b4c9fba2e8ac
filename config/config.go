package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Planner session TTL in minutes. This is the host-side suspension
	// timeout: a session left waiting on user input past this window expires.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Provider credentials.
	TavilyAPIKey     string `mapstructure:"TAVILY_API_KEY"`
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	SerpAPIKey       string `mapstructure:"SERPAPI_API_KEY"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("TAVILY_API_KEY", "")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("SERPAPI_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
