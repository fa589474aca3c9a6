package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	AdminToken  string `mapstructure:"ADMIN_TOKEN"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	SessionTTLMinutes    int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Restaurant operating parameters (minutes are from midnight).
	RestaurantOpenMinute    int `mapstructure:"RESTAURANT_OPEN_MINUTE"`
	RestaurantCloseMinute   int `mapstructure:"RESTAURANT_CLOSE_MINUTE"`
	RestaurantSlotInterval  int `mapstructure:"RESTAURANT_SLOT_INTERVAL"`
	RestaurantSlotCapacity  int `mapstructure:"RESTAURANT_SLOT_CAPACITY"`
	ReminderLeadTimeMinutes int `mapstructure:"REMINDER_LEAD_TIME_MINUTES"`

	// Weather advisory collaborator.
	WeatherAPIURL         string `mapstructure:"WEATHER_API_URL"`
	WeatherTimeoutSeconds int    `mapstructure:"WEATHER_TIMEOUT_SECONDS"`
	RestaurantLat         string `mapstructure:"RESTAURANT_LAT"`
	RestaurantLng         string `mapstructure:"RESTAURANT_LNG"`

	RestaurantName     string `mapstructure:"RESTAURANT_NAME"`
	ReminderWebhookURL string `mapstructure:"REMINDER_WEBHOOK_URL"`
	LexiconPath        string `mapstructure:"LEXICON_PATH"`
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
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("RESTAURANT_OPEN_MINUTE", 660)   // 11:00
	viper.SetDefault("RESTAURANT_CLOSE_MINUTE", 1320) // 22:00
	viper.SetDefault("RESTAURANT_SLOT_INTERVAL", 30)
	viper.SetDefault("RESTAURANT_SLOT_CAPACITY", 50)
	viper.SetDefault("REMINDER_LEAD_TIME_MINUTES", 120)
	viper.SetDefault("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("WEATHER_TIMEOUT_SECONDS", 3)
	viper.SetDefault("RESTAURANT_LAT", "19.0760")
	viper.SetDefault("RESTAURANT_LNG", "72.8777")
	viper.SetDefault("RESTAURANT_NAME", "Tablewala")
	viper.SetDefault("REMINDER_WEBHOOK_URL", "")
	viper.SetDefault("LEXICON_PATH", "")

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
