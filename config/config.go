package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		_ = godotenv.Load()

		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN", "BOT_TOKEN")
		viper.BindEnv("db_path", "DB_PATH")
		viper.BindEnv("check_interval_minutes", "CHECK_INTERVAL_MINUTES")
		viper.BindEnv("notify_cooldown_hours", "NOTIFY_COOLDOWN_HOURS")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")

		viper.SetDefault("db_path", "alerts.db")
		viper.SetDefault("check_interval_minutes", 5)
		viper.SetDefault("notify_cooldown_hours", 24)
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}

// GetPositiveInt returns the configured integer for key. Missing, malformed
// or non-positive overrides fall back to the given default.
func GetPositiveInt(key string, fallback int) int {
	InitConfig()
	if value := viper.GetInt(key); value > 0 {
		return value
	}
	return fallback
}
