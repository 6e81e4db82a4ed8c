package tether

import "os"

type WorldConfig struct {
	RedisAddress  string
	RedisPassword string
	SaveSlot      string
	LogLevel      string
}

func GetWorldConfig() WorldConfig {
	return WorldConfig{
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SaveSlot:      getEnv("TETHER_SAVE_SLOT", "default"),
		LogLevel:      getEnv("TETHER_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
