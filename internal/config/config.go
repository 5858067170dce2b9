package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Log       LogConfig
	Store     StoreConfig
	Redis     RedisConfig
	Reminders ReminderConfig
	UI        UIConfig
	CORS      CORSConfig
}

type LogConfig struct {
	Level  string
	Format string
	// File is where the terminal client writes its log, since it owns stdout.
	File string
}

type StoreConfig struct {
	Driver string
	Path   string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

type ReminderConfig struct {
	Interval time.Duration
}

type UIConfig struct {
	PageSize  int
	ExportDir string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads file (a dotenv file, usually ".env") and the environment.
// A missing file is fine; the environment and defaults still apply.
func Load(file string) (*Config, error) {
	if file == "" {
		file = ".env"
	}
	_ = godotenv.Load(file)

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
		File:   v.GetString("LOG_FILE"),
	}

	cfg.Store = StoreConfig{
		Driver: v.GetString("STORE_DRIVER"),
		Path:   v.GetString("STORE_PATH"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		Prefix:   v.GetString("REDIS_PREFIX"),
	}

	cfg.Reminders = ReminderConfig{
		Interval: parseDuration(v.GetString("REMINDER_INTERVAL"), time.Minute),
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 6
	}
	cfg.UI = UIConfig{
		PageSize:  pageSize,
		ExportDir: v.GetString("EXPORT_DIR"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "./studyman.log")

	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_PATH", "./study.json")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "studyman:")

	v.SetDefault("REMINDER_INTERVAL", "1m")
	v.SetDefault("PAGE_SIZE", 6)
	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("ALLOWED_ORIGINS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
