package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Режимы выдачи ссылки resolve-эндпоинтом.
const (
	DeliveryPresign = "presign" // подписанная ссылка прямо в бакет
	DeliveryStream  = "stream"  // same-origin /stream?key=...
)

type Config struct {
	AppPort    string `mapstructure:"APP_PORT"`
	PublicBase string `mapstructure:"PUBLIC_BASE"` // база канонических ссылок; пусто -> origin запроса

	// --- S3/R2 ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	// --- выдача ---
	DeliveryMode    string `mapstructure:"DELIVERY_MODE"`     // presign | stream
	PresignTTLHours int    `mapstructure:"PRESIGN_TTL_HOURS"` // по умолчанию 24

	// --- Redis (опционально, только для watcher'а) ---
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- watcher / sweeper ---
	DropDir string `mapstructure:"DROP_DIR"`
	DryRun  bool   `mapstructure:"DRY_RUN"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  PublicBase: %s\n", c.PublicBase))

	// S3
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	if c.S3AccessKey != "" {
		sb.WriteString("  S3AccessKey: ********\n")
	} else {
		sb.WriteString("  S3AccessKey: (empty)\n")
	}
	if c.S3SecretKey != "" {
		sb.WriteString("  S3SecretKey: ********\n")
	} else {
		sb.WriteString("  S3SecretKey: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))

	sb.WriteString(fmt.Sprintf("  DeliveryMode: %s\n", c.DeliveryMode))
	sb.WriteString(fmt.Sprintf("  PresignTTLHours: %d\n", c.PresignTTLHours))

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  DropDir: %s\n", c.DropDir))
	sb.WriteString(fmt.Sprintf("  DryRun: %v\n", c.DryRun))

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT", "PUBLIC_BASE",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
		"DELIVERY_MODE", "PRESIGN_TTL_HOURS",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"DROP_DIR", "DRY_RUN",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("S3_BUCKET", "samples")
	v.SetDefault("DELIVERY_MODE", DeliveryStream)
	v.SetDefault("PRESIGN_TTL_HOURS", 24)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.DeliveryMode != DeliveryPresign && cfg.DeliveryMode != DeliveryStream {
		return nil, fmt.Errorf("unknown DELIVERY_MODE %q", cfg.DeliveryMode)
	}
	return &cfg, nil
}
