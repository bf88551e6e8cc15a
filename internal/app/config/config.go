package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	LogLevel    string

	Lifecycle LifecycleConfig
	Scheduler SchedulerConfig
	Minio     MinioConfig
	Gemini    GeminiConfig
	Twilio    TwilioConfig

	JWT               JWTConfig
	Redis             RedisConfig
	PaymentWebhookKey string
	CORSOrigins       []string
}

type LifecycleConfig struct {
	StoreTimeout      time.Duration
	VATRate           string
	FixedSharePercent string
}

type SchedulerConfig struct {
	InvoiceRetrySpec string
	BatchSize        int
}

type MinioConfig struct {
	Endpoint  string
	Bucket    string
	UseSSL    bool
	AccessKey string `mapstructure:"-"`
	SecretKey string `mapstructure:"-"`
}

type GeminiConfig struct {
	Model  string
	APIKey string `mapstructure:"-"`
}

type TwilioConfig struct {
	From       string
	AccountSID string `mapstructure:"-"`
	AuthToken  string `mapstructure:"-"`
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

const (
	envRedisHost      = "REDIS_HOST"
	envRedisPort      = "REDIS_PORT"
	envRedisUser      = "REDIS_USER"
	envRedisPass      = "REDIS_PASSWORD"
	envJWTSecret      = "JWT_SECRET"
	envWebhookKey     = "PAYMENT_WEBHOOK_KEY"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envGeminiKey      = "GEMINI_API_KEY"
	envTwilioSID      = "TWILIO_ACCOUNT_SID"
	envTwilioToken    = "TWILIO_AUTH_TOKEN"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Lifecycle.StoreTimeout", "5s")
	viper.SetDefault("Lifecycle.VATRate", "0.15")
	viper.SetDefault("Scheduler.InvoiceRetrySpec", "@every 5m")
	viper.SetDefault("Scheduler.BatchSize", 100)
	viper.SetDefault("Gemini.Model", "gemini-1.5-flash")
}

// fromEnv fills secrets, which never live in the toml file.
func (cfg *Config) fromEnv() error {
	var err error

	secret := os.Getenv(envJWTSecret)
	if secret == "" {
		return fmt.Errorf("%s is required", envJWTSecret)
	}
	cfg.JWT = JWTConfig{
		Token:         secret,
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	cfg.PaymentWebhookKey = os.Getenv(envWebhookKey)
	cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)
	cfg.Gemini.APIKey = os.Getenv(envGeminiKey)
	cfg.Twilio.AccountSID = os.Getenv(envTwilioSID)
	cfg.Twilio.AuthToken = os.Getenv(envTwilioToken)
	return nil
}

// Validate checks the values the engine cannot run without.
func (cfg *Config) Validate() error {
	if cfg.PaymentWebhookKey == "" {
		return fmt.Errorf("%s is required", envWebhookKey)
	}
	if _, err := cfg.VATRate(); err != nil {
		return err
	}
	if _, err := cfg.FixedSharePercent(); err != nil {
		return err
	}
	if cfg.Scheduler.BatchSize <= 0 {
		return fmt.Errorf("Scheduler.BatchSize must be positive, got %d", cfg.Scheduler.BatchSize)
	}
	return nil
}

func (cfg *Config) VATRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(cfg.Lifecycle.VATRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Lifecycle.VATRate: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("Lifecycle.VATRate must not be negative")
	}
	return rate, nil
}

// FixedSharePercent is zero when unset, which keeps the per-service policy.
func (cfg *Config) FixedSharePercent() (decimal.Decimal, error) {
	if cfg.Lifecycle.FixedSharePercent == "" {
		return decimal.Zero, nil
	}
	p, err := decimal.NewFromString(cfg.Lifecycle.FixedSharePercent)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Lifecycle.FixedSharePercent: %w", err)
	}
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("Lifecycle.FixedSharePercent must be within 0..100")
	}
	return p, nil
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
