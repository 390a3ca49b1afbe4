package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Seed     SeedConfig
	Pricing  PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FREMED_APP_ENV" default:"dev"`
	Port         string `envconfig:"FREMED_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FREMED_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FREMED_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points GORM at the process-local SQLite store. The default DSN is
// an in-memory database, so every boot starts from the seeded catalog.
type DBConfig struct {
	DSN string `envconfig:"FREMED_DB_DSN" default:"file::memory:?cache=shared"`

	MaxOpenConns int `envconfig:"FREMED_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns int `envconfig:"FREMED_DB_MAX_IDLE_CONNS" default:"1"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FREMED_REDIS_URL"`
	Address      string        `envconfig:"FREMED_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"FREMED_REDIS_PASSWORD"`
	DB           int           `envconfig:"FREMED_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FREMED_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FREMED_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FREMED_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FREMED_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FREMED_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FREMED_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FREMED_JWT_ISSUER" default:"fremed"`
	ExpirationMinutes int    `envconfig:"FREMED_JWT_EXPIRATION_MINUTES" default:"480"`
	SessionTTLMinutes int    `envconfig:"FREMED_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns the session record TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FREMED_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FREMED_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FREMED_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FREMED_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FREMED_ARGON_KEY_LEN" default:"32"`
}

type SeedConfig struct {
	Enabled      bool   `envconfig:"FREMED_SEED_ENABLED" default:"true"`
	UserPassword string `envconfig:"FREMED_SEED_USER_PASSWORD" default:"123456"`
}

// PricingConfig carries the delivery-fee tiers and the flat promotion
// discount rate. All amounts are VND.
type PricingConfig struct {
	StandardDeliveryFee   int `envconfig:"FREMED_PRICING_STANDARD_DELIVERY_FEE" default:"30000"`
	ExpressDeliveryFee    int `envconfig:"FREMED_PRICING_EXPRESS_DELIVERY_FEE" default:"50000"`
	FreeDeliveryThreshold int `envconfig:"FREMED_PRICING_FREE_DELIVERY_THRESHOLD" default:"500000"`
	PromotionPercent      int `envconfig:"FREMED_PRICING_PROMOTION_PERCENT" default:"10"`
}
