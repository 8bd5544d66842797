package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Shipping ShippingConfig
	Tax      TaxConfig
	Checkout CheckoutConfig
	Features FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HEARTHSIDE_APP_ENV" required:"true"`
	Port         string `envconfig:"HEARTHSIDE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HEARTHSIDE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HEARTHSIDE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HEARTHSIDE_DB_DSN"`
	Driver string `envconfig:"HEARTHSIDE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HEARTHSIDE_DB_HOST"`
	LegacyPort     int    `envconfig:"HEARTHSIDE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HEARTHSIDE_DB_USER"`
	LegacyPassword string `envconfig:"HEARTHSIDE_DB_PASSWORD"`
	LegacyName     string `envconfig:"HEARTHSIDE_DB_NAME"`
	LegacySSLMode  string `envconfig:"HEARTHSIDE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HEARTHSIDE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HEARTHSIDE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HEARTHSIDE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HEARTHSIDE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HEARTHSIDE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"HEARTHSIDE_REDIS_PASSWORD"`
	DB           int           `envconfig:"HEARTHSIDE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HEARTHSIDE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HEARTHSIDE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HEARTHSIDE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HEARTHSIDE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HEARTHSIDE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies identity tokens minted by the external auth provider.
// This service never issues tokens of its own.
type JWTConfig struct {
	Secret string `envconfig:"HEARTHSIDE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"HEARTHSIDE_JWT_ISSUER" required:"true"`
}

type ShippingConfig struct {
	FreeThresholdCents   int `envconfig:"HEARTHSIDE_SHIPPING_FREE_THRESHOLD_CENTS" default:"5000"`
	RemoteSurchargeCents int `envconfig:"HEARTHSIDE_SHIPPING_REMOTE_SURCHARGE_CENTS" default:"500"`
}

type TaxConfig struct {
	RateBasisPoints int `envconfig:"HEARTHSIDE_TAX_RATE_BASIS_POINTS" default:"800"`
}

type CheckoutConfig struct {
	SubmitTimeout time.Duration `envconfig:"HEARTHSIDE_CHECKOUT_SUBMIT_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HEARTHSIDE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
