package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	VATRate decimal.Decimal

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	WSSendBuffer int
	SeedMenu     bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5001")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "deliciousbites.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("VAT_RATE", "0.14")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CHANNEL", "deliciousbites:events")
	v.SetDefault("WS_SEND_BUFFER", 64)
	v.SetDefault("SEED_MENU", true)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	vat, err := decimal.NewFromString(v.GetString("VAT_RATE"))
	if err != nil {
		return nil, fmt.Errorf("VAT_RATE: %w", err)
	}
	if vat.IsNegative() {
		return nil, fmt.Errorf("VAT_RATE must not be negative")
	}

	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		GinMode:        v.GetString("GIN_MODE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:          v.GetString("DB_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         ttl,
		VATRate:        vat,
		CORSOrigin:     v.GetString("CORS_ORIGIN"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisChannel:   v.GetString("REDIS_CHANNEL"),
		WSSendBuffer:   v.GetInt("WS_SEND_BUFFER"),
		SeedMenu:       v.GetBool("SEED_MENU"),
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = "deliciousbites-dev-secret"
	}
	if cfg.WSSendBuffer <= 0 {
		cfg.WSSendBuffer = 64
	}
	return cfg, nil
}

// InitDB opens the configured database. SQLite is used for development and tests, MySQL in production.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	default:
		db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg.DBDSN)), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
