package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName         string   `json:"appname"`
	AppEnv          string   `json:"appenv"`
	AppPort         uint16   `json:"appport"`
	GinMode         string   `json:"ginmode"`
	DBHost          string   `json:"dbhost"`
	DBPort          uint16   `json:"dbport"`
	DBName          string   `json:"dbname"`
	DBUser          string   `json:"dbuser"`
	DBPass          string   `json:"dbpass"`
	DBSSLMode       string   `json:"dbsslmode"`
	TokenTTLMinutes int      `json:"token_ttl_minutes"`
	Timezone        string   `json:"timezone"`
	LogLevel        string   `json:"log_level"`
	KafkaBrokers    []string `json:"kafka_brokers"`
	KafkaTopic      string   `json:"kafka_topic"`
	RulesFile       string   `json:"rules_file"`
	GeoIPPath       string   `json:"geoip_path"`
}

var config *Config
var once sync.Once

// LoadConfig reads an optional .env file plus the process environment and
// returns a singleton Config.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded, using process environment")
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "5432"), 10, 16)
		ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
		if err != nil || ttl <= 0 {
			ttl = 60
		}

		config = &Config{
			AppName:         getEnv("APPNAME", "Gym Portal"),
			AppEnv:          os.Getenv("APPENV"),
			AppPort:         uint16(appPort),
			GinMode:         getEnv("GINMODE", "debug"),
			DBHost:          getEnv("DBHOST", "localhost"),
			DBPort:          uint16(dbPort),
			DBName:          os.Getenv("DBNAME"),
			DBUser:          os.Getenv("DBUSER"),
			DBPass:          os.Getenv("DBPASS"),
			DBSSLMode:       getEnv("DBSSLMODE", "disable"),
			TokenTTLMinutes: ttl,
			Timezone:        getEnv("GYM_TIMEZONE", "UTC"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			KafkaTopic:      getEnv("KAFKA_TOPIC", "gym-events"),
			RulesFile:       os.Getenv("RULES_FILE"),
			GeoIPPath:       os.Getenv("GEOIP_DB_PATH"),
		}
	})
	return config
}

// TokenTTL is the lifetime of issued login tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Location resolves the gym's time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Str("timezone", c.Timezone).Err(err).Msg("unknown time zone, using UTC")
		return time.UTC
	}
	return loc
}

// IsTest reports whether the process runs under APPENV=test.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

var testDBSeq uint64

// ConnectDatabase opens PostgreSQL, or a private in-memory SQLite database
// when APPENV=test.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	// APPENV is re-read so tests that set it after the singleton was built
	// still get SQLite.
	if cfg.IsTest() || os.Getenv("APPENV") == "test" {
		return connectTestSQLite()
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

func connectTestSQLite() (*gorm.DB, error) {
	n := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:gymtest_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps the shared-cache database alive and
	// serializes writers.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
