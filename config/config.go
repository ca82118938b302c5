package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Observ      ObservabilityConfig
	Idempotency IdempotencyConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig identifies the backing store. URL wins over the
// individual Server/User/Password/Name fields when set.
type DatabaseConfig struct {
	Driver     string
	URL        string
	Server     string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	TopicCatalog string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type IdempotencyConfig struct {
	TTL time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	idemTTL, _ := strconv.Atoi(getEnv("IDEMPOTENCY_TTL_SECONDS", "86400"))

	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			Env:      getEnv("ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", ""),
			URL:        getEnv("DATABASE_URL", ""),
			Server:     getEnv("DB_SERVER", ""),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", ""),
			SSLMode:    getEnv("DB_SSLMODE", "require"),
			SQLitePath: getEnv("SQLITE_PATH", "store.db"),
		},
		Redis: RedisConfig{
			Enabled:  getBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Enabled:      getBool("KAFKA_ENABLED", false),
			Brokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicCatalog: getEnv("KAFKA_TOPIC_CATALOG_EVENTS", "catalog-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(idemTTL) * time.Second,
		},
	}

	cfg.Database.Driver = cfg.Database.ResolveDriver()
	return cfg
}

// ResolveDriver picks the driver to use. An explicit driver is kept;
// otherwise postgres is chosen when a URL or a full set of server
// credentials is present, and sqlite when anything is missing.
func (d DatabaseConfig) ResolveDriver() string {
	if d.Driver != "" {
		return strings.ToLower(d.Driver)
	}
	if d.URL != "" {
		return DriverPostgres
	}
	if d.Server != "" && d.User != "" && d.Password != "" && d.Name != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN returns the data source name handed to sql.Open for the resolved driver.
func (d DatabaseConfig) DSN() (string, error) {
	switch d.ResolveDriver() {
	case DriverPostgres:
		if d.URL != "" {
			return d.URL, nil
		}
		if d.Server == "" || d.Name == "" {
			return "", fmt.Errorf("postgres requires DATABASE_URL or DB_SERVER and DB_NAME")
		}
		u := &url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Server,
			Path:     "/" + d.Name,
			RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
		}
		return u.String(), nil
	case DriverSQLite:
		path := d.SQLitePath
		if path == "" {
			path = "store.db"
		}
		return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultVal)))
	if err != nil {
		return defaultVal
	}
	return val
}
