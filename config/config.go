package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
}

type ServerConfig struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:":8080"`
	GRPCPort        string        `env:"GRPC_PORT" envDefault:":8082"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
	FilePath          string `env:"LOGGER_FILE"`
	MaxSizeMB         int    `env:"LOGGER_MAX_SIZE" envDefault:"100"`
	MaxBackups        int    `env:"LOGGER_MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays        int    `env:"LOGGER_MAX_AGE" envDefault:"7"`
}

// DatabaseConfig selects the store backend: "mongo" or "postgres".
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"mongo"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB" envDefault:"omnipos_catalog"`
	MaxPoolSize    uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"50"`
	MinPoolSize    uint64        `env:"MONGO_MIN_POOL_SIZE" envDefault:"5"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"5s"`
}

type PostgresConfig struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5433"`
	User            string `env:"POSTGRES_USER" envDefault:"omnipos"`
	Password        string `env:"POSTGRES_PASSWORD" envDefault:"omnipos"`
	DBName          string `env:"POSTGRES_DB" envDefault:"omnipos_catalog"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int    `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"300"`
	ConnMaxIdleTime int    `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY" envDefault:"your-secret-key-change-this-in-prod"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_CACHE_TTL" envDefault:"5m"`
}

type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC_TOPPINGS" envDefault:"topping"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `env:"ELASTICSEARCH_ENABLED" envDefault:"false"`
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" envDefault:"http://localhost:9200" envSeparator:","`
	Username  string   `env:"ELASTICSEARCH_USERNAME"`
	Password  string   `env:"ELASTICSEARCH_PASSWORD"`
	Index     string   `env:"ELASTICSEARCH_TOPPING_INDEX" envDefault:"toppings"`
}

func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Database.Driver != "mongo" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
