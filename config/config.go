// config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort   = "3000"
	defaultDBName = "bhojon-server"
	defaultDBHost = "cluster0.a6tztk3.mongodb.net"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port string

	MongoURI string
	DBName   string

	JWTSecret []byte

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	OTLPEndpoint string

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
	GinMode  string
}

// Load reads a .env file when present and builds the Config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using process environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", defaultPort),
		MongoURI:       mongoURI(),
		DBName:         getEnv("DB_NAME", defaultDBName),
		JWTSecret:      []byte(getEnv("JWT_SECRET", "SECRET")),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "logs"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GinMode:        os.Getenv("GIN_MODE"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

// mongoURI prefers an explicit MONGO_URI and otherwise assembles the Atlas
// SRV string from DB_USER / DB_PASS.
func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	host := getEnv("DB_HOST", defaultDBHost)
	user := os.Getenv("DB_USER")
	if user == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
		url.QueryEscape(user), url.QueryEscape(os.Getenv("DB_PASS")), host)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid number %q, using %v", v, fallback)
		return fallback
	}
	return f
}
