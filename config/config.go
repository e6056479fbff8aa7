package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port string
	// SeedData inserts the sample catalog into an empty database on startup.
	SeedData bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// OverviewTTLSeconds bounds staleness of the cached catalog overview.
	OverviewTTLSeconds int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:               "localhost",
		Port:               "6380", // test Redis runs on 6380
		Password:           "",
		DB:                 1,
		OverviewTTLSeconds: 1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", SeedData: false},
		Database: *testConfig,
		Redis:    testRedisConfig,
	}
}

func GetServerConfig() ServerConfig {
	seed, err := strconv.ParseBool(getEnv("SEED_DATA", "true"))
	if err != nil {
		panic(err)
	}

	return ServerConfig{
		Port:     getEnv("SERVER_PORT", "8080"),
		SeedData: seed,
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "ticketing"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	ttl, err := strconv.Atoi(getEnv("OVERVIEW_CACHE_TTL", "30"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:               getEnv("REDIS_HOST", "localhost"),
		Port:               getEnv("REDIS_PORT", "6379"),
		Password:           getEnv("REDIS_PASSWORD", ""),
		DB:                 db,
		OverviewTTLSeconds: ttl,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
