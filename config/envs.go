package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                string // Host IP for the server
	RESTPort              int    // Port for the REST API
	DBHost                string // Hostname or IP address for the database
	DBPort                int    // Port number for the database
	DBUser                string // Username for the database
	DBPassword            string // Password for the database
	DBName                string // Name of the database
	RedisAddr             string // host:port of the Redis server
	RedisPassword         string // Password for Redis, empty when unauthenticated
	LeaderboardPrefix     string // Key prefix for leaderboard sorted sets
	LeaderboardTTLSeconds int    // Expiry refreshed on every leaderboard write
	GinMode               string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret             string // Secret key for JWT signing
	JWTIssuer             string // Issuer claim for JWTs
	TickMS                int    // Game tick interval in milliseconds
	MaxMazeSize           int    // Largest maze side length the API builds
}

// Envs holds the application's configuration once Load has run.
var Envs Config

// Load reads a .env file when present, then populates Envs from the
// environment. Missing required variables are fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	Envs = Config{
		DBHost:                mustGetEnv("DB_HOST"),
		DBPort:                mustGetEnvAsInt("DB_PORT"),
		DBUser:                mustGetEnv("DB_USER"),
		DBPassword:            mustGetEnv("DB_PASS"),
		DBName:                mustGetEnv("DB_NAME"),
		RedisAddr:             mustGetEnv("REDIS_ADDR"),
		RedisPassword:         getEnvWithDefault("REDIS_PASSWORD", ""),
		LeaderboardPrefix:     getEnvWithDefault("LEADERBOARD_PREFIX", "vinom-chase"),
		LeaderboardTTLSeconds: getEnvAsIntWithDefault("LEADERBOARD_TTL_SECONDS", 7*24*60*60),
		GinMode:               getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:             mustGetEnv("JWT_SECRET"),
		JWTIssuer:             mustGetEnv("JWT_ISSUER"),
		HostIP:                mustGetEnv("HOST_IP"),
		RESTPort:              mustGetEnvAsInt("REST_PORT"),
		TickMS:                getEnvAsIntWithDefault("TICK_MS", 100),
		MaxMazeSize:           getEnvAsIntWithDefault("MAX_MAZE_SIZE", 50),
	}
	return Envs
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers; unparsable values are fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
