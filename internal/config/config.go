package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	DBName   string

	ServerPort string

	JWTSecret string

	// TokenMaxAge is the lifetime of an issued session token in seconds.
	TokenMaxAge int

	RedisURL string

	WorkerCount int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	tokenMaxAge, err := strconv.Atoi(os.Getenv("TOKEN_MAX_AGE"))
	if err != nil || tokenMaxAge <= 0 {
		tokenMaxAge = 86400 // 24 hours
	}

	workerCount, err := strconv.Atoi(os.Getenv("WORKER_COUNT"))
	if err != nil || workerCount <= 0 {
		workerCount = 2
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "chirpnet"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	return &Config{
		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   dbName,

		ServerPort: serverPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		TokenMaxAge: tokenMaxAge,

		RedisURL: redisURL,

		WorkerCount: workerCount,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}, nil
}
