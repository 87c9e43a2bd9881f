package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Addr string

	// DBDriver selects the backing store: "sqlite" (default, single
	// device) or "postgres".
	DBDriver   string
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret    []byte
	GeminiAPIKey string

	AWSRegion      string
	S3Bucket       string
	CloudFrontURL  string
	SNSPlatformARN string
}

// Load reads .env if present, then the environment. GEMINI_API_KEY and
// JWT_SECRET are required; everything else has a default or disables an
// optional integration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Addr:           getenv("ADDR", ":8080"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DBPath:         getenv("DB_PATH", "snapcalo.db"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getenv("DB_PORT", "5432"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		AWSRegion:      os.Getenv("AWS_REGION"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		CloudFrontURL:  os.Getenv("CLOUDFRONT_URL"),
		SNSPlatformARN: os.Getenv("SNS_PLATFORM_ARN"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.DBDriver == "postgres" && (cfg.DBHost == "" || cfg.DBName == "") {
		return nil, fmt.Errorf("DB_HOST and DB_NAME are required with DB_DRIVER=postgres")
	}
	return cfg, nil
}

// OpenDB connects to the configured database and hands the handle back
// for injection; no package-level DB global.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
