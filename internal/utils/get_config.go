package utils

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort        string `yaml:"APP_PORT"`
	AppURL         string `yaml:"APP_URL"`
	LogFile        string `yaml:"LOG_FILE"`
	RateLimitMax   string `yaml:"RATE_LIMIT_MAX"`
	RateLimitEvery string `yaml:"RATE_LIMIT_WINDOW"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Ownership
	OwnerMode          string `yaml:"OWNER_MODE"`
	PlaceholderOwnerID string `yaml:"PLACEHOLDER_OWNER_ID"`

	// Reconciliation
	ReconcileSumDuplicates string `yaml:"RECONCILE_SUM_DUPLICATES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket    string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region    string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint  string `yaml:"AWS_S3_ENDPOINT"`
	AWSS3PublicURL string `yaml:"AWS_S3_PUBLIC_URL"`
	AWSAccessKey   string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey   string `yaml:"AWS_SECRET_KEY"`

	// OpenAI configuration
	OpenAIAPIKey  string `yaml:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"OPENAI_MODEL"`
	OpenAIBaseURL string `yaml:"OPENAI_BASE_URL"`
}

var (
	config     Config
	configOnce sync.Once
)

var defaults = map[string]string{
	"APP_PORT":             "8080",
	"DB_PORT":              "5432",
	"DB_SSLMODE":           "disable",
	"OWNER_MODE":           "placeholder",
	"PLACEHOLDER_OWNER_ID": "a5fdafd5-b250-46bc-a3c3-8c6ed6605faa",
	"RATE_LIMIT_MAX":       "20",
	"RATE_LIMIT_WINDOW":    "1s",
	"AWS_S3_BUCKET":        "recipe_images",
	"OPENAI_MODEL":         "gpt-4o-mini",
}

// LoadConfig reads config.yaml once. A missing file is not fatal: every key
// can come from the environment instead.
func LoadConfig() {
	configOnce.Do(func() {
		path := os.Getenv("CONFIG_FILE")
		if path == "" {
			path = "config.yaml"
		}
		if err := LoadConfigFile(path); err != nil {
			log.Warnf("config: %v, falling back to environment", err)
		}
	})
}

// LoadConfigFile replaces the current config with the contents of path.
func LoadConfigFile(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var parsed Config
	if err := yaml.Unmarshal(file, &parsed); err != nil {
		return err
	}
	config = parsed
	return nil
}

// GetConfig returns the yaml value for key, then the environment variable of
// the same name, then the built-in default.
func GetConfig(key string) string {
	if v := fromFile(key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaults[key]
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "RATE_LIMIT_WINDOW":
		return config.RateLimitEvery
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "OWNER_MODE":
		return config.OwnerMode
	case "PLACEHOLDER_OWNER_ID":
		return config.PlaceholderOwnerID
	case "RECONCILE_SUM_DUPLICATES":
		return config.ReconcileSumDuplicates
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_S3_PUBLIC_URL":
		return config.AWSS3PublicURL
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "OPENAI_API_KEY":
		return config.OpenAIAPIKey
	case "OPENAI_MODEL":
		return config.OpenAIModel
	case "OPENAI_BASE_URL":
		return config.OpenAIBaseURL
	default:
		return ""
	}
}
