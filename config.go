package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storefront-service/database"
	awspkg "storefront-service/pkg/aws"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	secretDBCredentials = "storefront/DB_CREDENTIALS"
	secretJWT           = "storefront/JWT_SECRET"

	defaultOrigin = "http://localhost:4321"
)

// Config holds all environment variables for the storefront-service.
type Config struct {
	Port         string
	Env          string
	StoreBackend string `validate:"oneof=postgres dynamodb"`

	Postgres    database.PostgresConfig
	DynamoTable string
	RedisURL    string
	JWTSecret   string `validate:"required"`

	AWS              awspkg.Settings
	UseSecrets       bool
	S3Bucket         string
	CloudFrontDomain string
	ProductTopicARN  string

	CloudWatchEnabled  bool
	CloudWatchLogGroup string
	MetricsEnabled     bool
	MetricsNamespace   string

	AllowedOrigins  []string
	SecureCookies   bool
	UploadRate      float64
	UploadBurst     int
	SeedAdminEmail  string
	SeedAdminPasswd string
}

// secretGetter is satisfied by *awspkg.SecretsClient.
type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads .env (optional) and the environment. With
// AWS_USE_SECRETS=true the database credentials and JWT secret are taken
// from Secrets Manager, falling back to the environment on failure.
func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using system environment variables")
	}

	cfg := configFromEnv(os.Getenv)

	if cfg.UseSecrets {
		awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			zap.L().Warn("Secrets Manager unavailable, using environment", zap.Error(err))
		} else {
			applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg, cfg.AWS))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv(getenv func(string) string) *Config {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	endpoint := getenv("AWS_ENDPOINT")
	cfg := &Config{
		Port:         get("PORT", "8080"),
		Env:          get("APP_ENV", "development"),
		StoreBackend: strings.ToLower(get("STORE_BACKEND", "postgres")),
		Postgres: database.PostgresConfig{
			Host:     getenv("POSTGRES_HOST"),
			Port:     get("POSTGRES_PORT", "5432"),
			User:     getenv("POSTGRES_USER"),
			Password: getenv("POSTGRES_PASSWORD"),
			DBName:   getenv("POSTGRES_DB"),
			SSLMode:  get("POSTGRES_SSLMODE", "disable"),
		},
		DynamoTable: get("DDB_TABLE_PRODUCTS", "Products"),
		RedisURL:    getenv("REDIS_URL"),
		JWTSecret:   getenv("JWT_SECRET"),
		AWS: awspkg.Settings{
			Region:          get("AWS_REGION", "us-east-1"),
			Endpoint:        endpoint,
			S3Endpoint:      get("AWS_S3_ENDPOINT", endpoint),
			AccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
		},
		UseSecrets:         getenv("AWS_USE_SECRETS") == "true",
		S3Bucket:           get("AWS_S3_BUCKET", awspkg.DefaultImageBucket),
		CloudFrontDomain:   getenv("AWS_CLOUDFRONT_DOMAIN"),
		ProductTopicARN:    getenv("PRODUCT_SNS_TOPIC_ARN"),
		CloudWatchEnabled:  getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchLogGroup: get("CLOUDWATCH_LOG_GROUP", "/storefront/services"),
		MetricsEnabled:     getenv("CLOUDWATCH_METRICS_ENABLED") == "true",
		MetricsNamespace:   get("CLOUDWATCH_METRICS_NAMESPACE", "Storefront"),
		AllowedOrigins:     splitList(get("ALLOWED_ORIGINS", defaultOrigin)),
		SecureCookies:      getenv("SECURE_COOKIES") == "true",
		UploadRate:         parseFloat(getenv("UPLOAD_RATE_PER_SEC"), 1),
		UploadBurst:        parseInt(getenv("UPLOAD_RATE_BURST"), 5),
		SeedAdminEmail:     getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPasswd:    getenv("SEED_ADMIN_PASSWORD"),
	}
	// cors rejects an empty origin list.
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{defaultOrigin}
	}
	return cfg
}

// applySecrets overrides database credentials and the JWT secret. Missing
// or malformed secrets leave the environment values in place.
func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if raw, err := sm.GetSecret(ctx, secretDBCredentials); err == nil {
		var creds struct {
			Host     string `json:"host"`
			Port     string `json:"port"`
			User     string `json:"user"`
			Password string `json:"password"`
			DBName   string `json:"dbname"`
		}
		if err := json.Unmarshal([]byte(raw), &creds); err != nil {
			zap.L().Warn("malformed database credentials secret", zap.Error(err))
		} else {
			override(&cfg.Postgres.Host, creds.Host)
			override(&cfg.Postgres.Port, creds.Port)
			override(&cfg.Postgres.User, creds.User)
			override(&cfg.Postgres.Password, creds.Password)
			override(&cfg.Postgres.DBName, creds.DBName)
		}
	} else {
		zap.L().Warn("database credentials secret not loaded", zap.Error(err))
	}

	if jwt, err := sm.GetSecret(ctx, secretJWT); err == nil && jwt != "" {
		cfg.JWTSecret = jwt
	}
}

func (c *Config) validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	switch fe := fieldErrs[0]; fe.Field() {
	case "JWTSecret":
		return fmt.Errorf("JWT_SECRET is required")
	case "StoreBackend":
		return fmt.Errorf("STORE_BACKEND must be postgres or dynamodb, got %q", c.StoreBackend)
	default:
		return fmt.Errorf("invalid config field %s: %s", fe.Namespace(), fe.Tag())
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloat(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return fallback
}
