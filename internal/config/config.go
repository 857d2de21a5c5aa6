package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const devJWTSecret = "development-secret-key-min-32-chars"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DBDriver         string // postgres / sqlite
	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string
	SQLitePath       string
	DBMaxOpenConns   int

	JWTSecret                string // JWT署名シークレット
	JWTAccessExpiry          string // 例: 15m
	JWTRefreshExpiryStandard string // 例: 24h
	JWTRefreshExpiryRemember string // 例: 30d
	BcryptCost               int

	GoEnv        string // dev/prod
	FrontendURL  string // CORSとリセットメールのリンク
	CookieSecure bool

	MailDriver string // log / smtp / ses
	EmailFrom  string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	AWSRegion  string
	// 空ならAWSの標準の認証情報チェーンを使う
	SESAccessKeyID     string
	SESSecretAccessKey string
	SESEndpoint        string // localstack等
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

// 接続文字列（DATABASE_URL優先）
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Loadは環境変数（.envがあれば先に読む）
func Load() (Config, error) {
	envFile := getenv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	maxConns, err := atoiDefault("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := atoiDefault("BCRYPT_COST", 12)
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := atoiDefault("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DBDriver:         strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getenv("DATABASE_PATH", "app.db"),
		DBMaxOpenConns:   maxConns,

		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTAccessExpiry:          getenv("JWT_ACCESS_EXPIRY", "15m"),
		JWTRefreshExpiryStandard: getenv("JWT_REFRESH_EXPIRY_STANDARD", "24h"),
		JWTRefreshExpiryRemember: getenv("JWT_REFRESH_EXPIRY_REMEMBER", "30d"),
		BcryptCost:               bcryptCost,

		GoEnv:       getenv("GO_ENV", "dev"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		MailDriver: strings.ToLower(getenv("MAIL_DRIVER", "log")),
		EmailFrom:  getenv("EMAIL_FROM", "noreply@todoapp.local"),
		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   smtpPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		AWSRegion:  getenv("AWS_REGION", "us-east-1"),

		SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESEndpoint:        os.Getenv("SES_ENDPOINT"),
	}
	cfg.CookieSecure = envBool("COOKIE_SECURE", cfg.IsProduction())

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	//シークレットはprodでは必須
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long (current: %d)", len(c.JWTSecret))
	}

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite: %q", c.DBDriver)
	}

	switch c.MailDriver {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when MAIL_DRIVER=smtp")
		}
	case "ses":
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required when MAIL_DRIVER=ses")
		}
		if (c.SESAccessKeyID == "") != (c.SESSecretAccessKey == "") {
			return fmt.Errorf("SES_ACCESS_KEY_ID and SES_SECRET_ACCESS_KEY must be set together")
		}
	default:
		return fmt.Errorf("MAIL_DRIVER must be log, smtp or ses: %q", c.MailDriver)
	}

	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
