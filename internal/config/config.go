package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"refund-decision-be/pkg/refund/decision"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Policy   decision.Policy
	Decision DecisionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port                string
	Environment         string
	LogFilePath         string
	NotificationLogPath string
	CorsAllowedOrigins  string
	NatsURL             string
	RedisURL            string
	JwtSecret           string
	AuditTopic          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type DecisionConfig struct {
	// How long a computed decision waits for confirmation.
	PendingTTL     time.Duration
	RecordCacheTTL time.Duration
	// Receives Hold & Call alerts. Empty disables mail.
	HoldCallMailbox string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLogPath: getEnv("NOTIFICATION_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:           getEnv("JWT_SECRET", ""),
			AuditTopic:          getEnv("DECISION_AUDIT_TOPIC", "REFUND_DECISION_AUDIT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Refund Desk"),
		},
		Policy: LoadPolicy(),
		Decision: DecisionConfig{
			PendingTTL:      getEnvAsDuration("DECISION_PENDING_TTL", 30*time.Minute),
			RecordCacheTTL:  getEnvAsDuration("RECORD_CACHE_TTL", 5*time.Minute),
			HoldCallMailbox: getEnv("HOLD_CALL_MAILBOX", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// LoadPolicy starts from the default refund policy and applies any
// POLICY_* overrides found in the environment. An inconsistent set of
// overrides is logged and the default policy is used instead.
func LoadPolicy() decision.Policy {
	p := decision.DefaultPolicy()
	p.RatioLower = getEnvAsDecimal("POLICY_RATIO_LOWER", p.RatioLower)
	p.RatioUpper = getEnvAsDecimal("POLICY_RATIO_UPPER", p.RatioUpper)
	p.MaxFee = getEnvAsDecimal("POLICY_MAX_FEE", p.MaxFee)
	p.MaxShortlists = getEnvAsInt("POLICY_MAX_SHORTLISTS", p.MaxShortlists)
	p.ExperienceDays = getEnvAsInt("POLICY_EXPERIENCE_DAYS", p.ExperienceDays)
	p.TenureDays = getEnvAsInt("POLICY_TENURE_DAYS", p.TenureDays)
	p.ExperienceShortlists = getEnvAsInt("POLICY_EXPERIENCE_SHORTLISTS", p.ExperienceShortlists)
	p.CurrencySymbol = getEnv("POLICY_CURRENCY_SYMBOL", p.CurrencySymbol)

	if err := p.Validate(); err != nil {
		log.Printf("[WARN] Ignoring POLICY_* overrides: %v", err)
		return decision.DefaultPolicy()
	}
	return p
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	strValue := getEnv(key, "")
	if value, err := decimal.NewFromString(strValue); err == nil {
		return value
	}
	return fallback
}
