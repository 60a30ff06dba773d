package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string `env:"DB_URI"`
	DatabaseName string `env:"DB_NAME" envDefault:"reportHub"`
	BaseURL      string `env:"BASE_URL"`
	Port         string `env:"PORT" envDefault:"3000"`
	Env          string `env:"APP_ENV" envDefault:"production"`

	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	FirebaseProjectID string        `env:"FIREBASE_PROJECT_ID"`
	FirebaseCertsURL  string        `env:"FIREBASE_CERTS_URL" envDefault:"https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`
	TokenCacheTTL     time.Duration `env:"TOKEN_CACHE_TTL" envDefault:"5m"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	ClientDomain    string `env:"CLIENT_DOMAIN" envDefault:"http://localhost:5173"`

	RedisAddress     string `env:"REDIS_ADDRESS"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	DailyReportLimit int    `env:"DAILY_REPORT_LIMIT" envDefault:"0"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" envDefault:"no-reply@reporthub.app"`

	CloudinaryURL          string `env:"CLOUDINARY_URL"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`

	ReminderSchedule   string        `env:"REMINDER_SCHEDULE"`
	ReminderStaleAfter time.Duration `env:"REMINDER_STALE_AFTER" envDefault:"72h"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// New sets up all config related services. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(c.Env)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	_ = zap.ReplaceGlobals(logger)

	return &c, nil
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	zap.S().Errorw(message, "status", httpStatusCode, "error", errText)

	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: errText},
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
