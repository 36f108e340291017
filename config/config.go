package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds every externally supplied setting. Values come from the
// environment (optionally via a .env file loaded in main).
type Config struct {
	Env     string
	Port    string
	BaseURL string

	// Image composition
	TemplatePath  string  `validate:"required"`
	SignaturePath string  `validate:"required"`
	FontSize      float64 `validate:"gt=0"`
	FontFamily    string  `validate:"required,oneof=regular bold"`

	// Discord webhook delivery. An empty URL disables the channel; when
	// set it must match the webhook URL shape (checked by the upload
	// client, not here).
	WebhookURL string

	// Google Drive archive delivery, optional
	DriveCredentialsPath string
	DriveFolderID        string

	// Submission log store selection: "postgres" or "memory"
	LogStore string `validate:"required,oneof=postgres memory"`

	// Upload retry contract
	MaxRetries    int           `validate:"gte=0"`
	RetryDelay    time.Duration `validate:"gte=0"`
	UploadTimeout time.Duration `validate:"gt=0"`
}

// Load builds the configuration from environment variables, applying
// the documented defaults
func Load() *Config {
	cfg := &Config{
		Env:                  os.Getenv("ENV"),
		Port:                 envOrDefault("PORT", "8080"),
		BaseURL:              envOrDefault("BASE_URL", "http://localhost:8080"),
		TemplatePath:         envOrDefault("TEMPLATE_PATH", "assets/template.png"),
		SignaturePath:        envOrDefault("SIGNATURE_PATH", "assets/signature.png"),
		FontSize:             envFloatOrDefault("FONT_SIZE", 24),
		FontFamily:           envOrDefault("FONT_FAMILY", "regular"),
		WebhookURL:           os.Getenv("DISCORD_WEBHOOK_URL"),
		DriveCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:        os.Getenv("DRIVE_FOLDER_ID"),
		LogStore:             envOrDefault("LOG_STORE", "memory"),
		MaxRetries:           envIntOrDefault("UPLOAD_MAX_RETRIES", 3),
		RetryDelay:           time.Duration(envIntOrDefault("UPLOAD_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		UploadTimeout:        time.Duration(envIntOrDefault("UPLOAD_TIMEOUT_SECONDS", 30)) * time.Second,
	}
	return cfg
}

// Validate checks the configuration and returns human-readable error
// strings instead of failing hard, so callers can pre-flight
func (c *Config) Validate() []string {
	var errs []string

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs = append(errs, describeFieldError(fe))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "TemplatePath":
		return "template path must not be empty"
	case "SignaturePath":
		return "signature path must not be empty"
	case "FontSize":
		return "font size must be positive"
	case "FontFamily":
		return "font family must be 'regular' or 'bold'"
	case "LogStore":
		return "log store must be 'postgres' or 'memory'"
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOrDefault(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
