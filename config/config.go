package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	Env         string
	FrontendURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	SendGridAPIKey    string
	SendGridFromEmail string
	AdminNotifyEmail  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	SocialAddress  string
	SocialCodeword string
}

// LoadConfig reads configuration from the environment. Stripe credentials are
// required; notification and upload credentials are optional, their channels
// degrade with a logged warning.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		AdminNotifyEmail:  os.Getenv("ADMIN_NOTIFY_EMAIL"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "uploads"),

		SocialAddress:  getEnv("SOCIAL_ADDRESS", "123 Secret Ave, Suite B"),
		SocialCodeword: getEnv("SOCIAL_CODEWORD", "GreenLight"),
	}

	if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("missing required environment variables STRIPE_SECRET_KEY / STRIPE_WEBHOOK_SECRET")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
