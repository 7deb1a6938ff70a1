// Load envs from .env
// Validate required keys
// Provide default values

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string

	GeminiAPIKey  string
	AnalysisModel string
	SearchModel   string

	// Google OAuth client ID used to verify ID tokens from the browser.
	// Empty means sign-in-dependent features are disabled.
	GoogleClientID string

	// Gmail credential/token files for the alert mailer. Missing files
	// disable alerts only.
	GmailCredentialsPath string
	GmailTokenPath       string
	AlertSender          string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 os.Getenv("PORT"),
		DBUrl:                os.Getenv("DB_URL"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		AnalysisModel:        os.Getenv("ANALYSIS_MODEL"),
		SearchModel:          os.Getenv("SEARCH_MODEL"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GmailCredentialsPath: os.Getenv("GMAIL_CREDENTIALS_PATH"),
		GmailTokenPath:       os.Getenv("GMAIL_TOKEN_PATH"),
		AlertSender:          os.Getenv("ALERT_SENDER"),
	}

	// Set default values if not set
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = "gemini-2.5-flash"
	}
	if cfg.SearchModel == "" {
		cfg.SearchModel = "gemini-2.5-flash"
	}
	if cfg.GmailCredentialsPath == "" {
		cfg.GmailCredentialsPath = "credential.json"
	}
	if cfg.GmailTokenPath == "" {
		cfg.GmailTokenPath = "token.json"
	}

	// Validate required fields
	if cfg.DBUrl == "" {
		log.Fatal("empty DB_URL in environment")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("empty GEMINI_API_KEY in environment")
	}

	if cfg.GoogleClientID == "" {
		log.Println("⚠️ GOOGLE_CLIENT_ID not set: sign-in features disabled, anonymous analysis only")
	}

	return cfg
}
