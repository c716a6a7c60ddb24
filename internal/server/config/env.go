package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from the process environment. A .env file
// in the working directory is loaded first if present; real environment
// variables win over it (godotenv does not override existing values).
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address (e.g. ":3000")
//	DATABASE_URL    PostgreSQL DSN
//	JWT_SECRET      token signing secret
//	EMAIL           mail account / default sender
//	EMAIL_PASSWORD  mail account password
//	SMTP_HOST       outgoing mail host
//	SMTP_PORT       outgoing mail port
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("EMAIL"); ok {
		config.SMTPUser = v
	}
	if v, ok := os.LookupEnv("EMAIL_PASSWORD"); ok {
		config.SMTPPassword = v
	}
	if v, ok := os.LookupEnv("SMTP_HOST"); ok {
		config.SMTPHost = v
	}
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}
}
