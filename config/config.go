package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is
// loaded once at startup and handed to constructors; nothing else in the
// codebase touches os.Getenv.
type Config struct {
	Port   string `env:"PORT" env-default:"5000"`
	DBPath string `env:"DB_PATH" env-default:"./tracker.db"`

	JWTSecret string `env:"JWT_SECRET" env-default:"change-me-in-production"`

	SMTP     SMTPConfig
	Reminder ReminderConfig
}

// SMTPConfig is the mail transport for the deadline digest. All fields
// are optional: an unconfigured transport makes dispatch fail gracefully
// instead of preventing startup.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
}

// ReminderConfig controls when and to whom the digest is sent.
type ReminderConfig struct {
	Recipient string `env:"REMINDER_EMAIL"`
	Schedule  string `env:"REMINDER_SCHEDULE" env-default:"45 20 * * *"`
	Timezone  string `env:"TIMEZONE" env-default:"UTC"`
}

// Load reads a .env file if one exists, then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
