package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"truckbook/internal/db"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Token     string
	ClientID  string
	ChannelID string
	GuildID   string
	Port      string

	Store       string
	FleetFile   string
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	Roster      []string

	ResetSchedule string
	ResetTimezone string
	Language      string
	LogLevel      log.Level

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	NotifyEmailTo     []string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	NotifySMSTo      []string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("Could not read .env file")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Token:     os.Getenv("TOKEN"),
		ClientID:  os.Getenv("CLIENT_ID"),
		ChannelID: os.Getenv("CHANNEL_ID"),
		GuildID:   os.Getenv("GUILD_ID"),
		Port:      getEnv("PORT", "3000"),

		Store:       strings.ToLower(getEnv("STORE", StoreFile)),
		FleetFile:   getEnv("FLEET_FILE", "fleet.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "fleet"),
		Roster:      splitList(os.Getenv("FLEET_ROSTER")),

		ResetSchedule: getEnv("RESET_SCHEDULE", "0 5 * * *"),
		ResetTimezone: getEnv("RESET_TIMEZONE", "Europe/Kyiv"),
		Language:      strings.ToLower(getEnv("BOT_LANGUAGE", "uk")),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "FASTIQ Bot"),
		NotifyEmailTo:     splitList(os.Getenv("NOTIFY_EMAIL_TO")),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		NotifySMSTo:      splitList(os.Getenv("NOTIFY_SMS_TO")),
	}
	if len(cfg.Roster) == 0 {
		cfg.Roster = append([]string(nil), db.DefaultRoster...)
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	for _, req := range []struct{ name, value string }{
		{"TOKEN", c.Token},
		{"CLIENT_ID", c.ClientID},
		{"CHANNEL_ID", c.ChannelID},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if len(c.Roster) > db.MaxFleetSize {
		return fmt.Errorf("FLEET_ROSTER lists %d vehicles, at most %d are supported", len(c.Roster), db.MaxFleetSize)
	}

	switch c.Store {
	case StoreMemory, StoreFile:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL not set")
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI not set")
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}

	switch c.Language {
	case "uk", "en":
	default:
		return fmt.Errorf("unknown BOT_LANGUAGE %q", c.Language)
	}
	return nil
}

func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != "" && len(c.NotifyEmailTo) > 0
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && len(c.NotifySMSTo) > 0
}

func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
