package config

import (
	"fmt"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckbook/internal/db"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN", "bot-token")
	t.Setenv("CLIENT_ID", "123")
	t.Setenv("CHANNEL_ID", "456")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "STORE", "FLEET_FILE", "FLEET_ROSTER", "RESET_SCHEDULE", "RESET_TIMEZONE", "BOT_LANGUAGE", "LOG_LEVEL", "MONGO_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "fleet.json", cfg.FleetFile)
	assert.Equal(t, "fleet", cfg.MongoDB)
	assert.Equal(t, db.DefaultRoster, cfg.Roster)
	assert.Equal(t, "0 5 * * *", cfg.ResetSchedule)
	assert.Equal(t, "Europe/Kyiv", cfg.ResetTimezone)
	assert.Equal(t, "uk", cfg.Language)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("TOKEN", "")
	t.Setenv("CLIENT_ID", "123")
	t.Setenv("CHANNEL_ID", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN, CHANNEL_ID")
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FLEET_ROSTER", " Volvo FH #1, ,MAN TGX #2 ")
	t.Setenv("BOT_LANGUAGE", "EN")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE", "memory")
	t.Setenv("NOTIFY_EMAIL_TO", "a@x.io,b@x.io")
	t.Setenv("SENDGRID_API_KEY", "key")
	t.Setenv("SENDGRID_FROM_EMAIL", "bot@x.io")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"Volvo FH #1", "MAN TGX #2"}, cfg.Roster)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, cfg.NotifyEmailTo)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown store", "STORE", "redis"},
		{"unknown language", "BOT_LANGUAGE", "fr"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestValidate_DatabaseStores(t *testing.T) {
	cfg := &Config{Token: "t", ClientID: "c", ChannelID: "ch", Language: "uk", Store: StorePostgres}
	assert.EqualError(t, cfg.Validate(), "DATABASE_URL not set")

	cfg.DatabaseURL = "postgres://localhost/fleet"
	assert.NoError(t, cfg.Validate())

	cfg.Store = StoreMongo
	assert.EqualError(t, cfg.Validate(), "MONGO_URI not set")
}

func TestOptionalChannels(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SMSEnabled())
	assert.False(t, cfg.AdminEnabled())

	cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber = "sid", "tok", "+15550001111"
	cfg.NotifySMSTo = []string{"+380501112233"}
	cfg.JWTSecret = "s"
	assert.True(t, cfg.SMSEnabled())
	assert.True(t, cfg.AdminEnabled())
}

func TestFromEnv_RosterTooLarge(t *testing.T) {
	setRequired(t)
	names := make([]string, db.MaxFleetSize+5)
	for i := range names {
		names[i] = fmt.Sprintf("MAN TGX #%d", i+1)
	}
	t.Setenv("FLEET_ROSTER", strings.Join(names, ","))

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLEET_ROSTER")

	t.Setenv("FLEET_ROSTER", strings.Join(names[:db.MaxFleetSize], ","))
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Len(t, cfg.Roster, db.MaxFleetSize)
}
