package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"truckbook/internal/api"
	"truckbook/internal/bot"
	"truckbook/internal/config"
	"truckbook/internal/db"
	"truckbook/internal/repository"
	"truckbook/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	msgs, err := service.MessagesFor(cfg.Language)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open fleet store: %v", err)
	}
	// log.Fatalf skips deferred calls.
	fatalf := func(format string, args ...interface{}) {
		closeStore()
		log.Fatalf(format, args...)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		fatalf("Failed to create Discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	notifier := service.NewMultiNotifier().Add("discord", bot.NewChannelNotifier(session, cfg.ChannelID))
	if cfg.EmailEnabled() {
		notifier.Add("email", service.NewEmailNotifier(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, cfg.NotifyEmailTo))
	}
	if cfg.SMSEnabled() {
		notifier.Add("sms", service.NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.NotifySMSTo))
	}
	log.WithField("channels", notifier.Len()).Info("Announcement channels configured")

	reservations := service.NewReservationService(store)
	dispatcher := service.NewDispatcher(reservations, notifier, msgs)

	// Liveness is served before the gateway login.
	srv := newHTTPServer(cfg, reservations)
	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatalf("HTTP server failed: %v", err)
		}
	}()

	jobs := service.NewJobService(reservations, notifier, msgs)
	scheduler, err := jobs.Start(cfg.ResetSchedule, cfg.ResetTimezone)
	if err != nil {
		fatalf("Failed to schedule fleet reset: %v", err)
	}

	discordBot := bot.New(session, dispatcher, msgs)
	session.AddHandler(discordBot.Ready)
	session.AddHandler(discordBot.HandleInteraction)
	if err := session.Open(); err != nil {
		fatalf("Failed to connect to Discord: %v", err)
	}
	if err := discordBot.RegisterCommands(cfg.ClientID, cfg.GuildID); err != nil {
		session.Close()
		fatalf("Failed to register commands: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.WithField("signal", sig.String()).Info("Shutting down")

	<-scheduler.Stop().Done()
	if err := session.Close(); err != nil {
		log.WithError(err).Warn("Failed to close Discord session")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
	closeStore()
}

func newHTTPServer(cfg *config.Config, reservations *service.ReservationService) *http.Server {
	return &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.RouterConfig{
			Reservations: reservations,
			AdminAuth:    adminAuth(cfg),
			JWTSecret:    cfg.JWTSecret,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// openStore builds the configured fleet store and returns a function that
// releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (repository.FleetStore, func(), error) {
	initial := db.NewFleet(cfg.Roster)
	if err := initial.Validate(); err != nil {
		return nil, nil, err
	}
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("Using in-memory fleet store; bookings are lost on restart")
		return repository.NewMemoryFleetStore(initial), noop, nil
	case config.StorePostgres:
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		store := repository.NewPostgresFleetStore(conn, initial)
		if err := store.Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, func() { conn.Close() }, nil
	case config.StoreMongo:
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDB).Collection("vehicles")
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
		return repository.NewMongoFleetStore(coll, initial), closer, nil
	default:
		log.WithField("path", cfg.FleetFile).Info("Using file fleet store")
		return repository.NewFileFleetStore(cfg.FleetFile, initial), noop, nil
	}
}

func adminAuth(cfg *config.Config) service.AdminAuthService {
	if !cfg.AdminEnabled() {
		log.Info("JWT_SECRET not set; admin API disabled")
		return nil
	}
	return service.NewAdminAuthService(
		repository.NewStaticAdminAuthRepository(cfg.AdminEmail, cfg.AdminPasswordHash),
		cfg.JWTSecret,
	)
}
