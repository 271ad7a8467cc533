package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)

	log.Info().Msg("Initializing app...")

	if err := config.LoadSSMParameters(context.Background(), c); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	log.Info().Msgf("DB_TYPE: %s", config.GetString(c, "DB_TYPE", "postgres"))
	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, "./generated"); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		report, err := models.ColumnMismatchReport(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column mismatch report")
		}
		models.PrintColumnMismatchReport(os.Stdout, report)
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)

	seedOnly := config.GetBool(c, "SEED_ONLY", false)
	if seedOnly || config.GetBool(c, "SEED_ON_START", true) {
		if err := currentDB.SeedInitialData(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Error seeding initial data")
		}
		log.Info().Msg("Initial data seeded")
	}
	if seedOnly {
		return
	}

	notifiers, err := services.NotifiersFromConfig(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring contact notifications")
	}
	var dispatcher *services.Dispatcher
	if len(notifiers) > 0 {
		timeout := time.Duration(config.GetInt(c, "NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second
		dispatcher = services.NewDispatcher(timeout, notifiers...)
	} else {
		log.Warn().Msg("No notification channel configured; contact messages will only be stored")
	}

	// Start and listenToInterrupt each send once; neither may block after shutdown.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, dispatcher, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-sig)
}
