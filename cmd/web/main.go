package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/myrjola/questapp/internal/envstruct"
	"github.com/myrjola/questapp/internal/errors"
	"github.com/myrjola/questapp/internal/flightrecorder"
	"github.com/myrjola/questapp/internal/logging"
	"github.com/myrjola/questapp/internal/quest"
	"github.com/myrjola/questapp/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	questService   *quest.Service
	flightRecorder *flightrecorder.Service
	corsOrigin     string
	timezoneOffset time.Duration
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"QUESTAPP_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"QUESTAPP_SQLITE_URL" envDefault:"./questapp.sqlite3"`
	// OpenAIAPIKey enables coach messages on generated quests. Empty disables them.
	OpenAIAPIKey string `env:"QUESTAPP_OPENAI_API_KEY" envDefault:""`
	// CORSOrigin is the browser client origin allowed to call the API.
	CORSOrigin string `env:"QUESTAPP_CORS_ORIGIN" envDefault:"http://localhost:5173"`
	// TimezoneOffsetMinutes shifts "today" resolution for users away from UTC.
	// Defaults to UTC+9.
	TimezoneOffsetMinutes int `env:"QUESTAPP_TZ_OFFSET_MINUTES" envDefault:"540"`
	// TracesDirectory is where request timeout traces are dumped.
	TracesDirectory string `env:"QUESTAPP_TRACES_DIR" envDefault:"./traces"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}

	recorder, err := flightrecorder.New(flightrecorder.Config{
		Logger:          logger,
		MinAge:          0,
		MaxBytes:        0,
		TracesDirectory: cfg.TracesDirectory,
	})
	if err != nil {
		return errors.Wrap(err, "new flight recorder")
	}
	if err = recorder.Start(ctx); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	defer recorder.Stop(ctx)

	app := application{
		logger:         logger,
		questService:   quest.NewService(db, logger, cfg.OpenAIAPIKey),
		flightRecorder: recorder,
		corsOrigin:     cfg.CORSOrigin,
		timezoneOffset: time.Duration(cfg.TimezoneOffsetMinutes) * time.Minute,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// Local development reads configuration from a .env file when present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.LogAttrs(ctx, slog.LevelWarn, "load .env", slog.Any("error", err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
