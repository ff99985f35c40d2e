package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/events"
	"github.com/micropay/micropay-api/internal/platform/awsnotify"
	"github.com/micropay/micropay-api/internal/platform/cognito"
	"github.com/micropay/micropay-api/internal/platform/postgres"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/micropay/micropay-api/migrations"
)

const dbConnectTimeout = 5 * time.Second

// application holds the process-wide dependency graph. All capability
// clients are built once here and live for the process lifetime.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	accountService      service.AccountService
	transferService     service.TransferService
	notificationService service.NotificationService
	tokenVerifier       *cognito.Verifier
}

// newApplication builds the dependency graph: database (with migrations
// applied), AWS service clients, stores, and the workflow services.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("Database migrations applied")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	// Endpoint override is only set for local development (LocalStack).
	endpoint := cfg.AWS.Endpoint
	cipClient := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	snsClient := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	sesClient := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	userStore := postgres.NewPostgresUserStore(db, log)
	transactionStore := postgres.NewPostgresTransactionStore(db, log)
	notificationStore := postgres.NewPostgresNotificationStore(db, log)

	identityStore := cognito.NewIdentityStore(cipClient, cfg.AWS, log)
	channel := awsnotify.NewChannel(snsClient, sesClient, cfg.AWS, log)
	emitter := events.NewChannelEmitter(channel, log)

	accountService, err := service.NewAccountService(identityStore, userStore, channel, emitter, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building account service: %w", err)
	}

	transferService, err := service.NewTransferService(userStore, transactionStore, emitter, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building transfer service: %w", err)
	}

	notificationService, err := service.NewNotificationService(notificationStore, channel, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building notification service: %w", err)
	}

	return &application{
		config:              cfg,
		logger:              log,
		db:                  db,
		accountService:      accountService,
		transferService:     transferService,
		notificationService: notificationService,
		tokenVerifier: cognito.NewVerifier(
			cfg.AWS.Region, cfg.AWS.UserPoolID, cfg.AWS.ClientID, nil),
	}, nil
}

// openDatabase opens the connection pool and verifies connectivity.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// run starts the HTTP server and blocks until shutdown completes.
func (app *application) run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases process-wide resources during shutdown.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database", "error", err)
	}
}
