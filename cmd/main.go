package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/timekeeper/internal/handlers"
	"github.com/sbilibin2017/timekeeper/internal/jwt"
	"github.com/sbilibin2017/timekeeper/internal/logger"
	"github.com/sbilibin2017/timekeeper/internal/mailer"
	"github.com/sbilibin2017/timekeeper/internal/middlewares"
	"github.com/sbilibin2017/timekeeper/internal/migrations"
	"github.com/sbilibin2017/timekeeper/internal/passwords"
	"github.com/sbilibin2017/timekeeper/internal/repositories"
	"github.com/sbilibin2017/timekeeper/internal/services"
	"github.com/sbilibin2017/timekeeper/internal/sessions"
	"github.com/sbilibin2017/timekeeper/internal/views"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// defaultSessionSecret signs cookies when SESSION_SECRET is unset.
const defaultSessionSecret = "keyboard cat"

// config holds everything read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	AppBaseURL  string
	LogLevel    string
	LogEncoding string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	SessionSecret     string
	SessionCookieName string
	SessionTTLSecond  int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	KafkaBrokers []string
	KafkaTopic   string

	BcryptCost int
}

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, session, mail, Kafka and hashing configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.AppBaseURL = strings.TrimRight(getEnv("APP_BASE_URL", "http://"+cfg.AppHost+":"+cfg.AppPort), "/")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogEncoding = getEnv("APP_LOG_ENCODING", "json")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "timekeeper")
	if cfg.PgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Session config
	cfg.SessionSecret = getEnv("SESSION_SECRET", defaultSessionSecret)
	cfg.SessionCookieName = getEnv("SESSION_COOKIE_NAME", "timekeeper.sid")
	if cfg.SessionTTLSecond, err = getInt("SESSION_TTL_SECOND", "86400"); err != nil {
		return
	}

	// Mail config
	cfg.SMTPHost = getEnv("SMTP_HOST", "localhost")
	if cfg.SMTPPort, err = getInt("SMTP_PORT", "587"); err != nil {
		return
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.MailFrom = getEnv("MAIL_FROM", "noreply@timekeeper.local")

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	if cfg.BcryptCost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return
	}

	return
}

// warnInsecureDefaults logs settings that must not reach production unchanged.
func warnInsecureDefaults(cfg config) {
	if cfg.SessionSecret == defaultSessionSecret {
		logger.Log.Warn("SESSION_SECRET not set, session cookies are signed with the public default secret")
	}
}

// run initializes the logger, database, Redis, mail, Kafka and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)
	warnInsecureDefaults(cfg)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PgHost, cfg.PgPort, cfg.PgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka is optional; without brokers events are skipped
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Publishing account events to Kafka topic %s", cfg.KafkaTopic)
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, account events will not be published")
	}

	sessionTTL := time.Duration(cfg.SessionTTLSecond) * time.Second

	// Initialize infrastructure
	hasher := passwords.NewHasher(cfg.BcryptCost)
	smtp := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	signer := jwt.New(jwt.WithSecretKey(cfg.SessionSecret), jwt.WithExpiration(sessionTTL))

	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, hasher)
	sessionRepo := repositories.NewSessionRepository(rdb, sessionTTL)
	transactor := repositories.NewTransactor(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, hasher)
	accountService := services.NewAccountService(userReadRepo, userWriteRepo, transactor, smtp, kafkaWriter)
	sessionManager := sessions.NewManager(sessionRepo, signer, cfg.SessionCookieName, sessionTTL)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.SessionMiddleware(sessionManager))
	r.Use(middlewares.AuthMiddleware(authService, sessionManager))

	r.Get("/", handlers.NewPageHandler(views.Index, renderer, sessionManager))

	r.Get("/user", handlers.NewPageHandler(views.Register, renderer, sessionManager))
	r.Post("/user", handlers.NewRegisterHandler(accountService, sessionManager, cfg.AppBaseURL))

	r.Get("/login", handlers.NewPageHandler(views.Login, renderer, sessionManager))
	r.Post("/login", handlers.NewLoginHandler(authService, sessionManager))
	r.Get("/logout", handlers.NewLogoutHandler(sessionManager))

	r.Get("/forgot", handlers.NewPageHandler(views.Forgot, renderer, sessionManager))
	r.Post("/forgot", handlers.NewForgotHandler(accountService, sessionManager, cfg.AppBaseURL))

	r.Get("/reset/{token}", handlers.NewResetPageHandler(accountService, renderer, sessionManager))
	r.Post("/reset/{token}", handlers.NewResetHandler(accountService, authService, sessionManager))

	r.Get("/validate/{token}", handlers.NewValidatePageHandler(accountService, renderer, sessionManager))
	r.Post("/validate/{token}", handlers.NewValidateHandler(accountService, authService, sessionManager))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
