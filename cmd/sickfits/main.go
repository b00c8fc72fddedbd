package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/sickfits/internal/api"
	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/blob"
	"github.com/erazemk/sickfits/internal/config"
	"github.com/erazemk/sickfits/internal/db"
	"github.com/erazemk/sickfits/internal/graph"
	"github.com/erazemk/sickfits/internal/mail"
	"github.com/erazemk/sickfits/internal/model"
	"github.com/erazemk/sickfits/internal/store"
	"github.com/erazemk/sickfits/internal/web"
)

func main() {
	fs := flag.NewFlagSet("sickfits", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var adminEmail string
	fs.StringVar(&adminEmail, "admin", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: sickfits [flags]

Flags:
  -c, -config <path>      YAML config file (default: environment only)
  -d, -db <path>          SQLite database path (default: sickfits.sqlite3)
  -a, -addr <host:port>   listen address (default: :7777)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -admin <email>          create an ADMIN account when creating a new database
  -h, -help               show this help and exit

`)
		fmt.Fprintln(os.Stdout, config.Usage())
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the file and the environment.
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if addr != "" {
		cfg.HTTP.Address = addr
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}

	closeLog, err := setupLogger(cfg.Env, cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(cfg, adminEmail); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, adminEmail string) error {
	ctx := context.Background()

	_, statErr := os.Stat(cfg.DBPath)
	isNew := os.IsNotExist(statErr)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	if isNew && adminEmail != "" {
		password, err := createAdmin(ctx, database, adminEmail)
		if err != nil {
			return err
		}
		printAdmin(adminEmail, password)
	}

	secret := cfg.Secret
	if secret == "" {
		// Auto-generated on first run.
		secret, err = store.GetJWTSecret(ctx, database)
		if err != nil {
			return fmt.Errorf("loading JWT secret: %w", err)
		}
	}

	mailer, err := mail.New(ctx, cfg.Mail)
	if err != nil {
		return fmt.Errorf("setting up mail: %w", err)
	}

	images, err := newImageStore(ctx, cfg.Image, database)
	if err != nil {
		return err
	}

	resolver := &graph.Resolver{
		DB:          database,
		Secret:      secret,
		Mailer:      mailer,
		FrontendURL: cfg.FrontendURL,
	}
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	apiRouter := api.NewRouter(database, schema, images)
	webRouter, err := web.NewRouter(&graph.Client{Schema: schema}, images)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle(blob.ImagePathPrefix, apiRouter)
	mux.Handle("/", webRouter)

	session := api.SessionMiddleware(secret, database, cfg.HTTP.CookieSecure)
	handler := api.LoggingMiddleware(session(mux))

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.HTTP.Address, err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	slog.Info("server started", "addr", ln.Addr().String(), "images", cfg.Image.Store)
	if err := serve(server, ln, quit, 5*time.Second); err != nil {
		return err
	}

	slog.Info("server stopped, waiting for outgoing mail")
	resolver.Wait()
	return nil
}

func newImageStore(ctx context.Context, cfg config.Image, database *sql.DB) (blob.Store, error) {
	if cfg.Store == config.ImageStoreS3 {
		s, err := blob.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("setting up S3: %w", err)
		}
		return s, nil
	}
	return &blob.DBStore{DB: database}, nil
}

// createAdmin creates an account holding every permission and returns its
// generated password.
func createAdmin(ctx context.Context, database *sql.DB, email string) (string, error) {
	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	perms := []string{
		model.PermissionAdmin,
		model.PermissionUser,
		model.PermissionItemCreate,
		model.PermissionItemUpdate,
		model.PermissionItemDelete,
		model.PermissionPermissionUpdate,
	}
	if _, err := store.CreateUser(ctx, database, "Admin", model.NormalizeEmail(email), hash, perms); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}
	return password, nil
}

func printAdmin(email, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("Use the password reset form to change it.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

// serve runs server on ln until a signal arrives on quit. It returns once
// in-flight requests have finished or the timeout has passed.
func serve(server *http.Server, ln net.Listener, quit <-chan os.Signal, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ln) }()

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
