package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-access-server/auth"
	"github.com/jrsteele09/go-access-server/credentials"
	"github.com/jrsteele09/go-access-server/internal/config"
	"github.com/jrsteele09/go-access-server/logins"
	"github.com/jrsteele09/go-access-server/notify"
	fakepermissionrepo "github.com/jrsteele09/go-access-server/permissions/repofake"
	"github.com/jrsteele09/go-access-server/server"
	"github.com/jrsteele09/go-access-server/store/pg"
	"github.com/jrsteele09/go-access-server/token"
	fakeuserrepo "github.com/jrsteele09/go-access-server/users/repofake"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	handler, cleanup, err := buildServer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildServer assembles the security core and its HTTP surface from config.
// The returned cleanup closes the database pool when one was opened.
func buildServer(c config.Config) (*server.Server, func(), error) {
	cleanup := func() {}

	signer, err := buildSigner(c)
	if err != nil {
		return nil, cleanup, err
	}

	hasher := credentials.NewHasher(c.GetHashPepper())

	tokens, err := token.New(
		signer,
		token.WithIssuer(c.GetAppName()),
		token.WithExpiry(c.GetTokenExpiry()),
	)
	if err != nil {
		return nil, cleanup, err
	}

	repos, cleanup, err := buildRepos(c)
	if err != nil {
		return nil, cleanup, err
	}

	security, err := auth.NewSecurityService(repos, hasher, tokens, buildNotifier(c))
	if err != nil {
		return nil, cleanup, err
	}

	strategy, err := auth.NewStrategy(tokens, repos.Permissions)
	if err != nil {
		return nil, cleanup, err
	}

	s, err := server.New(c, security, strategy, repos.Users)
	if err != nil {
		return nil, cleanup, err
	}
	return s, cleanup, nil
}

// buildSigner prefers an asymmetric key file when one is configured and
// falls back to symmetric HMAC with JWT_SECRET.
func buildSigner(c config.Config) (token.Signer, error) {
	if keyFile := c.GetJWTPrivateKeyFile(); keyFile != "" {
		pemData, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading JWT_PRIVATE_KEY_FILE")
		}
		keyPair, err := token.LoadKeyPairFromPEM("access-server", string(pemData))
		if err != nil {
			return nil, err
		}
		return token.NewKeyPairSigner(keyPair), nil
	}

	jwtSecret := c.GetJWTSecret()
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return token.NewHMACSigner(jwtSecret), nil
}

func buildRepos(c config.Config) (auth.Repos, func(), error) {
	cleanup := func() {}

	dsn := c.GetDatabaseDSN()
	if dsn == "" {
		log.Warn().Msg("DATABASE_DSN not set, using volatile in-memory stores")
		return auth.Repos{
			Users:       fakeuserrepo.NewFakeUserRepo(),
			Permissions: fakepermissionrepo.NewFakePermissionRepo(),
			Logins:      logins.NewInMemoryRepo(c.GetLoginCodeTTL()),
		}, cleanup, nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return auth.Repos{}, cleanup, errors.Wrap(err, "sql.Open")
	}
	cleanup = func() { _ = db.Close() }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return auth.Repos{}, cleanup, errors.Wrap(err, "db.Ping")
	}

	store := pg.New(db)
	return auth.Repos{
		Users:       store.Users(),
		Permissions: store.Permissions(),
		Logins:      store.Logins(),
	}, cleanup, nil
}

func buildNotifier(c config.Config) notify.Notifier {
	if c.GetSmtpHost() == "" {
		log.Warn().Msg("SMTP_HOST not set, codes will be written to the log")
		return notify.LogNotifier{}
	}
	return notify.NewSMTPNotifier(
		c.GetSmtpHost(),
		c.GetSmtpPort(),
		c.GetSmtpFrom(),
		c.GetSmtpAccount(),
		c.GetSmtpPassword(),
	)
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
