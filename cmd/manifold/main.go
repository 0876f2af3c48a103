package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/geomanifold/manifold/internal/handlers"
	"github.com/geomanifold/manifold/pkg/adapters"
	"github.com/geomanifold/manifold/pkg/custom_cache"
	"github.com/geomanifold/manifold/pkg/feedtypes/rss"
	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/manifold/app"
	"github.com/geomanifold/manifold/pkg/manifold/ports"
	"github.com/geomanifold/manifold/pkg/plugins"
	"github.com/geomanifold/manifold/scripts"
	"github.com/hashicorp/logutils"
	"github.com/hellofresh/health-go/v5"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/mattn/go-sqlite3"
)

// Command line flags.
var (
	dsn = flag.String("dsn", "", "datasource name")
)

type Settings struct {
	DatabaseDirectory      string   `envconfig:"DB_DIR" default:"db/manifold.sqlite"`
	Version                string   `envconfig:"VERSION" default:"unknown"`
	ListenAddress          string   `envconfig:"LISTEN_ADDRESS" default:":8080"`
	RefreshIntervalSeconds int      `envconfig:"REFRESH_INTERVAL_SECONDS" default:"1800"`
	AdminUsers             []string `envconfig:"ADMIN_USERS" default:""`
}

func ConfigureLogging() {
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"},
		MinLevel: logutils.LogLevel(os.Getenv("LOG_LEVEL")),
		Writer:   os.Stderr,
	}
	log.SetOutput(filter)
}

func CreateHealthCheck(db *sql.DB, version string) *health.Health {
	h, _ := health.New(health.WithComponent(health.Component{
		Name:    "manifold",
		Version: version,
	}), health.WithChecks(health.Config{
		Name:      "sqlite",
		Timeout:   time.Second * 5,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			return db.PingContext(ctx)
		},
	},
	))
	return h
}

func InitDatabase(settings *Settings) *sql.DB {
	finalConnection := dsn
	if *dsn == "" {
		log.Print("[INFO] dsn is not present... defaulting to DB_DIR")
		finalConnection = &settings.DatabaseDirectory
	}

	// Create empty dir if not exists
	dbPath := path.Dir(*finalConnection)
	err := os.MkdirAll(dbPath, 0660)
	if err != nil {
		log.Printf("[INFO] unable to initialize DB_DIR at: %s. Error: %v", dbPath, err)
	}

	// Connect to SQLite database.
	sqlDb, err := sql.Open("sqlite3", *finalConnection)
	if err != nil {
		log.Fatalf("[FATAL] open db: %v", err)
	}

	log.Printf("[INFO] database opened at %s", *finalConnection)

	// Run migrations
	if _, err := sqlDb.Exec(scripts.SchemaSQL); err != nil {
		log.Fatalf("[FATAL] cannot migrate schema: %v", err)
	}

	return sqlDb
}

func main() {
	flag.Parse()
	ConfigureLogging()

	var settings Settings
	if err := envconfig.Process("", &settings); err != nil {
		log.Fatalf("[FATAL] couldn't process envconfig: %v", err)
	}
	log.Printf("[INFO] running VERSION %s:\n - DSN=%s\n - DB_DIR=%s\n\n", settings.Version, *dsn, settings.DatabaseDirectory)

	db := InitDatabase(&settings)
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Fatalf("[FATAL] failed to close the database connection: %v", err)
		}
	}(db)

	custom_cache.InitializeCache()

	// The bundled plugins known to this build.
	plugins.Register(rss.NewPlugin())

	registry := adapters.NewFeedTypeRegistry()
	pluginStorage := adapters.NewPluginStorage(db)
	if err := plugins.Discover(pluginStorage, registry); err != nil {
		log.Printf("[ERROR] plugin discovery finished with failures: %v", err)
	}

	permStorage := adapters.NewPermissionStorage(db)
	for _, userID := range settings.AdminUsers {
		for _, permission := range manifold.AllPermissions() {
			if err := permStorage.Grant(userID, permission); err != nil {
				log.Fatalf("[FATAL] cannot seed permissions for %s: %v", userID, err)
			}
		}
		log.Printf("[INFO] seeded administrator permissions for %s", userID)
	}

	perms := manifold.NewStorePermissionService(permStorage)
	contentStorage := adapters.NewContentStorage(db)
	feedStorage := adapters.NewFeedStorage(db)

	application := app.NewApp(registry, feedStorage, adapters.NewEventStorage(db), contentStorage, perms)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	timer := ports.NewRefreshFeedsTimer(application.RefreshFeeds, time.Duration(settings.RefreshIntervalSeconds)*time.Second)
	go timer.Run(ctx)

	server := &http.Server{
		Addr:    settings.ListenAddress,
		Handler: handlers.NewOpsRouter(CreateHealthCheck(db, settings.Version)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] listening on %s", settings.ListenAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[FATAL] server terminated: %v", err)
	}
}
