package main

import (
	"flag"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/sushihentaime/bloglist/internal/auditservice"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/store"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService

	// per client rate limiters
	limiters  *common.Cache
	limiterMu sync.Mutex
}

func newApplication(cfg *Config, logger *slog.Logger, blogs blogservice.Store, users userservice.Store, mb common.MessageProducer) *application {
	hasher := userservice.NewBcryptHasher(cfg.BcryptCost)
	tokens := userservice.NewJWTService(cfg.JWTSecret, userservice.TokenTTL)

	return &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(users, hasher, tokens, mb, logger),
		blogService: blogservice.NewBlogService(blogs, mb, logger),
		limiters:    common.NewCache(3*time.Minute, 5*time.Minute),
	}
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv configuration file")
	flag.Parse()

	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.logLevel()}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	var (
		blogs blogservice.Store
		users userservice.Store
	)

	switch cfg.StoreBackend {
	case "memory":
		m := store.NewMemoryStore()
		blogs, users = m, m
		logger.Warn("using the in-memory store, data will not survive a restart")
	default:
		// Apply the schema before serving
		m, err := common.MigrateUp(cfg.dsn())
		if err != nil {
			return err
		}
		m.Close()

		db, err := common.NewDB(cfg.dsn(), 25, 25, 15*time.Minute)
		if err != nil {
			return err
		}
		defer common.CloseDB(db)

		blogs = blogservice.NewBlogModel(db)
		users = userservice.NewUserModel(db)
	}

	var producer common.MessageProducer = common.NopProducer{}

	if cfg.MQHost != "" {
		broker, err := common.NewMessageBroker(cfg.amqpURI())
		if err != nil {
			return err
		}
		defer broker.Close()

		// Setup the exchange, queue, and binding key
		if err := common.SetupEventExchange(broker); err != nil {
			return err
		}
		producer = broker

		audit := auditservice.NewAuditService(broker, logger)
		if err := audit.Start(); err != nil {
			return err
		}
		defer audit.Close()
	} else {
		logger.Info("no message broker configured, domain events are dropped")
	}

	app := newApplication(cfg, logger, blogs, users, producer)

	return app.serve()
}
