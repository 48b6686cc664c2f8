package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	appAuth "github.com/sharecrm/share/internal/app/auth"
	appControllers "github.com/sharecrm/share/internal/app/controllers"
	appMigrations "github.com/sharecrm/share/internal/app/migrations"
	appRepos "github.com/sharecrm/share/internal/app/repositories"
	appRoutes "github.com/sharecrm/share/internal/app/routes"
	appServices "github.com/sharecrm/share/internal/app/services"
	"github.com/sharecrm/share/internal/config"
	"github.com/sharecrm/share/internal/db"
	appMiddleware "github.com/sharecrm/share/internal/middleware"
	pkgAuth "github.com/sharecrm/share/internal/pkg/auth"
	"github.com/sharecrm/share/internal/pkg/cache"
	"github.com/sharecrm/share/internal/pkg/email"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/filestorage"
	"github.com/sharecrm/share/internal/pkg/logger"
	"github.com/sharecrm/share/internal/pkg/payments"
	"github.com/sharecrm/share/internal/pkg/websocket"
	"github.com/sharecrm/share/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Hub            *websocket.Hub
	FileStorage    filestorage.Storage
	Publisher      events.Publisher
	Logger         zerolog.Logger

	redis   *redis.Client
	stopHub context.CancelFunc
}

// Close stops the realtime hub and releases broker and cache connections
func (d *Dependencies) Close() {
	if d.stopHub != nil {
		d.stopHub()
	}
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:   logger.ParseLevel(cfg.Logging.Level),
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "sharecrm",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database.Pool)
	admin := seed.Admin{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(ctx, database, repos, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// Settings converts the enrollment configuration into service settings
func Settings(cfg *config.Config) (appServices.Settings, error) {
	settings := appServices.DefaultSettings()
	loc, err := time.LoadLocation(cfg.Enrollment.Timezone)
	if err != nil {
		return settings, fmt.Errorf("invalid enrollment timezone: %w", err)
	}
	settings.Location = loc
	settings.CancellationNotice = config.Duration(cfg.Enrollment.CancellationNotice, settings.CancellationNotice)
	settings.PAQValidity = config.Duration(cfg.Enrollment.PAQValidity, settings.PAQValidity)
	settings.Currency = strings.ToLower(cfg.Payments.Currency)
	settings.MaxUploadBytes = cfg.Storage.MaxUploadBytes
	return settings, nil
}

func setupStorage(ctx context.Context, cfg *config.Config) (filestorage.Storage, error) {
	if strings.ToLower(cfg.Storage.Driver) == "minio" {
		return filestorage.NewMinioStorage(ctx, filestorage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			URLExpiry: config.Duration(cfg.Storage.URLExpiry, 15*time.Minute),
		})
	}
	return filestorage.NewLocalStorage(cfg.Storage.LocalPath, strings.TrimRight(cfg.Server.BaseURL, "/")+"/uploads")
}

func setupPermissionCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (cache.PermissionCache, *redis.Client) {
	ttl := config.Duration(cfg.Redis.TTL, 10*time.Minute)
	if !cfg.Redis.Enabled {
		return cache.NewMemoryPermissionCache(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, using in-process permission cache")
		_ = client.Close()
		return cache.NewMemoryPermissionCache(ttl), nil
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Permission cache backed by redis")
	return cache.NewRedisPermissionCache(client, ttl), client
}

func setupPublisher(cfg *config.Config, lgr zerolog.Logger) events.Publisher {
	if !cfg.NATS.Enabled {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	if err != nil {
		lgr.Warn().Err(err).Str("url", cfg.NATS.URL).Msg("NATS unreachable, domain events disabled")
		return events.NoopPublisher{}
	}
	lgr.Info().Str("url", cfg.NATS.URL).Msg("Publishing domain events to NATS")
	return publisher
}

func setupGateway(cfg *config.Config) payments.Gateway {
	if strings.ToLower(cfg.Payments.Provider) == "stripe" {
		return payments.NewStripeGateway(cfg.Payments.StripeKey)
	}
	return payments.NewOfflineGateway()
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	ctx := context.Background()
	deps := &Dependencies{Logger: lgr}

	settings, err := Settings(cfg)
	if err != nil {
		return nil, err
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	repos := deps.Repos

	deps.FileStorage, err = setupStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	permCache, redisClient := setupPermissionCache(ctx, cfg, lgr)
	deps.redis = redisClient
	deps.Publisher = setupPublisher(cfg, lgr)
	gateway := setupGateway(cfg)
	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	hubCtx, stopHub := context.WithCancel(context.Background())
	deps.stopHub = stopHub
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run(hubCtx)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.Duration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: config.Duration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.UserRepository, repos.RoleRepository, repos.InstructorRepository, permCache)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	// Services
	authService := appServices.NewAuthService(database, repos.UserRepository, repos.CustomerRepository,
		repos.TokenRepository, repos.InstructorRepository, deps.AuthzService, deps.JWTService, lgr)
	customerService := appServices.NewCustomerService(repos.CustomerRepository, repos.TokenRepository, lgr)
	creditService := appServices.NewCreditService(repos.CustomerRepository, repos.CreditRepository, deps.Publisher, lgr)
	venueService := appServices.NewVenueService(repos.VenueRepository)
	instructorService := appServices.NewInstructorService(repos.InstructorRepository)
	termService := appServices.NewTermService(repos.TermRepository, settings)
	classService := appServices.NewClassService(database, repos.ClassRepository, repos.SessionRepository,
		repos.TermRepository, repos.VenueRepository, repos.InstructorRepository, repos.BookingRepository,
		repos.CreditRepository, deps.Publisher, settings, lgr)
	paqService := appServices.NewPAQService(database, repos.PAQRepository, repos.CustomerRepository,
		repos.FileRepository, deps.FileStorage, mailer, deps.Publisher, settings, lgr)
	fileService := appServices.NewFileService(repos.FileRepository, deps.FileStorage, deps.AuthzService)
	enrollmentService := appServices.NewEnrollmentService(database, repos.CustomerRepository, repos.TermRepository,
		repos.ClassRepository, repos.SessionRepository, repos.EnrollmentRepository, repos.BookingRepository,
		repos.PaymentRepository, repos.CreditRepository, gateway, mailer, deps.Publisher, settings, lgr)
	paymentService := appServices.NewPaymentService(database, repos.PaymentRepository, repos.EnrollmentRepository,
		repos.CustomerRepository, repos.BookingRepository, repos.CreditRepository, gateway, deps.Publisher, lgr)
	cancellationService := appServices.NewCancellationService(database, repos.CancellationRepository,
		repos.BookingRepository, repos.ClassRepository, repos.CustomerRepository, repos.CreditRepository,
		mailer, deps.Publisher, settings, lgr)
	attendanceService := appServices.NewAttendanceService(repos.ClassRepository, repos.SessionRepository,
		repos.BookingRepository, repos.AttendanceRepository, deps.AuthzService, deps.Hub, deps.Publisher, settings, lgr)
	reportService := appServices.NewReportService(repos.ReportRepository, repos.CustomerRepository,
		repos.TermRepository, repos.ClassRepository, settings, lgr)
	roleService := appServices.NewRoleService(database, repos.RoleRepository, repos.UserRepository, deps.AuthzService, lgr)
	userService := appServices.NewUserService(database, repos.UserRepository, repos.RoleRepository, repos.InstructorRepository, lgr)
	enquiryService := appServices.NewEnquiryService(repos.EnquiryRepository, lgr)

	// Controllers
	live := websocket.NewHandler(deps.Hub, lgr)
	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		Public:       appControllers.NewPublicController(termService, venueService, classService, enquiryService, appServices.PAQQuestions, lgr),
		Catalogue:    appControllers.NewCatalogueController(venueService, instructorService, termService),
		Customer:     appControllers.NewCustomerController(customerService, creditService, lgr),
		Class:        appControllers.NewClassController(classService, attendanceService, live, lgr),
		PAQ:          appControllers.NewPAQController(paqService, fileService, lgr),
		Enrollment:   appControllers.NewEnrollmentController(enrollmentService, lgr),
		Payment:      appControllers.NewPaymentController(paymentService, lgr),
		Cancellation: appControllers.NewCancellationController(cancellationService, lgr),
		Instructor:   appControllers.NewInstructorController(attendanceService, live, lgr),
		Report:       appControllers.NewReportController(reportService, lgr),
		User:         appControllers.NewUserController(roleService, userService, enquiryService, lgr),
	}

	lgr.Info().
		Str("storage", cfg.Storage.Driver).
		Str("payments", gateway.Name()).
		Bool("redis", redisClient != nil).
		Bool("nats", cfg.NATS.Enabled).
		Msg("Dependencies initialized")
	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Storage.MaxUploadBytes
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Origins()),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
