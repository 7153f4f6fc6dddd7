package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/common/logger"
	"storefront-service/common/middleware"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const serviceName = "storefront-service"

// unconfiguredIdentity answers sign-ins when no user store is reachable.
type unconfiguredIdentity struct{}

func (unconfiguredIdentity) SignInWithPassword(context.Context, string, string) (*models.Session, error) {
	return nil, errors.New("Identity provider is not configured")
}

func main() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	log, err := logger.Initialize(os.Getenv("APP_ENV"), nil)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// --- 1. Configuration ---

	cfg, err := LoadConfig(ctx)
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}
	zap.L().Info("AWS Configuration",
		zap.String("AWS_ENDPOINT", cfg.AWS.Endpoint),
		zap.String("AWS_S3_ENDPOINT", cfg.AWS.S3Endpoint),
		zap.String("AWS_REGION", cfg.AWS.Region),
	)

	if cfg.CloudWatchEnabled {
		cw, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.AWS, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			zap.L().Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		} else if log, err = logger.Initialize(cfg.Env, cw); err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	}

	metrics := awspkg.NewMetricsClient(awsCfg, cfg.AWS, cfg.MetricsNamespace, cfg.MetricsEnabled)

	// --- 2. Storage ---

	var db *gorm.DB
	var dbErr error
	if cfg.Postgres.Configured() {
		if db, dbErr = database.Connect(cfg.Postgres); dbErr != nil {
			zap.L().Error("PostgreSQL unavailable", zap.Error(dbErr))
			db = nil
		} else if err := models.Migrate(db); err != nil {
			zap.L().Error("Failed to migrate schema", zap.Error(err))
		}
	} else {
		zap.L().Warn("Missing PostgreSQL environment variables")
	}

	var productRepo repository.ProductRepo
	switch cfg.StoreBackend {
	case "dynamodb":
		ddbClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if ep := cfg.AWS.BaseEndpoint(); ep != nil {
				o.BaseEndpoint = ep
			}
		})
		productRepo = repository.NewDynamoAdapter(ddbClient, cfg.DynamoTable)
	default:
		productRepo = postgresProductRepo(db, dbErr)
	}

	var redisClient *redis.Client
	var sessions repository.SessionStore
	if cfg.RedisURL != "" {
		if redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL); err != nil {
			zap.L().Warn("Redis unavailable, refresh sessions are not recorded", zap.Error(err))
			redisClient = nil
		} else {
			sessions = repository.NewRedisSessionStore(redisClient)
		}
	}

	var publisher services.EventPublisher
	if cfg.ProductTopicARN != "" {
		publisher = awspkg.NewSNSClient(awsCfg, cfg.AWS)
	}

	imageStore := awspkg.NewS3ImageStore(awspkg.NewS3Client(awsCfg, cfg.AWS), cfg.S3Bucket, cfg.AWS.S3Endpoint, cfg.CloudFrontDomain)

	// --- 3. Dependency Injection ---

	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		zap.L().Fatal("Failed to create token service", zap.Error(err))
	}

	var identity services.IdentityProvider = unconfiguredIdentity{}
	if db != nil {
		users := repository.NewUserRepository(db)
		seedAdmin(ctx, users, cfg)
		identity = services.NewPasswordIdentityProvider(users, tokens, sessions, metrics)
	}

	catalogService := services.NewCatalogService(productRepo, metrics)
	ingestService := services.NewIngestService(productRepo, metrics, publisher, cfg.ProductTopicARN)
	uploadService := services.NewUploadService(imageStore, metrics)
	storefrontService := services.NewStorefrontService(catalogService)

	ctrls := routes.Controllers{
		Catalog:    controllers.NewCatalogController(catalogService),
		Ingest:     controllers.NewIngestController(ingestService),
		Upload:     controllers.NewUploadController(uploadService),
		Auth:       controllers.NewAuthController(identity, cfg.SecureCookies),
		Storefront: controllers.NewStorefrontController(storefrontService),
	}

	uploadLimiter := middleware.NewRateLimiter(rate.Limit(cfg.UploadRate), cfg.UploadBurst, 10*time.Minute)
	go uploadLimiter.Run(ctx)

	// --- 4. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics(metrics, serviceName))
	r.Use(middleware.Timeout(30 * time.Second))

	routes.RegisterRoutes(r, ctrls, uploadLimiter)

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Storefront Service starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Storefront Service...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		zap.L().Error("Failed to close PostgreSQL", zap.Error(err))
	}

	zap.L().Info("Storefront Service stopped gracefully")
}

// seedAdmin creates the configured dashboard user once.
func seedAdmin(ctx context.Context, users repository.UserRepo, cfg *Config) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPasswd == "" {
		return
	}
	if _, err := users.FindByEmail(ctx, cfg.SeedAdminEmail); err == nil {
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("Failed to look up seed user", zap.Error(err))
		return
	}

	hash, err := services.HashPassword(cfg.SeedAdminPasswd)
	if err != nil {
		zap.L().Warn("Failed to hash seed password", zap.Error(err))
		return
	}
	if err := users.Create(ctx, &models.User{Email: cfg.SeedAdminEmail, Password: hash, Role: "admin"}); err != nil {
		zap.L().Warn("Failed to create seed user", zap.Error(err))
		return
	}
	zap.L().Info("Seeded admin user", zap.String("email", cfg.SeedAdminEmail))
}

// postgresProductRepo picks the product store for the postgres backend. A
// failed connection keeps its error so callers see the query failure rather
// than a configuration error.
func postgresProductRepo(db *gorm.DB, connErr error) repository.ProductRepo {
	switch {
	case db != nil:
		return repository.NewGormProductRepository(db)
	case connErr != nil:
		return repository.UnavailableProductRepo{Err: connErr}
	default:
		return repository.UnconfiguredProductRepo{}
	}
}
