package app

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/controller"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/service"
	"circlenet_backend/pkg/database"
	"circlenet_backend/pkg/logger"
	"circlenet_backend/pkg/monitoring"
	"circlenet_backend/pkg/security"
	"circlenet_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	connection *repository.ConnectionRepository
	circle     *repository.CircleRepository
	intro      *repository.IntroRepository
	invitation *repository.InvitationRepository
	post       *repository.PostRepository
	message    *repository.MessageRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	connection *service.ConnectionService
	circle     *service.CircleService
	intro      *service.IntroService
	invitation *service.InvitationService
	feed       *service.FeedService
	message    *service.MessageService
	storage    service.StorageProvider
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	connection *controller.ConnectionController
	circle     *controller.CircleController
	intro      *controller.IntroController
	invitation *controller.InvitationController
	post       *controller.PostController
	message    *controller.MessageController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		connection: repository.NewConnectionRepository(db, rdb),
		circle:     repository.NewCircleRepository(db),
		intro:      repository.NewIntroRepository(db),
		invitation: repository.NewInvitationRepository(db),
		post:       repository.NewPostRepository(db),
		message:    repository.NewMessageRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.connection, storage)
	s.connection = service.NewConnectionService(repos.connection, repos.circle, cfg)
	s.circle = service.NewCircleService(repos.circle, repos.connection)
	s.intro = service.NewIntroService(repos.intro, repos.connection, repos.user, s.connection)
	s.invitation = service.NewInvitationService(repos.invitation, repos.circle, repos.connection, s.connection, cfg)
	s.feed = service.NewFeedService(repos.post, repos.circle)
	s.message = service.NewMessageService(repos.message, repos.connection)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user, s.feed, a.Config),
		connection: controller.NewConnectionController(s.connection),
		circle:     controller.NewCircleController(s.circle),
		intro:      controller.NewIntroController(s.intro),
		invitation: controller.NewInvitationController(s.invitation),
		post:       controller.NewPostController(s.feed),
		message:    controller.NewMessageController(s.message),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.MigrateOnly {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if cfg.MigrateOnly {
			logger.Log.Info("Migration complete, exiting")
			os.Exit(0)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("circlenet", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
