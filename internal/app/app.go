package app

import (
	"context"
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/controller"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/pkg/database"
	"driveschool_backend/pkg/logger"
	"driveschool_backend/pkg/monitoring"
	"driveschool_backend/pkg/security"
	"driveschool_backend/pkg/tracing"
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
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	theoryCategory *repository.TheoryCategoryRepository
	theoryQuestion *repository.TheoryQuestionRepository
	theoryProgress *repository.TheoryProgressRepository
	booking        *repository.BookingRepository
	course         *repository.CourseRepository
	message        *repository.MessageRepository
	setting        *repository.SettingRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	user        *service.UserService
	email       *service.EmailService
	theory      *service.TheoryService
	theoryStats *service.TheoryStatsService
	theoryAdmin *service.TheoryAdminService
	booking     *service.BookingService
	course      *service.CourseService
	message     *service.MessageService
	setting     *service.SettingService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	theory      *controller.TheoryController
	theoryAdmin *controller.TheoryAdminController
	booking     *controller.BookingController
	course      *controller.CourseController
	message     *controller.MessageController
	setting     *controller.SettingController
	dashboard   *controller.DashboardController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a reloaded config out to the registered services.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		theoryCategory: repository.NewTheoryCategoryRepository(db),
		theoryQuestion: repository.NewTheoryQuestionRepository(db),
		theoryProgress: repository.NewTheoryProgressRepository(db),
		booking:        repository.NewBookingRepository(db),
		course:         repository.NewCourseRepository(db),
		message:        repository.NewMessageRepository(db, rdb),
		setting:        repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.email = service.NewEmailService(cfg)
	s.theory = service.NewTheoryService(repos.theoryCategory, repos.theoryQuestion, repos.theoryProgress, cfg, db)
	s.theoryStats = service.NewTheoryStatsService(repos.theoryQuestion, repos.theoryCategory, cfg)
	s.theoryAdmin = service.NewTheoryAdminService(repos.theoryQuestion, repos.theoryCategory, s.storage)
	s.booking = service.NewBookingService(repos.booking, repos.user, s.email)
	s.course = service.NewCourseService(repos.course)
	s.message = service.NewMessageService(repos.message, repos.user)
	s.setting = service.NewSettingService(repos.setting, rdb)
	s.dashboard = service.NewDashboardService(repos.user, repos.booking, repos.course, repos.theoryProgress, s.message, s.theoryStats)

	a.RegisterConfigCallback(s.theory.UpdatePolicy)
	a.RegisterConfigCallback(s.theoryStats.UpdatePolicy)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		theory:      controller.NewTheoryController(s.theory),
		theoryAdmin: controller.NewTheoryAdminController(s.theoryAdmin, s.theoryStats),
		booking:     controller.NewBookingController(s.booking),
		course:      controller.NewCourseController(s.course),
		message:     controller.NewMessageController(s.message),
		setting:     controller.NewSettingController(s.setting),
		dashboard:   controller.NewDashboardController(s.dashboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
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
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("driveschool-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

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

	logger.Log.Sync()
	log.Println("Server exiting")
}
