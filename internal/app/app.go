package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

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
	tenant     *repository.TenantRepository
	user       *repository.UserRepository
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	lesson     *repository.LessonRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.LessonProgressRepository
	payment    *repository.PaymentRepository
	review     *repository.ReviewRepository
	bookmark   *repository.BookmarkRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	tenant     *service.TenantService
	course     *service.CourseService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	payment    *service.PaymentService
	review     *service.ReviewService
	storage    *service.StorageService
	content    *service.ContentService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	tenant     *controller.TenantController
	course     *controller.CourseController
	lesson     *controller.LessonController
	enrollment *controller.EnrollmentController
	payment    *controller.PaymentController
	content    *controller.ContentController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		tenant:     repository.NewTenantRepository(db),
		user:       repository.NewUserRepository(db),
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewLessonProgressRepository(db),
		payment:    repository.NewPaymentRepository(db),
		review:     repository.NewReviewRepository(db),
		bookmark:   repository.NewBookmarkRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.tenant = service.NewTenantService(repos.tenant)
	s.auth = service.NewAuthService(repos.user, repos.tenant, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.category, repos.module, repos.lesson, s.tenant)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.payment, rdb)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.lesson, repos.module, repos.course, rdb, cfg)
	s.payment = service.NewPaymentService(repos.payment, repos.enrollment, rdb)
	s.review = service.NewReviewService(repos.review, repos.bookmark, repos.enrollment, repos.lesson)
	s.content = service.NewContentService(s.storage, repos.lesson, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		tenant:     controller.NewTenantController(s.tenant),
		course:     controller.NewCourseController(s.course, s.review),
		lesson:     controller.NewLessonController(s.course, s.progress, s.review),
		enrollment: controller.NewEnrollmentController(s.enrollment, s.progress),
		payment:    controller.NewPaymentController(s.payment),
		content:    controller.NewContentController(s.content),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(logger.Options{Mode: cfg.Server.Mode})

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直接读库，进度摘要每次重算
		logger.Log.Warn("Redis unavailable, progress summary cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig 热更新支持在线调整的配置项，其余字段需重启生效
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.ApplyHot(newCfg)
	logger.Log.Info("config reloaded",
		zap.Int("completion_threshold", newCfg.Progress.CompletionThreshold),
		zap.Int("summary_cache_ttl", newCfg.Progress.SummaryCacheTTL))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
