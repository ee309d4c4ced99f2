package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tradefair/internal/config"
	"tradefair/internal/controller"
	"tradefair/internal/middleware"
	"tradefair/internal/model"
	"tradefair/internal/repository"
	"tradefair/internal/router"
	"tradefair/internal/service"
	"tradefair/internal/task"
	"tradefair/pkg/database"
	"tradefair/pkg/logger"
)

func main() {
	// 1. 加载配置与日志
	cfg := config.Load()
	logger.Init(cfg.Mode)
	defer logger.Sync()

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    "tradefair",
		TokenTTL:  2 * time.Hour,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg)

	// 4. 启动定时任务
	cleanupTask := initTasks(deps, cfg)
	defer cleanupTask.Stop()

	// 5. 初始化路由并启动服务
	gin.SetMode(cfg.Mode)
	r := router.SetupRouter(deps.Controllers)
	startServer(r, cfg)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Vendor       repository.VendorRepository
	Listing      repository.ListingRepository
	Order        repository.OrderRepository
	Review       repository.ReviewRepository
	Notification repository.NotificationRepository
	Activity     repository.ActivityRepository
}

// Services 服务集合
type Services struct {
	User         *service.UserService
	Vendor       *service.VendorService
	Catalog      *service.CatalogService
	Order        *service.OrderService
	Payment      *service.PaymentService
	Review       *service.ReviewService
	Search       *service.SearchService
	Activity     *service.ActivityService
	Notification *service.NotificationService
	Email        *service.EmailService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并迁移表结构
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN,
		// Identity
		&model.User{}, &model.Vendor{},
		// Catalog
		&model.Listing{},
		// Order
		&model.Order{}, &model.OrderItem{},
		// Review
		&model.Review{}, &model.ReviewHelpful{},
		// Misc
		&model.Notification{}, &model.UserActivity{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:         repository.NewUserRepository(db),
		Vendor:       repository.NewVendorRepository(db),
		Listing:      repository.NewListingRepository(db),
		Order:        repository.NewOrderRepository(db),
		Review:       repository.NewReviewRepository(db),
		Notification: repository.NewNotificationRepository(db),
		Activity:     repository.NewActivityRepository(db),
	}

	// -------- 外部集成 --------
	emailSvc := service.NewEmailService(&service.EmailConfig{
		APIURL: cfg.EmailAPIURL,
		APIKey: cfg.EmailAPIKey,
		From:   cfg.EmailFrom,
	})
	enhancer := service.NewGeminiEnhancer(&service.GeminiConfig{
		ApiKey:       cfg.GeminiAPIKey,
		ModelVersion: cfg.GeminiModel,
	})
	gateway := service.NewPaystackClient(&service.PaystackConfig{
		BaseURL:   cfg.PaystackBaseURL,
		SecretKey: cfg.PaystackSecretKey,
	})
	if cfg.PaystackSecretKey == "" {
		logger.L.Warn("未配置 PAYSTACK_SECRET_KEY, 支付相关接口将返回网关错误")
	}

	// -------- 业务服务 --------
	services := &Services{Email: emailSvc}
	services.User = service.NewUserService(repos.User)
	services.Vendor = service.NewVendorService(repos.Vendor, repos.User, emailSvc)
	services.Catalog = service.NewCatalogService(repos.Listing, repos.Vendor, repos.User)
	services.Order = service.NewOrderService(repos.Order, repos.Vendor, repos.User)
	services.Payment = service.NewPaymentService(gateway, repos.User, cfg.AppBaseURL, cfg.PaystackSecretKey != "")
	services.Review = service.NewReviewService(repos.Review, repos.Listing, repos.Vendor, repos.User)
	services.Search = service.NewSearchService(repos.Listing, enhancer)
	services.Activity = service.NewActivityService(repos.Activity, repos.User)
	services.Notification = service.NewNotificationService(repos.Notification, repos.User)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		User:         controller.NewUserController(services.User),
		Vendor:       controller.NewVendorController(services.Vendor),
		Admin:        controller.NewAdminController(services.Vendor),
		Product:      controller.NewProductController(services.Catalog),
		Order:        controller.NewOrderController(services.Order),
		Payment:      controller.NewPaymentController(services.Payment),
		Review:       controller.NewReviewController(services.Review),
		Search:       controller.NewSearchController(services.Search),
		Activity:     controller.NewActivityController(services.Activity),
		Notification: controller.NewNotificationController(services.Notification),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies, cfg *config.Config) *task.ActivityCleanupTask {
	cleanupTask := task.NewActivityCleanupTask(deps.Services.Activity, cfg.ActivityRetentionDays)
	cleanupTask.Start()
	return cleanupTask
}

// ==================== 服务启动 ====================

// startServer 启动服务并优雅停机
func startServer(r http.Handler, cfg *config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.L.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("收到退出信号, 正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L.Error("服务关闭异常", zap.Error(err))
	}
	logger.L.Info("服务已退出")
}
