package main

import (
	"errors"
	"fmt"
	"net/http"
	"qrlink-platform/internal/config"
	"qrlink-platform/internal/handler"
	"qrlink-platform/internal/middleware"
	"qrlink-platform/internal/model"
	"qrlink-platform/internal/qrtoken"
	"qrlink-platform/pkg/database"
	auth "qrlink-platform/pkg/jwt"
	"qrlink-platform/pkg/logger"
	"qrlink-platform/pkg/redis"
	"time"

	_ "qrlink-platform/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title QRLink 动态二维码平台 API
// @version 1.0
// @description 创建永久二维码，随时修改跳转目标，统计扫码数据
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	db, err := database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	// 初始化并启动码牌生成器
	tokenGenerator := qrtoken.NewGenerator(db, sugaredLogger)
	tokenGenerator.Start()
	defer tokenGenerator.Stop()
	sugaredLogger.Info("✅ 码牌生成器已启动")

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	if err := createAdminUser(db); err != nil {
		sugaredLogger.Errorf("创建管理员失败: %v", err)
	}

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.LoadHTMLGlob("web/templates/*")
	router.Static("/static", "./web/static")

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMiddleware := middleware.AuthMiddleware(tokenManager)
	adminMiddleware := middleware.AdminMiddleware()
	rateLimitMiddleware := middleware.RateLimit(rdb, &cfg.RateLimit)
	router.Use(rateLimitMiddleware)

	// 将生成器注入到 Handler
	qrHandler := handler.NewQRHandler(db, rdb, tokenGenerator, cfg.App.BaseURL)
	authHandler := handler.NewAuthHandler(db, rdb, tokenManager)

	registerRoutes(router, qrHandler, authHandler, authMiddleware, adminMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	qrHandler *handler.QRHandler,
	authHandler *handler.AuthHandler,
	authMiddleware, adminMiddleware gin.HandlerFunc,
) {
	router.GET("/", qrHandler.IndexPage)
	router.GET("/health", qrHandler.HealthCheck)

	// 扫码结果页必须先于 /:code 注册
	router.GET("/not-found", qrHandler.NotFoundPage)
	router.GET("/inactive", qrHandler.InactivePage)
	router.GET("/error", qrHandler.ErrorPage)
	router.GET("/:code", qrHandler.Redirect)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/me", authHandler.GetCurrentUser)
		api.POST("/qrcodes", qrHandler.CreateQR)
		api.GET("/qrcodes", qrHandler.ListQR)
		api.PATCH("/qrcodes/:id", qrHandler.UpdateQR)
		api.DELETE("/qrcodes/:id", qrHandler.DeleteQR)
		api.GET("/subscription", qrHandler.GetSubscription)
		api.POST("/subscription", qrHandler.UpgradeSubscription)
		api.GET("/analytics", qrHandler.GetAnalytics)
	}

	admin := api.Group("/admin")
	admin.Use(adminMiddleware)
	{
		admin.GET("/stats", qrHandler.GetPlatformStats)
	}
}

func createAdminUser(db *gorm.DB) error {
	var existing model.User
	if err := db.Where("email = ?", "admin@qrlink.local").First(&existing).Error; err == nil {
		return nil
	}

	admin := model.User{Email: "admin@qrlink.local", Name: "admin", Role: "admin", IsActive: true}
	if err := admin.SetPassword("admin"); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	zap.S().Infow("✅ 默认管理员创建成功", "email", "admin@qrlink.local")
	return nil
}
