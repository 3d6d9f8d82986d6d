package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "shorturl-service/docs"
	"shorturl-service/internal/config"
	"shorturl-service/internal/handler"
	"shorturl-service/internal/middleware"
	"shorturl-service/internal/service"
	"shorturl-service/internal/shortcode"
	"shorturl-service/internal/store"
	"shorturl-service/pkg/database"
	"shorturl-service/pkg/logger"
)

// @title URL Shortener API
// @version 1.0.0
// @description 短链接服务：创建短链接、跳转计数、通过管理密钥查看或删除
// @BasePath /
func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "配置加载失败:", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, "日志初始化失败:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Logger.Sync()
	}()
	sugaredLogger := logger.Sugar

	db, err := database.Init(cfg.Database, logger.Logger)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugaredLogger.Errorf("关闭数据库连接失败: %v", err)
		}
	}()
	sugaredLogger.Infof("✅ 数据库连接成功 (%s)", cfg.Database.Driver)

	mappingStore := store.NewMappingStore(db)
	generator := shortcode.NewGenerator(cfg.Keys.URLKeyLength, cfg.Keys.SecretKeyBytes, sugaredLogger)
	svc := service.NewMappingService(mappingStore, generator, cfg.Keys.MaxAttempts, sugaredLogger)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.Metrics())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	urlHandler := handler.NewURLHandler(svc, mappingStore, sugaredLogger)
	adminHandler := handler.NewAdminHandler(svc, sugaredLogger)
	registerRoutes(router, urlHandler, adminHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("服务启动失败: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	sugaredLogger.Info("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugaredLogger.Errorf("服务关闭失败: %v", err)
	}
	sugaredLogger.Info("服务已停止")
}

func registerRoutes(router *gin.Engine, urlHandler *handler.URLHandler, adminHandler *handler.AdminHandler) {
	router.GET("/", urlHandler.Welcome)
	router.GET("/health", urlHandler.HealthCheck)

	router.POST("/url", urlHandler.CreateURL)
	router.GET("/:url_key", urlHandler.Redirect)

	admin := router.Group("/admin")
	{
		admin.GET("/:secret_key", adminHandler.GetInfo)
		admin.DELETE("/:secret_key", adminHandler.Delete)
	}
}
