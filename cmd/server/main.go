package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AUlyanoff/web-api-server/internal/config"
	"github.com/AUlyanoff/web-api-server/internal/handlers"
	"github.com/AUlyanoff/web-api-server/internal/middleware"
	"github.com/AUlyanoff/web-api-server/internal/repo"
	"github.com/AUlyanoff/web-api-server/internal/seed"
	"github.com/AUlyanoff/web-api-server/internal/service"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// staticImagesBase — куда переписываются пути картинок в теле статей
const staticImagesBase = "/static/images_html"

func main() {
	// стартовый регистратор: конфиги ещё не прочитаны, уровень по умолчанию
	boot, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := boot.Sugar()
	sugar.Infof("web-api-server started at %s", time.Now().Format("02-01-2006 15:04:05, Monday"))

	// чтение и проверка конфигов; невалидный конфиг завершает процесс
	cfg := config.MustLoad(sugar)

	// основной регистратор с уровнем из конфига
	logger := newLogger(cfg.LogLevel())
	sugar = logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	gormDB, err := repo.InitDB(cfg.DSN())
	if err != nil {
		sugar.Fatalw("не удалось инициализировать базу", "error", err)
	}
	sugar.Infow("база инициализирована",
		"host", cfg.DBHost(),
		"port", cfg.DBPort(),
		"name", cfg.DBName(),
		"schema", cfg.DBSchema(),
		"user", cfg.DBUser(),
		"password", cfg.DB.Password.String(),
	)

	// demo-наполнение свежей базы
	if seed.Needed(ctx, gormDB) {
		if err := seed.Upload(ctx, gormDB, false); err != nil {
			sugar.Fatalw("не удалось загрузить демо-данные", "error", err)
		}
		sugar.Infow("демо-данные загружены")
	}

	menuRepo := repo.NewMenuRepository(gormDB)
	postRepo := repo.NewPostRepository(gormDB)
	userRepo := repo.NewUserRepository(gormDB)

	blogService := service.NewBlogService(menuRepo, postRepo, sugar, staticImagesBase)
	userService := service.NewUserService(userRepo, sugar)

	h := handlers.NewHandler(blogService, userService, sugar, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.AppHost(), cfg.AppPort())
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.WithLimit(cfg.Threads())(h.Router),
		ReadTimeout:  4 * time.Second,
		WriteTimeout: 4 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", addr,
		"threads", cfg.Threads(),
		"debug", cfg.DebugMode(),
		"loglevel", cfg.LogLevel(),
	)

	if err := srv.ListenAndServe(); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

// newLogger строит zap-регистратор с порогом из конфига
func newLogger(level string) *zap.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapLevel(level))
	logger, err := zc.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// zapLevel переводит уровень конфига в уровень zap
func zapLevel(level string) zapcore.Level {
	switch level {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "CRITICAL", "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.DebugLevel
	}
}
