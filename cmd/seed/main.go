package main

import (
	"context"
	"flag"

	"github.com/AUlyanoff/web-api-server/internal/config"
	"github.com/AUlyanoff/web-api-server/internal/repo"
	"github.com/AUlyanoff/web-api-server/internal/seed"

	"go.uber.org/zap"
)

// Ручное (пере)наполнение базы демо-данными.
// С флагом -force таблицы предварительно уничтожаются.
func main() {
	force := flag.Bool("force", false, "уничтожить таблицы перед наполнением")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	cfg := config.MustLoad(sugar)

	gormDB, err := repo.InitDB(cfg.DSN())
	if err != nil {
		sugar.Fatalw("не удалось инициализировать базу", "error", err)
	}

	if err := seed.Upload(context.Background(), gormDB, *force); err != nil {
		sugar.Fatalw("не удалось загрузить демо-данные", "error", err)
	}
	sugar.Infow("демо-данные загружены", "force", *force)
}
