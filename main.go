// @title Smart Quiz 后端 API
// @version 1.0
// @description 多语言答题平台后端：题目以乌兹别克语录入，写入时自动翻译为俄语和英语。

// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"smart_quiz_backend/internal/app"
	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	normalize := flag.Bool("normalize-categories", false, "把旧格式分类名转换为三语格式，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(app.ConfigDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	if *normalize {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		n, err := application.NormalizeCategories(ctx)
		if err != nil {
			logger.Log.Fatal("Failed to normalize categories", zap.Error(err))
		}
		logger.Log.Info("Categories normalized", zap.Int("updated", n))
		application.Close(ctx)
		return
	}

	application.Run()
}
