package configwatcher

import (
	"context"
	"path/filepath"
	"time"

	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 收到重新解析后的完整配置
type Reloader func(cfg *config.Config)

const debounce = time.Second

// Watch 监听配置文件写入，防抖后重新加载并回调。
// 阻塞直到 ctx 取消；监听失败只记录日志，不影响服务运行。
func Watch(ctx context.Context, configFile string, reload Reloader) {
	log := logger.Named("configwatcher")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("Failed to create config watcher", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configFile)
	if err != nil {
		log.Error("Failed to resolve config path", zap.Error(err))
		return
	}

	// 监听目录而不是文件，编辑器替换文件时也能收到事件
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		log.Error("Failed to watch config dir", zap.Error(err))
		return
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(filepath.Dir(absPath))
			if err != nil {
				log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			log.Info("Config reloaded", zap.String("file", absPath))
			reload(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("Config watcher error", zap.Error(err))
		}
	}
}
