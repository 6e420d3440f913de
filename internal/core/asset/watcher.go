package asset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchMediaDir 监听素材目录，新落盘的媒体文件自动登记为素材
// ctx 取消后退出；目录不存在时先创建
func (c *Core) WatchMediaDir(ctx context.Context) error {
	if c.conf == nil || c.conf.MediaDir == "" {
		return nil
	}
	dir := c.conf.MediaDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		slog.Info("watching media dir", "dir", dir)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				c.importWatched(ctx, event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("media dir watch error", "err", err)
			}
		}
	}()
	return nil
}

// importWatched 等文件写入稳定后导入
// 拷贝大文件时 Create 事件先于写完到达，轮询大小直到两次一致
func (c *Core) importWatched(ctx context.Context, path string) {
	if KindFromPath(path) == "" {
		return
	}

	go func() {
		var lastSize int64 = -1
		for i := 0; i < 60; i++ {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			st, err := os.Stat(path)
			if err != nil {
				return
			}
			if st.Size() == lastSize {
				break
			}
			lastSize = st.Size()
		}

		if _, err := c.ImportAsset(ctx, &ImportAssetInput{Path: path}); err != nil {
			slog.Warn("auto import failed", "path", filepath.Base(path), "err", err)
			return
		}
		slog.Info("asset auto imported", "path", filepath.Base(path))
	}()
}
