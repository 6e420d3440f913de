package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/asset"
	"github.com/vidit-app/vidit/internal/core/compositor"
	"github.com/vidit-app/vidit/internal/core/playback"
	"github.com/vidit-app/vidit/internal/core/publish"
)

// App 运行期聚合，http 服务与常驻后台任务的依赖
type App struct {
	Conf       *conf.Bootstrap
	Handler    http.Handler
	Clock      *playback.Clock
	Assets     *asset.Core
	Compositor *compositor.Core
	Publisher  *publish.Core
}

// Run 构建依赖并启动 http 服务与后台任务，返回的函数用于优雅退出
func Run(bc *conf.Bootstrap) (func(), error) {
	app, cleanup, err := wireApp(bc)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.Clock.Run(ctx)
	app.Publisher.StartScheduler(ctx)
	if bc.Editor.WatchMediaDir {
		go func() {
			if err := app.Assets.WatchMediaDir(ctx); err != nil {
				slog.Error("media dir watcher exited", "err", err)
			}
		}()
	}

	svr := &http.Server{
		Addr:              fmt.Sprintf(":%d", bc.Server.HTTP.Port),
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("http server started", "port", bc.Server.HTTP.Port)
		if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server exited", "err", err)
		}
	}()

	return func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = svr.Shutdown(stopCtx)
		cancel()
		app.Compositor.Close()
		cleanup()
	}, nil
}
