package capture

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ixugo/goddd/pkg/orm"
)

// StartCleanupWorker 启动定时清理协程
// 程序启动时执行一次清理，随后每 60 分钟执行一次
func (c *Core) StartCleanupWorker() {
	if c.conf == nil || c.conf.Disabled || c.conf.RetainDays <= 0 {
		slog.Info("capture cleanup disabled")
		return
	}

	slog.Info("capture cleanup worker started",
		"retain_days", c.conf.RetainDays,
		"storage_dir", c.conf.StorageDir,
	)

	c.runCleanup()

	ticker := time.NewTicker(60 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.runCleanup()
	}
}

// runCleanup 删除超过保留天数的导出记录及文件
func (c *Core) runCleanup() {
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -c.conf.RetainDays)

	var expired []*Capture
	pager := &defaultPager{limit: 500}
	query := orm.NewQuery(2).OrderBy("started_at ASC")
	query.Where("started_at < ?", orm.Time{Time: cutoff})
	query.Where("status != ?", StatusRecording)
	if _, err := c.store.Capture().Find(ctx, &expired, pager, query.Encode()...); err != nil {
		slog.Warn("capture cleanup query failed", "err", err)
		return
	}

	var deleted, failed int
	for _, rec := range expired {
		if rec.Path != "" {
			if err := os.Remove(c.GetFullPath(rec.Path)); err != nil && !os.IsNotExist(err) {
				slog.Warn("capture file remove failed", "path", rec.Path, "err", err)
				failed++
				continue
			}
		}
		var out Capture
		if err := c.store.Capture().Del(ctx, &out, orm.Where("id=?", rec.ID)); err != nil {
			slog.Warn("capture record remove failed", "id", rec.ID, "err", err)
			failed++
			continue
		}
		deleted++
	}

	if deleted > 0 || failed > 0 {
		slog.Info("capture cleanup completed",
			"retain_days", c.conf.RetainDays,
			"cutoff_time", cutoff.Format(time.DateTime),
			"deleted", deleted,
			"failed", failed,
		)
	}
}

// defaultPager 内部使用的分页器，避免传入 nil 导致空指针
type defaultPager struct {
	limit int
}

func (p *defaultPager) Offset() int { return 0 }
func (p *defaultPager) Limit() int  { return p.limit }
