package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/vidit-app/vidit/internal/core/bz"
	"github.com/vidit-app/vidit/pkg/framepipe"
)

// CaptureStorer Instantiation interface
type CaptureStorer interface {
	Find(context.Context, *[]*Capture, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Capture, ...orm.QueryOption) error
	Add(context.Context, *Capture) error
	Edit(context.Context, *Capture, func(*Capture), ...orm.QueryOption) error
	Del(context.Context, *Capture, ...orm.QueryOption) error
}

// FindCaptures 分页查询导出记录
func (c *Core) FindCaptures(ctx context.Context, in *FindCaptureInput) ([]*Capture, int64, error) {
	query := orm.NewQuery(2).OrderBy("started_at DESC")
	if in.ProjectID != "" {
		query.Where("project_id = ?", in.ProjectID)
	}
	if in.Status != "" {
		query.Where("status = ?", in.Status)
	}

	items := make([]*Capture, 0, in.Limit())
	total, err := c.store.Capture().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetCapture Query a single object
func (c *Core) GetCapture(ctx context.Context, id string) (*Capture, error) {
	var out Capture
	if err := c.store.Capture().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// StartCapture 启动时间轴导出
// 同一项目同时只允许一个导出任务；渲染在后台进行，超过
// MaxSeconds 的看门狗强制收尾，已写入的帧保留
func (c *Core) StartCapture(ctx context.Context, in *StartCaptureInput) (*Capture, error) {
	if !c.IsEnabled() {
		return nil, reason.ErrBadRequest.SetMsg("导出功能未启用")
	}
	if c.source == nil || c.projects == nil {
		return nil, reason.ErrServer.SetMsg("capture dependencies not configured")
	}

	proj, err := c.projects.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	if !c.reserve(in.ProjectID, cancel) {
		cancel()
		return nil, reason.ErrBadRequest.SetMsg("该项目已有导出任务进行中")
	}

	name := exportFilename(proj.Name, time.Now())
	out := Capture{
		ID:        c.uni.UniqueID(bz.IDPrefixCapture),
		ProjectID: in.ProjectID,
		Name:      name,
		Path:      name,
		Status:    StatusRecording,
		StartedAt: orm.Now(),
	}
	if err := c.store.Capture().Add(ctx, &out); err != nil {
		c.release(in.ProjectID)
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}

	go c.runExport(runCtx, &out, proj.Width, proj.Height, proj.Duration)
	return &out, nil
}

// reserve 抢占项目的导出名额，同一项目并发启动时只有一个成功
func (c *Core) reserve(projectID string, cancel context.CancelFunc) bool {
	_, loaded := c.running.LoadOrStore(projectID, cancel)
	return !loaded
}

// release 释放名额并取消对应的渲染上下文
func (c *Core) release(projectID string) {
	if cancel, ok := c.running.Load(projectID); ok {
		cancel()
		c.running.Delete(projectID)
	}
}

// StopCapture 手动停止导出，保留已写入部分
func (c *Core) StopCapture(ctx context.Context, id string) (*Capture, error) {
	rec, err := c.GetCapture(ctx, id)
	if err != nil {
		return nil, err
	}
	if cancel, ok := c.running.Load(rec.ProjectID); ok {
		cancel()
	}
	return rec, nil
}

// runExport 逐帧渲染并写入编码器
func (c *Core) runExport(ctx context.Context, rec *Capture, width, height int, duration float64) {
	defer c.release(rec.ProjectID)

	fps := c.conf.FPS
	if fps <= 0 {
		fps = 30
	}
	// 看门狗：渲染时长与墙钟时间都不允许超过 MaxSeconds
	if limit := float64(c.conf.MaxSeconds); limit > 0 && duration > limit {
		slog.Warn("export duration capped by watchdog", "capture_id", rec.ID, "duration", duration, "max", limit)
		duration = limit
	}
	if c.conf.MaxSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.conf.MaxSeconds)*time.Second)
		defer cancel()
	}

	outPath := filepath.Join(c.conf.StorageDir, rec.Path)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		c.finish(rec.ID, StatusFailed, 0, 0, 0)
		return
	}

	sink, err := c.newMuxer(framepipe.MuxConfig{
		OutputPath:  outPath,
		Width:       width,
		Height:      height,
		FPS:         fps,
		BitrateKbps: c.conf.BitrateKbps,
	})
	if err != nil {
		slog.Error("muxer create failed", "capture_id", rec.ID, "err", err)
		c.finish(rec.ID, StatusFailed, 0, 0, 0)
		return
	}
	if err := sink.Start(); err != nil {
		slog.Error("muxer start failed", "capture_id", rec.ID, "err", err)
		c.finish(rec.ID, StatusFailed, 0, 0, 0)
		return
	}

	slog.Info("export started", "capture_id", rec.ID, "duration", duration, "fps", fps)

	status := StatusDone
	// 导出不走交互播放时钟：从 0 起按固定帧率逐帧采样，
	// 帧序列与把项目从头播放到结尾一致，且结果可复现
	totalFrames := int(duration * float64(fps))
	for i := 0; i < totalFrames; i++ {
		t := float64(i) / float64(fps)
		frame, err := c.source.Composite(ctx, t)
		if err != nil {
			// 取消或看门狗超时，保留已写入部分
			status = StatusStopped
			slog.Warn("export interrupted", "capture_id", rec.ID, "at", t, "err", err)
			break
		}
		if err := sink.WriteFrame(frame.Pix); err != nil {
			status = StatusFailed
			slog.Error("export write failed", "capture_id", rec.ID, "at", t, "err", err)
			break
		}
	}

	frames := sink.Frames()
	if err := sink.Close(); err != nil {
		slog.Error("muxer close failed", "capture_id", rec.ID, "err", err)
		if status == StatusDone {
			status = StatusFailed
		}
	}

	var size int64
	if st, err := os.Stat(outPath); err == nil {
		size = st.Size()
	}
	c.finish(rec.ID, status, float64(frames)/float64(fps), int64(frames), size)
	slog.Info("export finished", "capture_id", rec.ID, "status", status, "frames", frames)
}

// finish 回写导出结果
func (c *Core) finish(id, status string, duration float64, frames, size int64) {
	var out Capture
	err := c.store.Capture().Edit(context.Background(), &out, func(b *Capture) {
		b.Status = status
		b.Duration = duration
		b.Frames = frames
		b.Size = size
		b.EndedAt = orm.Now()
	}, orm.Where("id=?", id))
	if err != nil {
		slog.Error("capture result save failed", "id", id, "err", err)
	}
}

// DelCapture 删除导出记录及文件
func (c *Core) DelCapture(ctx context.Context, id string) (*Capture, error) {
	var out Capture
	if err := c.store.Capture().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	if out.Path != "" {
		if err := os.Remove(c.GetFullPath(out.Path)); err != nil && !os.IsNotExist(err) {
			slog.Warn("capture file remove failed", "path", out.Path, "err", err)
		}
	}
	return &out, nil
}

// GetFullPath 获取导出文件的完整路径
func (c *Core) GetFullPath(relativePath string) string {
	if c.conf == nil || c.conf.StorageDir == "" {
		return relativePath
	}
	if len(relativePath) > 0 && (relativePath[0] == '/' || strings.HasPrefix(relativePath, c.conf.StorageDir)) {
		return relativePath
	}
	return filepath.Join(c.conf.StorageDir, relativePath)
}

// exportFilename 项目名 + 时间戳，项目名中的路径分隔符等替换为下划线
func exportFilename(projectName string, at time.Time) string {
	name := strings.TrimSpace(projectName)
	if name == "" {
		name = "untitled"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_", "*", "_", "?", "_", "\"", "_")
	return fmt.Sprintf("%s-%s.mp4", replacer.Replace(name), at.Format("20060102-150405"))
}
