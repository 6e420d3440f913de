package compositor

import (
	"log/slog"
	"time"

	"github.com/ixugo/goddd/pkg/conc"
	"github.com/vidit-app/vidit/internal/core/timeline"
)

// Pool 片段解码句柄池
// 以片段 id 为键惰性创建，时间轴变更后回收不再被引用的句柄
type Pool struct {
	handles conc.Map[string, Handle]

	resolver    AssetResolver
	width       int
	height      int
	fps         int
	seekTimeout time.Duration
}

func NewPool(resolver AssetResolver, width, height, fps int, seekTimeout time.Duration) *Pool {
	return &Pool{
		resolver:    resolver,
		width:       width,
		height:      height,
		fps:         fps,
		seekTimeout: seekTimeout,
	}
}

// Acquire 取片段句柄，不存在时按素材类型创建
// 素材缺失或创建失败时返回占位句柄，失败只影响该片段
func (p *Pool) Acquire(clip *timeline.Clip, kind timeline.TrackKind) Handle {
	if h, ok := p.handles.Load(clip.ID); ok {
		return h
	}

	h := p.build(clip, kind)
	actual, loaded := p.handles.LoadOrStore(clip.ID, h)
	if loaded {
		// 并发竞争时丢弃本次创建
		h.Close()
		return actual
	}
	return h
}

func (p *Pool) build(clip *timeline.Clip, kind timeline.TrackKind) Handle {
	src, ok := p.resolver.ResolveAsset(clip.AssetID)
	if !ok {
		slog.Warn("asset not found, using placeholder", "clip_id", clip.ID, "asset_id", clip.AssetID)
		return newPlaceholderHandle(p.width, p.height, placeholderColor(kind))
	}

	switch src.Kind {
	case AssetVideo:
		h, err := newVideoHandle(src.Path, p.width, p.height, p.fps, p.seekTimeout)
		if err != nil {
			slog.Warn("video handle create failed", "clip_id", clip.ID, "path", src.Path, "err", err)
			return newPlaceholderHandle(p.width, p.height, placeholderColor(kind))
		}
		return h
	case AssetImage:
		h, err := newImageHandle(src.Path)
		if err != nil {
			slog.Warn("image handle create failed", "clip_id", clip.ID, "path", src.Path, "err", err)
			return newPlaceholderHandle(p.width, p.height, placeholderColor(kind))
		}
		return h
	default:
		return newPlaceholderHandle(p.width, p.height, placeholderColor(kind))
	}
}

// Reconcile 回收不在 alive 集合中的句柄
// 注册为时间轴变更回调，片段删除后解码管道随之关闭
func (p *Pool) Reconcile(alive map[string]struct{}) {
	p.handles.Range(func(id string, h Handle) bool {
		if _, ok := alive[id]; !ok {
			h.Close()
			p.handles.Delete(id)
			slog.Debug("decode handle released", "clip_id", id)
		}
		return true
	})
}

// Invalidate 主动丢弃某片段的句柄，素材替换后下一帧重建
func (p *Pool) Invalidate(clipID string) {
	if h, ok := p.handles.Load(clipID); ok {
		h.Close()
		p.handles.Delete(clipID)
	}
}

// Close 关闭全部句柄
func (p *Pool) Close() {
	p.handles.Range(func(id string, h Handle) bool {
		h.Close()
		p.handles.Delete(id)
		return true
	})
}
