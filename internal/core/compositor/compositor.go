// Package compositor 逐帧合成器
// 按播放头时间把各轨道活动片段叠加为一帧画面
package compositor

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/vidit-app/vidit/internal/core/timeline"
	xdraw "golang.org/x/image/draw"
)

// Core business domain
type Core struct {
	timeline *timeline.Core
	pool     *Pool

	width  int
	height int
}

type Option func(*Core)

// NewCore create business domain
// 句柄池注册为时间轴变更回调，片段被删后解码管道随之回收
func NewCore(tl *timeline.Core, resolver AssetResolver, width, height, fps int, seekTimeout time.Duration, opts ...Option) *Core {
	c := Core{
		timeline: tl,
		pool:     NewPool(resolver, width, height, fps, seekTimeout),
		width:    width,
		height:   height,
	}
	for _, opt := range opts {
		opt(&c)
	}
	tl.OnChange(func() {
		c.pool.Reconcile(tl.ClipIDs())
	})
	return &c
}

// Pool 暴露句柄池，素材替换后由上层主动失效
func (c *Core) Pool() *Pool {
	return c.pool
}

// Size 输出画面尺寸
func (c *Core) Size() (int, int) {
	return c.width, c.height
}

// Composite 合成时间 t 的一帧
// 背景为不透明黑；轨道按 Order 升序叠加；单个片段失败以占位色代替，
// 不影响其余片段；ctx 取消时中止
func (c *Core) Composite(ctx context.Context, t float64) (*image.NRGBA, error) {
	out := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}

	for _, ac := range c.timeline.ActiveClips(t) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.drawClip(out, ac, t)
	}
	return out, nil
}

func (c *Core) drawClip(out *image.NRGBA, ac timeline.ActiveClip, t float64) {
	clip := ac.Clip
	render := clip.ResolveTransition(t - clip.StartTime)
	if render.Opacity <= 0 || render.Scale <= 0 {
		return
	}

	handle := c.pool.Acquire(clip, ac.Track.Kind)
	frame, err := handle.Frame(clip.RelativeTime(t))
	if err != nil {
		slog.Warn("frame fetch failed, using placeholder", "clip_id", clip.ID, "err", err)
		frame = newPlaceholderHandle(c.width, c.height, placeholderColor(ac.Track.Kind)).frame
	}

	if chain := clip.ResolveEffects(clip.RelativeTime(t)).Chain(); len(chain) > 0 {
		// 句柄可能缓存帧，滤镜在副本上执行
		frame = ApplyFilters(cloneNRGBA(frame), chain)
	}

	c.blend(out, frame, render)
}

// blend 等比缩放适配画布后居中绘制，再叠加转场偏移与整体透明度
func (c *Core) blend(out *image.NRGBA, frame *image.NRGBA, render timeline.Render) {
	fw, fh := frame.Rect.Dx(), frame.Rect.Dy()
	if fw == 0 || fh == 0 {
		return
	}

	scale := min(float64(c.width)/float64(fw), float64(c.height)/float64(fh)) * render.Scale
	dw, dh := int(float64(fw)*scale), int(float64(fh)*scale)
	if dw <= 0 || dh <= 0 {
		return
	}

	scaled := frame
	if dw != fw || dh != fh {
		scaled = image.NewNRGBA(image.Rect(0, 0, dw, dh))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Rect, frame, frame.Rect, xdraw.Src, nil)
	}

	dx := (c.width-dw)/2 + int(render.OffsetXFrac*float64(c.width))
	dy := (c.height-dh)/2 + int(render.OffsetYFrac*float64(c.height))
	blendOver(out, scaled, dx, dy, render.Opacity)
}

// blendOver 以 src-over 把 src 画到 dst 的 (dx,dy)，整体乘以 opacity
func blendOver(dst *image.NRGBA, src *image.NRGBA, dx, dy int, opacity float64) {
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	dw, dh := dst.Rect.Dx(), dst.Rect.Dy()

	for y := 0; y < sh; y++ {
		oy := dy + y
		if oy < 0 || oy >= dh {
			continue
		}
		for x := 0; x < sw; x++ {
			ox := dx + x
			if ox < 0 || ox >= dw {
				continue
			}
			si := y*src.Stride + x*4
			a := float64(src.Pix[si+3]) / 255 * opacity
			if a <= 0 {
				continue
			}
			di := oy*dst.Stride + ox*4
			dst.Pix[di] = clampByte(float64(src.Pix[si])*a + float64(dst.Pix[di])*(1-a))
			dst.Pix[di+1] = clampByte(float64(src.Pix[si+1])*a + float64(dst.Pix[di+1])*(1-a))
			dst.Pix[di+2] = clampByte(float64(src.Pix[si+2])*a + float64(dst.Pix[di+2])*(1-a))
			dst.Pix[di+3] = clampByte(a*255 + float64(dst.Pix[di+3])*(1-a))
		}
	}
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Close 释放全部解码句柄
func (c *Core) Close() {
	c.pool.Close()
}
