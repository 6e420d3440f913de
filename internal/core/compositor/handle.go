package compositor

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	"github.com/vidit-app/vidit/internal/core/timeline"
	"github.com/vidit-app/vidit/pkg/framepipe"
)

// AssetKind 素材类型
type AssetKind string

const (
	AssetVideo AssetKind = "video"
	AssetImage AssetKind = "image"
	AssetAudio AssetKind = "audio"
)

// AssetSource 合成器取帧所需的素材描述
type AssetSource struct {
	Kind AssetKind
	Path string
}

// AssetResolver 按素材 id 查找源文件
type AssetResolver interface {
	ResolveAsset(assetID string) (AssetSource, bool)
}

// Handle 片段解码句柄
// 视频片段持有常驻解码管道，避免逐帧冷启动
type Handle interface {
	// Frame 返回源素材时间 relTime 处的一帧，超时等失败返回错误
	Frame(relTime float64) (*image.NRGBA, error)
	Close()
}

// videoHandle 常驻 ffmpeg 解码管道的视频句柄
// seek 超时沿用上一帧，画面暂时滞后优于阻塞整条流水线
type videoHandle struct {
	extractor *framepipe.Extractor
	timeout   time.Duration
	width     int
	height    int

	mu        sync.Mutex
	lastFrame *image.NRGBA
}

func newVideoHandle(path string, width, height, fps int, timeout time.Duration) (*videoHandle, error) {
	ex, err := framepipe.NewExtractor(framepipe.Config{
		Path:   path,
		Width:  width,
		Height: height,
		FPS:    fps,
	})
	if err != nil {
		return nil, err
	}
	return &videoHandle{
		extractor: ex,
		timeout:   timeout,
		width:     width,
		height:    height,
	}, nil
}

func (h *videoHandle) Frame(relTime float64) (*image.NRGBA, error) {
	if relTime < 0 {
		relTime = 0
	}
	frame, err := h.extractor.ReadAt(relTime, h.timeout)
	if err != nil {
		// 超时或流结束时沿用旧帧
		h.mu.Lock()
		last := h.lastFrame
		h.mu.Unlock()
		if last != nil {
			return last, nil
		}
		return nil, err
	}

	img := &image.NRGBA{
		Pix:    frame.Data,
		Stride: h.width * 4,
		Rect:   image.Rect(0, 0, h.width, h.height),
	}
	h.mu.Lock()
	h.lastFrame = img
	h.mu.Unlock()
	return img, nil
}

func (h *videoHandle) Close() {
	h.extractor.Stop()
}

// imageHandle 图片素材解码一次后常驻内存
type imageHandle struct {
	frame *image.NRGBA
}

func newImageHandle(path string) (*imageHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &imageHandle{frame: toNRGBA(src)}, nil
}

func (h *imageHandle) Frame(float64) (*image.NRGBA, error) {
	return h.frame, nil
}

func (h *imageHandle) Close() {}

// placeholderHandle 纯色占位句柄
// 素材缺失或音频/文本轨道没有画面来源时使用
type placeholderHandle struct {
	frame *image.NRGBA
}

func newPlaceholderHandle(width, height int, c color.NRGBA) *placeholderHandle {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return &placeholderHandle{frame: img}
}

func (h *placeholderHandle) Frame(float64) (*image.NRGBA, error) {
	return h.frame, nil
}

func (h *placeholderHandle) Close() {}

// placeholderColor 轨道类型对应的占位配色
func placeholderColor(kind timeline.TrackKind) color.NRGBA {
	switch kind {
	case timeline.TrackAudio:
		return color.NRGBA{R: 0x1b, G: 0x4d, B: 0x3e, A: 0xff}
	case timeline.TrackText:
		return color.NRGBA{R: 0x4a, G: 0x3b, B: 0x76, A: 0xff}
	case timeline.TrackOverlay:
		return color.NRGBA{R: 0x6b, G: 0x2d, B: 0x2d, A: 0xff}
	default:
		return color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	}
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return dst
}
