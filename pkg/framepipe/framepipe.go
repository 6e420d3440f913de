// Package framepipe 基于 ffmpeg 管道的原始帧读写
// 解码方向按固定帧大小从 stdout 读 RGBA 帧，编码方向往 stdin 写帧
package framepipe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ixugo/goddd/pkg/queue"
)

type (
	Config struct {
		Path          string // 源媒体文件
		Width, Height int
		FPS           int
		Name          string
	}
	FrameData struct {
		FrameNum  uint64
		Timestamp float64 // 源素材内时间，秒
		Data      []byte  // RGBA，Width*Height*4
	}
	// Extractor 从媒体文件按时间取帧
	// 顺序读取复用同一条 ffmpeg 管道；时间跳变超过一帧时重开管道 seek
	Extractor struct {
		config     Config
		frameSize  int
		frameCh    chan *FrameData
		errCh      chan error
		cancel     context.CancelFunc
		m          sync.Mutex
		started    bool
		cmd        *exec.Cmd
		pos        float64 // 管道下一帧对应的源时间
		wg         sync.WaitGroup
		ffmpegLog  *queue.CirQueue[string]
		frameCount uint64
	}
)

func NewExtractor(cfg Config) (*Extractor, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid fps: %d", cfg.FPS)
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("media path is required")
	}
	return &Extractor{
		config:    cfg,
		frameSize: cfg.Width * cfg.Height * 4,
		ffmpegLog: queue.NewCirQueue[string](100),
	}, nil
}

func (e *Extractor) FrameSize() int {
	return e.frameSize
}

// FrameInterval 一帧的时长，秒
func (e *Extractor) FrameInterval() float64 {
	return 1 / float64(e.config.FPS)
}

func (e *Extractor) buildArgs(at float64) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-threads", "2",
	}
	if at > 0 {
		args = append(args, "-ss", strconv.FormatFloat(at, 'f', 3, 64))
	}
	args = append(args, "-i", e.config.Path)
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-r", strconv.Itoa(e.config.FPS),
		"-vf", fmt.Sprintf("fps=%d,scale=%d:%d", e.config.FPS, e.config.Width, e.config.Height),
		"pipe:1",
	)
	return args
}

// ReadAt 返回源时间 t 的一帧
// t 与管道当前位置相差不超过一帧时顺序读取下一帧，否则重开管道；
// 超时返回错误，由上层决定是否沿用旧帧
func (e *Extractor) ReadAt(t float64, timeout time.Duration) (*FrameData, error) {
	e.m.Lock()
	if !e.started || math.Abs(t-e.pos) > e.FrameInterval() {
		if err := e.restartLocked(t); err != nil {
			e.m.Unlock()
			return nil, err
		}
	}
	frameCh, errCh := e.frameCh, e.errCh
	e.pos += e.FrameInterval()
	e.m.Unlock()

	select {
	case frame, ok := <-frameCh:
		if !ok {
			return nil, fmt.Errorf("frame stream ended")
		}
		frame.Timestamp = t
		return frame, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(timeout):
		return nil, fmt.Errorf("frame read timeout at %.3fs", t)
	}
}

func (e *Extractor) restartLocked(at float64) error {
	e.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, "ffmpeg", e.buildArgs(at)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to get stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.cancel = cancel
	e.frameCh = make(chan *FrameData, 4)
	e.errCh = make(chan error, 1)
	e.pos = at
	e.started = true

	frameCh, errCh := e.frameCh, e.errCh
	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.readLoop(ctx, stdout, frameCh, errCh)
	}()
	go func() {
		defer e.wg.Done()
		e.readStderr(stderr)
	}()
	return nil
}

// readLoop 按固定帧大小从 stdout 读取 RGBA 帧
func (e *Extractor) readLoop(ctx context.Context, stdout io.Reader, frameCh chan<- *FrameData, errCh chan<- error) {
	defer close(frameCh)

	reader := bufio.NewReaderSize(stdout, e.frameSize*4)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameBytes := make([]byte, e.frameSize)
		if _, err := io.ReadFull(reader, frameBytes); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				select {
				case errCh <- fmt.Errorf("media stream ended: %w", err):
				default:
				}
				return
			}
			select {
			case errCh <- fmt.Errorf("failed to read frame: %w", err):
			default:
			}
			return
		}

		frame := FrameData{
			FrameNum: atomic.AddUint64(&e.frameCount, 1),
			Data:     frameBytes,
		}
		select {
		case frameCh <- &frame:
		case <-ctx.Done():
			return
		}
	}
}

func (e *Extractor) readStderr(stderr io.Reader) {
	scan := bufio.NewScanner(stderr)
	for scan.Scan() {
		e.ffmpegLog.Push(scan.Text())
	}
}

func (e *Extractor) Log() []string {
	return e.ffmpegLog.Range()
}

func (e *Extractor) stopLocked() {
	if !e.started {
		return
	}
	e.started = false
	if e.cancel != nil {
		e.cancel()
	}
	// 读取协程不触碰 e.m，持锁等待不会死锁
	e.wg.Wait()

	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Wait()
	}
	e.cmd = nil
}

// Stop 关闭管道并回收 ffmpeg 进程
func (e *Extractor) Stop() {
	e.m.Lock()
	defer e.m.Unlock()
	e.stopLocked()
}
