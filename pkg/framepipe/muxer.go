package framepipe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/ixugo/goddd/pkg/queue"
)

// MuxConfig 编码参数
type MuxConfig struct {
	OutputPath    string
	Width, Height int
	FPS           int
	BitrateKbps   int
}

// Muxer 把 RGBA 原始帧写入 ffmpeg stdin 编码为 mp4
type Muxer struct {
	config    MuxConfig
	frameSize int
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	cancel    context.CancelFunc
	m         sync.Mutex
	started   bool
	frames    uint64
	wg        sync.WaitGroup
	ffmpegLog *queue.CirQueue[string]
}

func NewMuxer(cfg MuxConfig) (*Muxer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid fps: %d", cfg.FPS)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if cfg.BitrateKbps <= 0 {
		cfg.BitrateKbps = 4000
	}
	return &Muxer{
		config:    cfg,
		frameSize: cfg.Width * cfg.Height * 4,
		ffmpegLog: queue.NewCirQueue[string](100),
	}, nil
}

func (m *Muxer) buildArgs() []string {
	return []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", m.config.Width, m.config.Height),
		"-r", strconv.Itoa(m.config.FPS),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%dk", m.config.BitrateKbps),
		"-movflags", "+faststart",
		"-y",
		m.config.OutputPath,
	}
}

func (m *Muxer) Start() error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.started {
		return fmt.Errorf("muxer already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, "ffmpeg", m.buildArgs()...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to get stdin pipe: %w", err)
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

	m.cmd = cmd
	m.stdin = stdin
	m.cancel = cancel
	m.started = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		scan := bufio.NewScanner(stderr)
		for scan.Scan() {
			m.ffmpegLog.Push(scan.Text())
		}
	}()
	return nil
}

// WriteFrame 写入一帧 RGBA 数据，长度必须等于 FrameSize
func (m *Muxer) WriteFrame(data []byte) error {
	m.m.Lock()
	defer m.m.Unlock()
	if !m.started {
		return fmt.Errorf("muxer not started")
	}
	if len(data) != m.frameSize {
		return fmt.Errorf("frame size mismatch: %d != %d", len(data), m.frameSize)
	}
	if _, err := m.stdin.Write(data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	m.frames++
	return nil
}

// Frames 已写入帧数
func (m *Muxer) Frames() uint64 {
	m.m.Lock()
	defer m.m.Unlock()
	return m.frames
}

func (m *Muxer) FrameSize() int {
	return m.frameSize
}

func (m *Muxer) Log() []string {
	return m.ffmpegLog.Range()
}

// Close 关闭输入让 ffmpeg 完成封装，等待进程退出
func (m *Muxer) Close() error {
	m.m.Lock()
	defer m.m.Unlock()
	if !m.started {
		return nil
	}
	m.started = false

	if err := m.stdin.Close(); err != nil {
		m.cancel()
		return fmt.Errorf("failed to close stdin: %w", err)
	}
	err := m.cmd.Wait()
	m.wg.Wait()
	m.cancel()
	if err != nil {
		return fmt.Errorf("ffmpeg exited with error: %w", err)
	}
	return nil
}
