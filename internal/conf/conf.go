package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Bootstrap 程序启动配置
type Bootstrap struct {
	ConfigPath   string `toml:"-"`
	BuildVersion string `toml:"-"`
	Debug        bool   `toml:"debug"`

	Server    Server    `toml:"server"`
	Data      Data      `toml:"data"`
	Editor    Editor    `toml:"editor"`
	Export    Export    `toml:"export"`
	Assistant Assistant `toml:"assistant"`
}

type Server struct {
	HTTP     HTTP   `toml:"http"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type HTTP struct {
	Port      int    `toml:"port"`
	JwtSecret string `toml:"jwt_secret"`
	PProf     PProf  `toml:"pprof"`
}

type PProf struct {
	Enabled   bool     `toml:"enabled"`
	AccessIps []string `toml:"access_ips"`
}

type Data struct {
	Database Database `toml:"database"`
}

type Database struct {
	// Dsn 以 postgres/mysql 开头时连接对应数据库，否则视为 sqlite 文件路径
	Dsn             string   `toml:"dsn"`
	MaxIdleConns    int32    `toml:"max_idle_conns"`
	MaxOpenConns    int32    `toml:"max_open_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	SlowThreshold   Duration `toml:"slow_threshold"`
}

// Editor 编辑器引擎配置
type Editor struct {
	// MediaDir 素材目录，上传与自动导入都落在这里
	MediaDir string `toml:"media_dir"`
	// ThumbnailDir 缩略图输出目录
	ThumbnailDir string `toml:"thumbnail_dir"`
	// SeekTimeout 合成器等待视频句柄 seek 的上限，超时使用旧帧
	SeekTimeout Duration `toml:"seek_timeout"`
	// WatchMediaDir 是否监听素材目录自动注册资产
	WatchMediaDir bool `toml:"watch_media_dir"`

	// 新建项目的默认参数
	DefaultWidth    int     `toml:"default_width"`
	DefaultHeight   int     `toml:"default_height"`
	DefaultFPS      int     `toml:"default_fps"`
	DefaultDuration float64 `toml:"default_duration"`
}

// Export 导出录制配置
type Export struct {
	Disabled bool `toml:"disabled"`
	// StorageDir 导出文件存储目录
	StorageDir string `toml:"storage_dir"`
	// FPS 导出固定帧率
	FPS int `toml:"fps"`
	// BitrateKbps 目标码率
	BitrateKbps int `toml:"bitrate_kbps"`
	// MaxSeconds 看门狗上限，超过强制停止录制
	MaxSeconds int `toml:"max_seconds"`
	// RetainDays 导出文件保留天数，0 表示不清理
	RetainDays int `toml:"retain_days"`
}

// Assistant 外部 AI 服务配置，留空则相关接口返回未配置错误
type Assistant struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ChatModel    string `toml:"chat_model"`
	WhisperModel string `toml:"whisper_model"`
}

// Duration toml 中以 "30s" 形式书写的时长
type Duration time.Duration

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// SetupConfig 读取配置文件，不存在时写出默认配置
func SetupConfig(path string) (*Bootstrap, error) {
	cfg := defaultBootstrap()
	cfg.ConfigPath = path

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := WriteConfig(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WriteConfig 持久化配置，修改凭据等运行时变更会回写文件
func WriteConfig(cfg *Bootstrap, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func defaultBootstrap() *Bootstrap {
	return &Bootstrap{
		Debug: true,
		Server: Server{
			HTTP: HTTP{Port: 8080},
		},
		Data: Data{
			Database: Database{
				Dsn:             "configs/vidit.db",
				MaxIdleConns:    10,
				MaxOpenConns:    100,
				ConnMaxLifetime: Duration(6 * time.Hour),
				SlowThreshold:   Duration(200 * time.Millisecond),
			},
		},
		Editor: Editor{
			MediaDir:        "configs/media",
			ThumbnailDir:    "configs/thumbnails",
			SeekTimeout:     Duration(500 * time.Millisecond),
			WatchMediaDir:   true,
			DefaultWidth:    1920,
			DefaultHeight:   1080,
			DefaultFPS:      30,
			DefaultDuration: 60,
		},
		Export: Export{
			StorageDir:  "configs/exports",
			FPS:         30,
			BitrateKbps: 4000,
			MaxSeconds:  300,
			RetainDays:  0,
		},
		Assistant: Assistant{
			BaseURL:      "https://api.openai.com/v1",
			ChatModel:    "gpt-4o-mini",
			WhisperModel: "whisper-1",
		},
	}
}
