package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/ixugo/goddd/domain/uniqueid/store/uniqueiddb"
	"github.com/ixugo/goddd/domain/version/versionapi"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/asset"
	"github.com/vidit-app/vidit/internal/core/asset/store/assetdb"
	"github.com/vidit-app/vidit/internal/core/capture"
	"github.com/vidit-app/vidit/internal/core/capture/store/capturedb"
	"github.com/vidit-app/vidit/internal/core/compositor"
	"github.com/vidit-app/vidit/internal/core/playback"
	"github.com/vidit-app/vidit/internal/core/project"
	"github.com/vidit-app/vidit/internal/core/project/store/projectdb"
	"github.com/vidit-app/vidit/internal/core/publish"
	"github.com/vidit-app/vidit/internal/core/publish/store/publishdb"
	"github.com/vidit-app/vidit/internal/core/timeline"
	"github.com/vidit-app/vidit/internal/core/timeline/store/timelinedb"
	"github.com/vidit-app/vidit/pkg/mediainfo"
	"gorm.io/gorm"
)

var (
	ProviderVersionSet = wire.NewSet(versionapi.NewVersionCore)
	ProviderSet        = wire.NewSet(
		wire.Struct(new(Usecase), "*"),
		NewHTTPHandler,
		versionapi.New,
		NewUniqueID,
		NewProjectCore, NewProjectAPI,
		NewAssetCore, NewAssetAPI,
		NewTimelineCore, NewTimelineAPI,
		NewPlaybackClock, NewPlaybackAPI,
		NewCompositorCore, NewPreviewAPI,
		NewCaptureCore, NewCaptureAPI,
		NewAssistantAPI,
		NewPublishCore, NewPublishAPI,
		NewUserAPI,
	)
)

type Usecase struct {
	Conf    *conf.Bootstrap
	DB      *gorm.DB
	Version versionapi.API

	ProjectAPI   ProjectAPI
	AssetAPI     AssetAPI
	TimelineAPI  TimelineAPI
	PlaybackAPI  PlaybackAPI
	PreviewAPI   PreviewAPI
	CaptureAPI   CaptureAPI
	AssistantAPI AssistantAPI
	PublishAPI   PublishAPI
	UserAPI      UserAPI
}

// NewHTTPHandler 生成Gin框架路由内容
func NewHTTPHandler(uc *Usecase) http.Handler {
	cfg := uc.Conf.Server
	if cfg.HTTP.JwtSecret == "" {
		uc.Conf.Server.HTTP.JwtSecret = orm.GenerateRandomString(32)
	}
	if !uc.Conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	// 如果启用了 Pprof，设置 Pprof 监控
	if cfg.HTTP.PProf.Enabled {
		web.SetupPProf(g, &cfg.HTTP.PProf.AccessIps)
	}

	setupRouter(g, uc)
	uc.Version.RecordVersion()
	return g
}

// NewUniqueID 唯一 id 生成器
func NewUniqueID(db *gorm.DB) uniqueid.Core {
	return uniqueid.NewCore(uniqueiddb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()), 5)
}

// NewProjectCore 创建项目核心服务
func NewProjectCore(db *gorm.DB, uni uniqueid.Core, cfg *conf.Bootstrap) project.Core {
	return project.NewCore(
		projectdb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()),
		uni,
		project.WithConfig(&cfg.Editor),
	)
}

// NewAssetCore 创建素材核心服务
func NewAssetCore(db *gorm.DB, uni uniqueid.Core, cfg *conf.Bootstrap) *asset.Core {
	return asset.NewCore(
		assetdb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()),
		uni,
		asset.WithProber(mediainfo.NewProber()),
		asset.WithConfig(&cfg.Editor),
	)
}

// NewTimelineCore 创建时间轴核心服务
func NewTimelineCore(db *gorm.DB) *timeline.Core {
	return timeline.NewCore(
		timeline.NewState(),
		timeline.WithStore(timelinedb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate())),
	)
}

// NewPlaybackClock 创建播放时钟
func NewPlaybackClock(cfg *conf.Bootstrap) *playback.Clock {
	return playback.NewClock(cfg.Editor.DefaultDuration, cfg.Editor.DefaultFPS)
}

// NewCompositorCore 创建合成器
// 素材核心同时充当素材解析器
func NewCompositorCore(tl *timeline.Core, assets *asset.Core, cfg *conf.Bootstrap) *compositor.Core {
	return compositor.NewCore(
		tl,
		assets,
		cfg.Editor.DefaultWidth,
		cfg.Editor.DefaultHeight,
		cfg.Editor.DefaultFPS,
		cfg.Editor.SeekTimeout.Duration(),
	)
}

// NewCaptureCore 创建导出核心服务
func NewCaptureCore(db *gorm.DB, uni uniqueid.Core, cfg *conf.Bootstrap, comp *compositor.Core, projects project.Core) *capture.Core {
	core := capture.NewCore(
		capturedb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()),
		uni,
		capture.WithConfig(&cfg.Export),
		capture.WithFrameSource(comp),
		capture.WithProjectProvider(projectProvider{projects}),
	)

	// 启动清理协程
	go core.StartCleanupWorker()

	return core
}

// projectProvider 适配 capture.ProjectProvider，避免导出领域依赖项目领域实现
type projectProvider struct {
	core project.Core
}

func (p projectProvider) GetProject(ctx context.Context, id string) (*project.Project, error) {
	return p.core.GetProject(ctx, id)
}

// NewPublishCore 创建发布核心服务
func NewPublishCore(db *gorm.DB, uni uniqueid.Core) *publish.Core {
	return publish.NewCore(
		publishdb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()),
		uni,
		publish.WithPlatform(publish.NewLocalPlatform(publish.PlatformYoutube)),
		publish.WithPlatform(publish.NewLocalPlatform(publish.PlatformTiktok)),
		publish.WithPlatform(publish.NewLocalPlatform(publish.PlatformBilibili)),
	)
}
