package asset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/vidit-app/vidit/internal/core/bz"
	"github.com/vidit-app/vidit/internal/core/compositor"
	"github.com/vidit-app/vidit/pkg/mediainfo"
)

// AssetStorer Instantiation interface
type AssetStorer interface {
	Find(context.Context, *[]*Asset, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Asset, ...orm.QueryOption) error
	Add(context.Context, *Asset) error
	Edit(context.Context, *Asset, func(*Asset), ...orm.QueryOption) error
	Del(context.Context, *Asset, ...orm.QueryOption) error
}

const thumbnailWidth = 320

// FindAssets 分页查询素材列表
func (c *Core) FindAssets(ctx context.Context, in *FindAssetInput) ([]*Asset, int64, error) {
	query := orm.NewQuery(2).OrderBy("created_at DESC")
	if in.Kind != "" {
		query.Where("kind = ?", in.Kind)
	}
	if in.Name != "" {
		query.Where("name LIKE ?", "%"+in.Name+"%")
	}

	items := make([]*Asset, 0, in.Limit())
	total, err := c.store.Asset().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetAsset Query a single object
func (c *Core) GetAsset(ctx context.Context, id string) (*Asset, error) {
	if a, ok := c.cache.Load(id); ok {
		return a, nil
	}
	var out Asset
	if err := c.store.Asset().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	c.cache.Store(out.ID, &out)
	return &out, nil
}

// ImportAsset 登记素材并异步探测元数据
// 文件必须已经位于素材目录内；重复导入同一路径返回已有记录
func (c *Core) ImportAsset(ctx context.Context, in *ImportAssetInput) (*Asset, error) {
	kind := KindFromPath(in.Path)
	if kind == "" {
		return nil, reason.ErrBadRequest.Withf("unsupported media type: %s", in.Path)
	}

	var exist Asset
	if err := c.store.Asset().Get(ctx, &exist, orm.Where("path=?", in.Path)); err == nil {
		return &exist, nil
	}

	st, err := os.Stat(in.Path)
	if err != nil {
		return nil, reason.ErrBadRequest.Withf("stat file err[%s]", err.Error())
	}

	out := Asset{
		ID:     c.uni.UniqueID(bz.IDPrefixAsset),
		Name:   filepath.Base(in.Path),
		Kind:   kind,
		Path:   in.Path,
		Status: StatusProbing,
		Size:   st.Size(),
	}
	if err := c.store.Asset().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	c.cache.Store(out.ID, &out)

	// 探测走后台，素材列表立即可见 probing 状态
	go c.probe(out.ID, out.Path, kind)
	return &out, nil
}

// probe 探测元数据并生成缩略图，结果回写数据库与缓存
func (c *Core) probe(id, path string, kind Kind) {
	ctx := context.Background()
	var (
		info *Asset
		err  error
	)
	switch kind {
	case KindImage:
		info, err = c.probeImage(ctx, path)
	case KindText:
		// 文本素材没有媒体流，直接就绪
		info = &Asset{}
	default:
		info, err = c.probeMedia(ctx, path)
	}

	var out Asset
	editErr := c.store.Asset().Edit(ctx, &out, func(b *Asset) {
		if err != nil {
			b.Status = StatusFailed
			return
		}
		b.Status = StatusReady
		b.Duration = info.Duration
		b.Width = info.Width
		b.Height = info.Height
		b.FPS = info.FPS
		b.ThumbnailPath = info.ThumbnailPath
	}, orm.Where("id=?", id))
	if editErr != nil {
		slog.Error("asset probe result save failed", "id", id, "err", editErr)
		return
	}
	c.cache.Store(id, &out)
	if err != nil {
		slog.Warn("asset probe failed", "id", id, "path", path, "err", err)
	}
}

func (c *Core) probeMedia(ctx context.Context, path string) (*Asset, error) {
	if c.prober == nil {
		return nil, reason.ErrServer.SetMsg("prober not configured")
	}
	info, err := c.prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	out := Asset{
		Duration: info.Duration,
		Width:    info.Width,
		Height:   info.Height,
		FPS:      info.FPS,
	}
	if info.HasVideo && c.conf != nil && c.conf.ThumbnailDir != "" {
		thumb := filepath.Join(c.conf.ThumbnailDir, filepath.Base(path)+".jpg")
		// 取 10% 处一帧，跳过片头黑场
		if err := c.prober.Thumbnail(ctx, path, info.Duration*0.1, thumbnailWidth, thumb); err != nil {
			slog.Warn("thumbnail generate failed", "path", path, "err", err)
		} else {
			out.ThumbnailPath = thumb
		}
	}
	return &out, nil
}

func (c *Core) probeImage(_ context.Context, path string) (*Asset, error) {
	var out Asset
	if c.conf != nil && c.conf.ThumbnailDir != "" {
		thumb := filepath.Join(c.conf.ThumbnailDir, filepath.Base(path)+".jpg")
		if err := mediainfo.ThumbnailFromImage(path, thumbnailWidth, thumb); err != nil {
			slog.Warn("image thumbnail failed", "path", path, "err", err)
		} else {
			out.ThumbnailPath = thumb
		}
	}
	return &out, nil
}

// DelAsset Delete object
func (c *Core) DelAsset(ctx context.Context, id string) (*Asset, error) {
	var out Asset
	if err := c.store.Asset().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	c.cache.Delete(id)
	return &out, nil
}

// ResolveAsset 合成器按素材 id 查源文件
func (c *Core) ResolveAsset(assetID string) (compositor.AssetSource, bool) {
	a, err := c.GetAsset(context.Background(), assetID)
	if err != nil {
		return compositor.AssetSource{}, false
	}
	return compositor.AssetSource{
		Kind: compositor.AssetKind(a.Kind),
		Path: a.Path,
	}, true
}
