package api

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/asset"
)

// AssetAPI 为 http 提供业务方法
type AssetAPI struct {
	assetCore *asset.Core
	conf      *conf.Bootstrap
}

func NewAssetAPI(core *asset.Core, conf *conf.Bootstrap) AssetAPI {
	return AssetAPI{assetCore: core, conf: conf}
}

func RegisterAsset(g gin.IRouter, api AssetAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/assets", handler...)
	group.GET("", web.WrapH(api.findAssets))
	group.POST("", api.uploadAsset)
	group.GET("/:id", web.WrapH(api.getAsset))
	group.DELETE("/:id", web.WrapH(api.delAsset))

	// 素材与缩略图静态服务
	if api.conf != nil && api.conf.Editor.MediaDir != "" {
		g.Static("/static/media", api.conf.Editor.MediaDir)
	}
	if api.conf != nil && api.conf.Editor.ThumbnailDir != "" {
		g.Static("/static/thumbnails", api.conf.Editor.ThumbnailDir)
	}
}

// findAssets 分页查询素材列表
func (a AssetAPI) findAssets(c *gin.Context, in *asset.FindAssetInput) (any, error) {
	items, total, err := a.assetCore.FindAssets(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a AssetAPI) getAsset(c *gin.Context, _ *struct{}) (any, error) {
	return a.assetCore.GetAsset(c.Request.Context(), c.Param("id"))
}

// uploadAsset 上传素材文件
// 落盘到素材目录后登记，元数据异步探测
func (a AssetAPI) uploadAsset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		web.Fail(c, reason.ErrBadRequest.SetMsg("缺少上传文件"))
		return
	}
	if asset.KindFromPath(file.Filename) == "" {
		web.Fail(c, reason.ErrBadRequest.Withf("不支持的媒体类型: %s", file.Filename))
		return
	}

	dir := a.conf.Editor.MediaDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		web.Fail(c, reason.ErrServer.SetMsg(err.Error()))
		return
	}
	dst := filepath.Join(dir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		web.Fail(c, reason.ErrServer.SetMsg(err.Error()))
		return
	}

	out, err := a.assetCore.ImportAsset(c.Request.Context(), &asset.ImportAssetInput{Path: dst})
	if err != nil {
		web.Fail(c, err)
		return
	}
	slog.InfoContext(c.Request.Context(), "asset uploaded", "name", file.Filename, "id", out.ID)
	c.JSON(200, out)
}

func (a AssetAPI) delAsset(c *gin.Context, _ *struct{}) (any, error) {
	return a.assetCore.DelAsset(c.Request.Context(), c.Param("id"))
}
