package capture

import (
	"context"

	"github.com/grafov/m3u8"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
)

// Playlist 生成项目已完成导出的 VOD 播放列表
// uriPrefix 为下载接口前缀，列表项按导出时间升序排列
func (c *Core) Playlist(ctx context.Context, projectID, uriPrefix string) (string, error) {
	var items []*Capture
	pager := &defaultPager{limit: 500}
	query := orm.NewQuery(2).OrderBy("started_at ASC")
	query.Where("project_id = ?", projectID)
	query.Where("status = ?", StatusDone)
	if _, err := c.store.Capture().Find(ctx, &items, pager, query.Encode()...); err != nil {
		return "", reason.ErrDB.Withf(`Playlist project[%s] err[%s]`, projectID, err.Error())
	}

	// winsize 0 表示完整列表（VOD）
	playlist, err := m3u8.NewMediaPlaylist(0, uint(len(items))+1)
	if err != nil {
		return "", reason.ErrServer.Withf("new playlist err[%s]", err.Error())
	}
	for _, rec := range items {
		if err := playlist.Append(uriPrefix+"/"+rec.Path, rec.Duration, rec.Name); err != nil {
			return "", reason.ErrServer.Withf("playlist append err[%s]", err.Error())
		}
	}
	playlist.MediaType = m3u8.VOD
	playlist.Close()
	return playlist.Encode().String(), nil
}
