package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/ixugo/goddd/pkg/conc"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/vidit-app/vidit/internal/core/bz"
)

// PostStorer Instantiation interface
type PostStorer interface {
	Find(context.Context, *[]*Post, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Post, ...orm.QueryOption) error
	Add(context.Context, *Post) error
	Edit(context.Context, *Post, func(*Post), ...orm.QueryOption) error
	Del(context.Context, *Post, ...orm.QueryOption) error
}

// FindPosts 分页查询发布记录
func (c *Core) FindPosts(ctx context.Context, in *FindPostInput) ([]*Post, int64, error) {
	query := orm.NewQuery(2).OrderBy("created_at DESC")
	if in.Platform != "" {
		query.Where("platform = ?", in.Platform)
	}
	if in.Status != "" {
		query.Where("status = ?", in.Status)
	}

	items := make([]*Post, 0, in.Limit())
	total, err := c.store.Post().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// CreatePosts 为每个目标平台创建一条发布
// 未设定计划时间的立即发布，设定了的由调度器到点发布
func (c *Core) CreatePosts(ctx context.Context, in *CreatePostInput) ([]*Post, error) {
	if len(in.Platforms) == 0 {
		return nil, reason.ErrBadRequest.SetMsg("至少选择一个平台")
	}
	if in.VideoPath == "" {
		return nil, reason.ErrBadRequest.SetMsg("视频路径不能为空")
	}
	for _, name := range in.Platforms {
		if _, ok := c.platforms[name]; !ok {
			return nil, reason.ErrBadRequest.Withf("平台未接入: %s", name)
		}
	}

	out := make([]*Post, 0, len(in.Platforms))
	for _, name := range in.Platforms {
		post := Post{
			ID:          c.uni.UniqueID(bz.IDPrefixPost),
			Platform:    name,
			Title:       in.Title,
			Description: in.Description,
			VideoPath:   in.VideoPath,
			Status:      StatusDraft,
		}
		if in.ScheduledMs > 0 {
			post.Status = StatusScheduled
			post.ScheduledAt = orm.Time{Time: time.UnixMilli(in.ScheduledMs)}
		}
		if err := c.store.Post().Add(ctx, &post); err != nil {
			return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
		}
		if post.Status == StatusDraft {
			c.publishPost(ctx, &post)
		}
		out = append(out, &post)
	}
	return out, nil
}

// publishPost 调用平台客户端发布并回写状态
func (c *Core) publishPost(ctx context.Context, post *Post) {
	platform := c.platforms[post.Platform]
	remoteID, err := platform.Publish(ctx, post)

	var out Post
	editErr := c.store.Post().Edit(ctx, &out, func(b *Post) {
		if err != nil {
			b.Status = StatusFailed
			b.Error = err.Error()
			return
		}
		b.Status = StatusPublished
		b.RemoteID = remoteID
		b.PublishedAt = orm.Now()
	}, orm.Where("id=?", post.ID))
	if editErr != nil {
		slog.Error("publish result save failed", "id", post.ID, "err", editErr)
		return
	}
	*post = out
	if err != nil {
		slog.Warn("publish failed", "id", post.ID, "platform", post.Platform, "err", err)
	}
}

// DelPost Delete object
func (c *Core) DelPost(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.store.Post().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// StartScheduler 启动计划发布调度，每 30 秒扫描一次到点任务
func (c *Core) StartScheduler(ctx context.Context) {
	go conc.Timer(ctx, 30*time.Second, 30*time.Second, func() {
		c.runDue(ctx)
	})
}

func (c *Core) runDue(ctx context.Context) {
	query := orm.NewQuery(2).OrderBy("scheduled_at ASC")
	query.Where("status = ?", StatusScheduled)
	query.Where("scheduled_at <= ?", orm.Now())

	var due []*Post
	pager := &defaultPager{limit: 100}
	if _, err := c.store.Post().Find(ctx, &due, pager, query.Encode()...); err != nil {
		slog.Warn("scheduled publish query failed", "err", err)
		return
	}
	for _, post := range due {
		c.publishPost(ctx, post)
	}
}

// defaultPager 内部使用的分页器，避免传入 nil 导致空指针
type defaultPager struct {
	limit int
}

func (p *defaultPager) Offset() int { return 0 }
func (p *defaultPager) Limit() int  { return p.limit }
