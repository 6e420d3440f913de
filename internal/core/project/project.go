package project

import (
	"context"
	"log/slog"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/jinzhu/copier"
	"github.com/vidit-app/vidit/internal/core/bz"
)

// ProjectStorer Instantiation interface
type ProjectStorer interface {
	Find(context.Context, *[]*Project, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Project, ...orm.QueryOption) error
	Add(context.Context, *Project) error
	Edit(context.Context, *Project, func(*Project), ...orm.QueryOption) error
	Del(context.Context, *Project, ...orm.QueryOption) error
}

// FindProjects 分页查询项目列表
func (c Core) FindProjects(ctx context.Context, in *FindProjectInput) ([]*Project, int64, error) {
	query := orm.NewQuery(2).OrderBy("updated_at DESC")
	if in.Name != "" {
		query.Where("name LIKE ?", "%"+in.Name+"%")
	}

	items := make([]*Project, 0, in.Limit())
	total, err := c.store.Project().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetProject Query a single object
func (c Core) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.store.Project().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// AddProject 新建项目，未指定的画面参数取配置默认值
func (c Core) AddProject(ctx context.Context, in *AddProjectInput) (*Project, error) {
	if in.Name == "" {
		return nil, reason.ErrBadRequest.SetMsg("项目名称不能为空")
	}

	out := Project{
		ID:          c.uni.UniqueID(bz.IDPrefixProject),
		Name:        in.Name,
		Description: in.Description,
		Width:       in.Width,
		Height:      in.Height,
		FPS:         in.FPS,
		Duration:    in.Duration,
	}
	c.applyDefaults(&out)

	if err := c.store.Project().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// applyDefaults 未配置默认值时保留调用方给定的字段
func (c Core) applyDefaults(out *Project) {
	if c.conf == nil {
		return
	}
	if out.Width <= 0 {
		out.Width = c.conf.DefaultWidth
	}
	if out.Height <= 0 {
		out.Height = c.conf.DefaultHeight
	}
	if out.FPS <= 0 {
		out.FPS = c.conf.DefaultFPS
	}
	if out.Duration <= 0 {
		out.Duration = c.conf.DefaultDuration
	}
}

// EditProject Update object information
func (c Core) EditProject(ctx context.Context, in *EditProjectInput, id string) (*Project, error) {
	var out Project
	if err := c.store.Project().Edit(ctx, &out, func(b *Project) {
		if err := copier.Copy(b, in); err != nil {
			slog.ErrorContext(ctx, "Copy", "err", err)
		}
	}, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Edit id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Edit id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// DelProject Delete object
func (c Core) DelProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.store.Project().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}
