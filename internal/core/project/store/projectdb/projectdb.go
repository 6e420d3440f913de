package projectdb

import (
	"log/slog"

	"github.com/vidit-app/vidit/internal/core/project"
	"github.com/vidit-app/vidit/internal/data"
	"gorm.io/gorm"
)

var _ project.Storer = (*DB)(nil)

// DB 项目存储
type DB struct {
	db      *gorm.DB
	project data.Store[project.Project]
}

func NewDB(db *gorm.DB) *DB {
	return &DB{
		db:      db,
		project: data.NewStore[project.Project](db),
	}
}

// AutoMigrate 当 ok 为真时自动迁移表结构
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&project.Project{}); err != nil {
			slog.Error("project auto migrate", "err", err)
		}
	}
	return d
}

func (d *DB) Project() project.ProjectStorer {
	return d.project
}
