package publishdb

import (
	"log/slog"

	"github.com/vidit-app/vidit/internal/core/publish"
	"github.com/vidit-app/vidit/internal/data"
	"gorm.io/gorm"
)

var _ publish.Storer = (*DB)(nil)

// DB 发布记录存储
type DB struct {
	db   *gorm.DB
	post data.Store[publish.Post]
}

func NewDB(db *gorm.DB) *DB {
	return &DB{
		db:   db,
		post: data.NewStore[publish.Post](db),
	}
}

// AutoMigrate 当 ok 为真时自动迁移表结构
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&publish.Post{}); err != nil {
			slog.Error("publish auto migrate", "err", err)
		}
	}
	return d
}

func (d *DB) Post() publish.PostStorer {
	return d.post
}
