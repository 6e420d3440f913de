package capturedb

import (
	"log/slog"

	"github.com/vidit-app/vidit/internal/core/capture"
	"github.com/vidit-app/vidit/internal/data"
	"gorm.io/gorm"
)

var _ capture.Storer = (*DB)(nil)

// DB 导出记录存储
type DB struct {
	db      *gorm.DB
	capture data.Store[capture.Capture]
}

func NewDB(db *gorm.DB) *DB {
	return &DB{
		db:      db,
		capture: data.NewStore[capture.Capture](db),
	}
}

// AutoMigrate 当 ok 为真时自动迁移表结构
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&capture.Capture{}); err != nil {
			slog.Error("capture auto migrate", "err", err)
		}
	}
	return d
}

func (d *DB) Capture() capture.CaptureStorer {
	return d.capture
}
