package assetdb

import (
	"log/slog"

	"github.com/vidit-app/vidit/internal/core/asset"
	"github.com/vidit-app/vidit/internal/data"
	"gorm.io/gorm"
)

var _ asset.Storer = (*DB)(nil)

// DB 素材存储
type DB struct {
	db    *gorm.DB
	asset data.Store[asset.Asset]
}

func NewDB(db *gorm.DB) *DB {
	return &DB{
		db:    db,
		asset: data.NewStore[asset.Asset](db),
	}
}

// AutoMigrate 当 ok 为真时自动迁移表结构
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&asset.Asset{}); err != nil {
			slog.Error("asset auto migrate", "err", err)
		}
	}
	return d
}

func (d *DB) Asset() asset.AssetStorer {
	return d.asset
}
