package timelinedb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/vidit-app/vidit/internal/core/timeline"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot 按项目整体保存的时间轴快照
type Snapshot struct {
	ProjectID string   `gorm:"primaryKey" json:"project_id"`
	Tracks    []byte   `gorm:"type:bytes" json:"tracks"`
	UpdatedAt orm.Time `json:"updated_at"`
}

func (Snapshot) TableName() string {
	return "timeline_snapshots"
}

// DB 时间轴快照存储
type DB struct {
	db *gorm.DB
}

var _ timeline.Storer = (*DB)(nil)

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// AutoMigrate 当 ok 为真时自动迁移表结构
func (d *DB) AutoMigrate(ok bool) *DB {
	if ok {
		if err := d.db.AutoMigrate(&Snapshot{}); err != nil {
			slog.Error("timeline snapshot auto migrate", "err", err)
		}
	}
	return d
}

// Save 覆盖写入项目快照
func (d *DB) Save(ctx context.Context, projectID string, tracks []*timeline.Track) error {
	b, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("marshal tracks: %w", err)
	}
	snap := Snapshot{
		ProjectID: projectID,
		Tracks:    b,
		UpdatedAt: orm.Now(),
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracks", "updated_at"}),
	}).Create(&snap).Error
}

// Load 读取项目快照，不存在时返回空时间轴
func (d *DB) Load(ctx context.Context, projectID string) ([]*timeline.Track, error) {
	var snap Snapshot
	if err := d.db.WithContext(ctx).Where("project_id=?", projectID).First(&snap).Error; err != nil {
		if orm.IsErrRecordNotFound(err) {
			return make([]*timeline.Track, 0), nil
		}
		return nil, err
	}
	var tracks []*timeline.Track
	if err := json.Unmarshal(snap.Tracks, &tracks); err != nil {
		return nil, fmt.Errorf("unmarshal tracks: %w", err)
	}
	return tracks, nil
}
