package data

import (
	"context"

	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

// Store 通用 gorm 存储实现
// 各领域 store 包组合此类型实现自己的 Storer 接口
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) Store[T] {
	return Store[T]{db: db}
}

func (s Store[T]) apply(ctx context.Context, opts []orm.QueryOption) *gorm.DB {
	db := s.db.WithContext(ctx).Model(new(T))
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// Find 分页查询，返回总数
func (s Store[T]) Find(ctx context.Context, items *[]*T, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	db := s.apply(ctx, opts)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := db.Limit(pager.Limit()).Offset(pager.Offset()).Find(items).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s Store[T]) Get(ctx context.Context, out *T, opts ...orm.QueryOption) error {
	return s.apply(ctx, opts).First(out).Error
}

func (s Store[T]) Add(ctx context.Context, in *T) error {
	return s.db.WithContext(ctx).Create(in).Error
}

// Edit 查出记录，应用 changeFn 后保存
func (s Store[T]) Edit(ctx context.Context, out *T, changeFn func(*T), opts ...orm.QueryOption) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.Model(new(T))
		for _, opt := range opts {
			db = opt(db)
		}
		if err := db.First(out).Error; err != nil {
			return err
		}
		changeFn(out)
		return tx.Save(out).Error
	})
}

// Del 查出记录后删除，out 带回被删内容
func (s Store[T]) Del(ctx context.Context, out *T, opts ...orm.QueryOption) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.Model(new(T))
		for _, opt := range opts {
			db = opt(db)
		}
		if err := db.First(out).Error; err != nil {
			return err
		}
		return tx.Delete(out).Error
	})
}

func (s Store[T]) Count(ctx context.Context, opts ...orm.QueryOption) (int64, error) {
	var total int64
	err := s.apply(ctx, opts).Count(&total).Error
	return total, err
}
