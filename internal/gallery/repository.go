package gallery

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, g *GalleryItem) error
	GetByID(ctx context.Context, id uint) (*GalleryItem, error)
	List(ctx context.Context, pacsID uint, visibleOnly bool) ([]GalleryItem, error)
	Update(ctx context.Context, g *GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, g *GalleryItem) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*GalleryItem, error) {
	var g GalleryItem
	err := r.db.WithContext(ctx).First(&g, id).Error
	return &g, err
}

func (r *repository) List(ctx context.Context, pacsID uint, visibleOnly bool) ([]GalleryItem, error) {
	q := r.db.WithContext(ctx).Where("pacs_id = ?", pacsID)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var items []GalleryItem
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, g *GalleryItem) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&GalleryItem{}, id).Error
}
