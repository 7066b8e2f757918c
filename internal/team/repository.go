package team

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *TeamMember) error
	GetByID(ctx context.Context, id uint) (*TeamMember, error)
	List(ctx context.Context, pacsID uint, visibleOnly bool) ([]TeamMember, error)
	Update(ctx context.Context, m *TeamMember) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, m *TeamMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*TeamMember, error) {
	var m TeamMember
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

// List orders leadership first, then by display order, breaking ties on
// creation time
func (r *repository) List(ctx context.Context, pacsID uint, visibleOnly bool) ([]TeamMember, error) {
	q := r.db.WithContext(ctx).Where("pacs_id = ?", pacsID)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var members []TeamMember
	err := q.Order("is_leadership DESC, display_order, created_at").Find(&members).Error
	return members, err
}

func (r *repository) Update(ctx context.Context, m *TeamMember) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&TeamMember{}, id).Error
}
