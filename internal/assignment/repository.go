package assignment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uint) (*Assignment, error)
	GetByUserAndPacs(ctx context.Context, userID, pacsID uint) (*Assignment, error)
	ListByUser(ctx context.Context, userID uint) ([]AssignedSociety, error)
	ListByPacs(ctx context.Context, pacsID uint) ([]StaffMember, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Assignment, error) {
	var a Assignment
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *repository) GetByUserAndPacs(ctx context.Context, userID, pacsID uint) (*Assignment, error) {
	var a Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND pacs_id = ?", userID, pacsID).
		First(&a).Error
	return &a, err
}

// ListByUser returns the societies a user can manage (admin dashboard)
func (r *repository) ListByUser(ctx context.Context, userID uint) ([]AssignedSociety, error) {
	var results []AssignedSociety
	err := r.db.WithContext(ctx).Raw(`
		SELECT pu.pacs_id, p.slug, p.name, p.district, p.state, pu.role
		FROM pacs_users pu
		JOIN pacs p ON p.id = pu.pacs_id
		WHERE pu.user_id = ?
		ORDER BY p.name
	`, userID).Scan(&results).Error
	return results, err
}

// ListByPacs returns a society's staff with user details
func (r *repository) ListByPacs(ctx context.Context, pacsID uint) ([]StaffMember, error) {
	var results []StaffMember
	err := r.db.WithContext(ctx).Raw(`
		SELECT pu.id AS assignment_id, u.id AS user_id, u.full_name, u.email,
		       pu.role, u.is_active, pu.created_at
		FROM pacs_users pu
		JOIN users u ON u.id = pu.user_id
		WHERE pu.pacs_id = ?
		ORDER BY pu.created_at
	`, pacsID).Scan(&results).Error
	return results, err
}

func (r *repository) UpdateRole(ctx context.Context, id uint, role string) error {
	return r.db.WithContext(ctx).
		Model(&Assignment{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Assignment{}, id).Error
}
