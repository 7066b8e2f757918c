package superadmin

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auth"
)

// UserFilter narrows the superadmin user listing
type UserFilter struct {
	Search   string // matches name or email
	Role     string
	IsActive *bool
	Page     int
	Limit    int
}

// PlatformStats is the superadmin console summary block
type PlatformStats struct {
	Societies      int64 `json:"societies"`
	Users          int64 `json:"users"`
	ActiveUsers    int64 `json:"active_users"`
	Assignments    int64 `json:"assignments"`
	LoanSchemes    int64 `json:"loan_schemes"`
	DepositSchemes int64 `json:"deposit_schemes"`
	PDSShops       int64 `json:"pds_shops"`
}

type Repository interface {
	ListUsers(ctx context.Context, f UserFilter) ([]auth.User, int64, error)
	GetUser(ctx context.Context, id uint) (*auth.User, error)
	SetUserActive(ctx context.Context, id uint, active bool) error
	SetUserPassword(ctx context.Context, id uint, hash string) error
	BulkSetPasswords(ctx context.Context, hash string, excludeRoleID uint) (int64, error)
	Stats(ctx context.Context) (*PlatformStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) ListUsers(ctx context.Context, f UserFilter) ([]auth.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&auth.User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id")

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("users.full_name ILIKE ? OR users.email ILIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("user_roles.role_name = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("users.is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	var users []auth.User
	err := q.Preload("Role").
		Order("users.created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *repository) GetUser(ctx context.Context, id uint) (*auth.User, error) {
	var u auth.User
	err := r.db.WithContext(ctx).Preload("Role").First(&u, id).Error
	return &u, err
}

func (r *repository) SetUserActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *repository) SetUserPassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// BulkSetPasswords rewrites every active user's password except those
// holding the excluded role (superadmins keep theirs). Deactivated
// accounts are left alone so re-enabling one does not hand out the
// shared default.
func (r *repository) BulkSetPasswords(ctx context.Context, hash string, excludeRoleID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("role_id <> ? AND is_active = ?", excludeRoleID, true).
		Update("password_hash", hash)
	return res.RowsAffected, res.Error
}

func (r *repository) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM pacs)                          AS societies,
			(SELECT COUNT(*) FROM users)                         AS users,
			(SELECT COUNT(*) FROM users WHERE is_active = true)  AS active_users,
			(SELECT COUNT(*) FROM pacs_users)                    AS assignments,
			(SELECT COUNT(*) FROM loan_schemes)                  AS loan_schemes,
			(SELECT COUNT(*) FROM deposit_schemes)               AS deposit_schemes,
			(SELECT COUNT(*) FROM pds_shops)                     AS pds_shops
	`).Scan(&stats).Error
	return &stats, err
}
