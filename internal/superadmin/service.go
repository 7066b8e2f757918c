package superadmin

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/internal/auth"
	"github.com/sharath018/pacs-portal-backend/middleware"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCannotTouchSelf = errors.New("cannot change your own account state")
)

type Service interface {
	ListUsers(ctx context.Context, f UserFilter) ([]auth.User, int64, error)
	GetUser(ctx context.Context, id uint) (*auth.User, error)
	SetUserActive(ctx context.Context, id uint, active bool, actorID uint, ip string) error
	ResetUserPassword(ctx context.Context, id uint, actorID uint, ip string) error
	BulkResetPasswords(ctx context.Context, actorID uint, ip string) (int64, error)
	Stats(ctx context.Context) (*PlatformStats, error)
}

type service struct {
	repo            Repository
	authRepo        auth.Repository
	auditSvc        auditlog.Service
	defaultPassword string
}

func NewService(repo Repository, authRepo auth.Repository, auditSvc auditlog.Service, defaultPassword string) Service {
	return &service{
		repo:            repo,
		authRepo:        authRepo,
		auditSvc:        auditSvc,
		defaultPassword: defaultPassword,
	}
}

func (s *service) ListUsers(ctx context.Context, f UserFilter) ([]auth.User, int64, error) {
	return s.repo.ListUsers(ctx, f)
}

func (s *service) GetUser(ctx context.Context, id uint) (*auth.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) SetUserActive(ctx context.Context, id uint, active bool, actorID uint, ip string) error {
	if id == actorID {
		return ErrCannotTouchSelf
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetUserActive(ctx, id, active); err != nil {
		return err
	}

	action := "DEACTIVATE_USER"
	if active {
		action = "ACTIVATE_USER"
	}
	_ = s.auditSvc.LogAction(ctx, &actorID, nil, action,
		map[string]interface{}{"target_user_id": id}, ip, "success")
	return nil
}

func (s *service) ResetUserPassword(ctx context.Context, id uint, actorID uint, ip string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.SetUserPassword(ctx, id, string(hash)); err != nil {
		return err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, nil, "RESET_USER_PASSWORD",
		map[string]interface{}{"target_user_id": id}, ip, "success")
	return nil
}

// BulkResetPasswords sets every non-superadmin account back to the
// configured default. One hash is computed and shared; bcrypt salts
// live inside the hash so this is safe.
func (s *service) BulkResetPasswords(ctx context.Context, actorID uint, ip string) (int64, error) {
	superRole, err := s.authRepo.FindRoleByName(middleware.RoleSuperAdmin)
	if err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.BulkSetPasswords(ctx, string(hash), superRole.ID)
	if err != nil {
		return 0, err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, nil, "BULK_RESET_PASSWORDS",
		map[string]interface{}{"affected_users": count}, ip, "success")
	return count, nil
}

func (s *service) Stats(ctx context.Context) (*PlatformStats, error) {
	return s.repo.Stats(ctx)
}
