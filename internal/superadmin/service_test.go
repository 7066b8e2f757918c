package superadmin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/internal/auth"
)

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) LogAction(_ context.Context, _ *uint, _ *uint, action string, _ map[string]interface{}, _ string, _ string) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}

func (f *fakeAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeAuthRepo struct {
	roles map[string]*auth.UserRole
}

func (r *fakeAuthRepo) Create(*auth.User) error { return nil }

func (r *fakeAuthRepo) FindByEmail(string) (*auth.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAuthRepo) FindByID(uint) (auth.User, error) {
	return auth.User{}, gorm.ErrRecordNotFound
}

func (r *fakeAuthRepo) FindRoleByName(name string) (*auth.UserRole, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *fakeAuthRepo) GetPublicRoles() ([]auth.UserRole, error) { return nil, nil }

func (r *fakeAuthRepo) Update(*auth.User) error { return nil }

type fakeRepo struct {
	users map[uint]*auth.User

	passwords      map[uint]string // per-user hashes set via SetUserPassword
	bulkHash       string
	bulkExcludeRID uint
	bulkCount      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uint]*auth.User{}, passwords: map[uint]string{}}
}

func (r *fakeRepo) ListUsers(_ context.Context, _ UserFilter) ([]auth.User, int64, error) {
	var out []auth.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) SetUserActive(_ context.Context, id uint, active bool) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (r *fakeRepo) SetUserPassword(_ context.Context, id uint, hash string) error {
	r.passwords[id] = hash
	return nil
}

func (r *fakeRepo) BulkSetPasswords(_ context.Context, hash string, excludeRoleID uint) (int64, error) {
	r.bulkHash = hash
	r.bulkExcludeRID = excludeRoleID
	var count int64
	for _, u := range r.users {
		if u.RoleID != excludeRoleID && u.IsActive {
			count++
		}
	}
	r.bulkCount = count
	return count, nil
}

func (r *fakeRepo) Stats(context.Context) (*PlatformStats, error) {
	return &PlatformStats{Users: int64(len(r.users))}, nil
}

func newTestService() (Service, *fakeRepo, *fakeAudit) {
	repo := newFakeRepo()
	authRepo := &fakeAuthRepo{roles: map[string]*auth.UserRole{
		"super_admin": {ID: 1, RoleName: "super_admin"},
		"admin":       {ID: 2, RoleName: "admin"},
	}}
	audit := &fakeAudit{}
	return NewService(repo, authRepo, audit, "Pacs@123"), repo, audit
}

func TestSetUserActiveBlocksSelf(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.users[5] = &auth.User{ID: 5, RoleID: 2, IsActive: true}

	err := svc.SetUserActive(context.Background(), 5, false, 5, "")
	assert.ErrorIs(t, err, ErrCannotTouchSelf)
	assert.True(t, repo.users[5].IsActive)
}

func TestSetUserActiveTogglesAndAudits(t *testing.T) {
	svc, repo, audit := newTestService()
	repo.users[5] = &auth.User{ID: 5, RoleID: 2, IsActive: true}

	require.NoError(t, svc.SetUserActive(context.Background(), 5, false, 1, ""))
	assert.False(t, repo.users[5].IsActive)
	assert.Contains(t, audit.actions, "DEACTIVATE_USER")

	require.NoError(t, svc.SetUserActive(context.Background(), 5, true, 1, ""))
	assert.True(t, repo.users[5].IsActive)
	assert.Contains(t, audit.actions, "ACTIVATE_USER")

	assert.ErrorIs(t, svc.SetUserActive(context.Background(), 99, false, 1, ""), ErrUserNotFound)
}

func TestResetUserPasswordStoresDefaultHash(t *testing.T) {
	svc, repo, audit := newTestService()
	repo.users[5] = &auth.User{ID: 5, RoleID: 2}

	require.NoError(t, svc.ResetUserPassword(context.Background(), 5, 1, ""))

	hash := repo.passwords[5]
	require.NotEmpty(t, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Pacs@123")))
	assert.Contains(t, audit.actions, "RESET_USER_PASSWORD")

	assert.ErrorIs(t, svc.ResetUserPassword(context.Background(), 99, 1, ""), ErrUserNotFound)
}

func TestBulkResetExcludesSuperadminsAndInactive(t *testing.T) {
	svc, repo, audit := newTestService()
	repo.users[1] = &auth.User{ID: 1, RoleID: 1, IsActive: true} // super_admin
	repo.users[2] = &auth.User{ID: 2, RoleID: 2, IsActive: true}
	repo.users[3] = &auth.User{ID: 3, RoleID: 2, IsActive: true}
	repo.users[4] = &auth.User{ID: 4, RoleID: 2, IsActive: false}

	count, err := svc.BulkResetPasswords(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, uint(1), repo.bulkExcludeRID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.bulkHash), []byte("Pacs@123")))
	assert.Contains(t, audit.actions, "BULK_RESET_PASSWORDS")
}
