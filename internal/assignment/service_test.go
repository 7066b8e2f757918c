package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
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

type fakeRepo struct {
	byID   map[uint]*Assignment
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uint]*Assignment{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, a *Assignment) error {
	a.ID = r.nextID
	r.nextID++
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*Assignment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) GetByUserAndPacs(_ context.Context, userID, pacsID uint) (*Assignment, error) {
	for _, a := range r.byID {
		if a.UserID == userID && a.PacsID == pacsID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListByUser(context.Context, uint) ([]AssignedSociety, error) {
	return nil, nil
}

func (r *fakeRepo) ListByPacs(context.Context, uint) ([]StaffMember, error) {
	return nil, nil
}

func (r *fakeRepo) UpdateRole(_ context.Context, id uint, role string) error {
	a, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Role = role
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.byID, id)
	return nil
}

func newTestService() (Service, *fakeRepo, *fakeAudit) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	return NewService(repo, audit), repo, audit
}

func TestAssignValidatesRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Assign(context.Background(), 1, 1, "super_admin", 9, "")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Assign(context.Background(), 1, 1, "owner", 9, "")
	assert.ErrorIs(t, err, ErrInvalidRole)

	a, err := svc.Assign(context.Background(), 1, 1, "manager", 9, "")
	require.NoError(t, err)
	assert.Equal(t, "manager", a.Role)
}

func TestAssignRejectsDuplicates(t *testing.T) {
	svc, _, audit := newTestService()
	ctx := context.Background()

	_, err := svc.Assign(ctx, 1, 1, "admin", 9, "")
	require.NoError(t, err)

	_, err = svc.Assign(ctx, 1, 1, "staff", 9, "")
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	// Same user, different society is fine
	_, err = svc.Assign(ctx, 1, 2, "staff", 9, "")
	require.NoError(t, err)

	assert.Contains(t, audit.actions, "ASSIGN_USER")
}

func TestRoleFor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Assign(ctx, 1, 1, "staff", 9, "")
	require.NoError(t, err)

	role, assigned, err := svc.RoleFor(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, "staff", role)

	_, assigned, err = svc.RoleFor(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, assigned)
}

func TestChangeRoleAndRevoke(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Assign(ctx, 1, 1, "staff", 9, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeRole(ctx, a.ID, "boss", 9, ""), ErrInvalidRole)

	require.NoError(t, svc.ChangeRole(ctx, a.ID, "admin", 9, ""))
	assert.Equal(t, "admin", repo.byID[a.ID].Role)

	require.NoError(t, svc.Revoke(ctx, a.ID, 9, ""))
	assert.Empty(t, repo.byID)

	assert.ErrorIs(t, svc.Revoke(ctx, a.ID, 9, ""), gorm.ErrRecordNotFound)
}
