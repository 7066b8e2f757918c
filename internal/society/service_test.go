package society

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
	byID    map[uint]*Pacs
	nextID  uint
	deleted []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uint]*Pacs{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, pacs *Pacs) error {
	pacs.ID = r.nextID
	r.nextID++
	cp := *pacs
	r.byID[pacs.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*Pacs, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*Pacs, error) {
	for _, p := range r.byID {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Pacs, error) {
	var out []Pacs
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, pacs *Pacs) error {
	cp := *pacs
	r.byID[pacs.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateTemplateType(_ context.Context, id uint, templateType int) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TemplateType = templateType
	return nil
}

func (r *fakeRepo) DeleteCascade(_ context.Context, id uint) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func newTestService() (Service, *fakeRepo, *fakeAudit) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	return NewService(repo, audit), repo, audit
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("green-valley"))
	assert.NoError(t, ValidateSlug("pacs123"))

	assert.ErrorIs(t, ValidateSlug("Green-Valley"), ErrInvalidSlug)
	assert.ErrorIs(t, ValidateSlug("green valley"), ErrInvalidSlug)
	assert.ErrorIs(t, ValidateSlug("-leading"), ErrInvalidSlug)
	assert.ErrorIs(t, ValidateSlug("trailing-"), ErrInvalidSlug)
	assert.ErrorIs(t, ValidateSlug(""), ErrInvalidSlug)

	assert.ErrorIs(t, ValidateSlug("admin"), ErrReservedSlug)
	assert.ErrorIs(t, ValidateSlug("api"), ErrReservedSlug)
	assert.ErrorIs(t, ValidateSlug("loans"), ErrReservedSlug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Slug: "green-valley", Name: "Green Valley PACS"}, 1, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Slug: "green-valley", Name: "Another"}, 1, "")
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateNormalizesSlugAndTemplate(t *testing.T) {
	svc, _, _ := newTestService()

	pacs, err := svc.Create(context.Background(), CreateInput{
		Slug:         "  Green-Valley  ",
		Name:         "Green Valley PACS",
		TemplateType: 9,
	}, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "green-valley", pacs.Slug)
	assert.Equal(t, TemplateMin, pacs.TemplateType)
}

func TestSetTemplateValidatesRange(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	pacs, err := svc.Create(ctx, CreateInput{Slug: "green-valley", Name: "Green Valley PACS"}, 1, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetTemplate(ctx, pacs.ID, 0, 1, ""), ErrInvalidTemplate)
	assert.ErrorIs(t, svc.SetTemplate(ctx, pacs.ID, 4, 1, ""), ErrInvalidTemplate)

	require.NoError(t, svc.SetTemplate(ctx, pacs.ID, 3, 1, ""))
	assert.Equal(t, 3, repo.byID[pacs.ID].TemplateType)
}

func TestDeleteCascades(t *testing.T) {
	svc, repo, audit := newTestService()
	ctx := context.Background()

	pacs, err := svc.Create(ctx, CreateInput{Slug: "green-valley", Name: "Green Valley PACS"}, 1, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, pacs.ID, 1, ""))
	assert.Equal(t, []uint{pacs.ID}, repo.deleted)
	assert.Contains(t, audit.actions, "DELETE_SOCIETY")
}

func TestResolveSlug(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	pacs, err := svc.Create(ctx, CreateInput{Slug: "green-valley", Name: "Green Valley PACS"}, 1, "")
	require.NoError(t, err)

	ref, found, err := svc.ResolveSlug(ctx, "green-valley")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, pacs.ID, ref.ID)

	_, found, err = svc.ResolveSlug(ctx, "no-such-society")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	pacs, err := svc.Create(ctx, CreateInput{
		Slug:     "green-valley",
		Name:     "Green Valley PACS",
		District: "Mandya",
	}, 1, "")
	require.NoError(t, err)

	newName := "Green Valley Cooperative"
	updated, err := svc.Update(ctx, pacs.ID, UpdateInput{Name: &newName}, 1, "")
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "Mandya", updated.District)
	assert.Equal(t, "green-valley", updated.Slug)
}
