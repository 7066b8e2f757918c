package scheme

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
)

// ======================
// 🔹 In-memory fakes
// ======================

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
	loans    map[uint]*LoanScheme
	deposits map[uint]*DepositScheme
	steps    map[uint]*LoanApplicationStep
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		loans:    map[uint]*LoanScheme{},
		deposits: map[uint]*DepositScheme{},
		steps:    map[uint]*LoanApplicationStep{},
		nextID:   1,
	}
}

func (r *fakeRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakeRepo) CreateLoan(_ context.Context, ls *LoanScheme) error {
	ls.ID = r.id()
	cp := *ls
	r.loans[ls.ID] = &cp
	return nil
}

func (r *fakeRepo) GetLoan(_ context.Context, id uint) (*LoanScheme, error) {
	ls, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ls
	return &cp, nil
}

func (r *fakeRepo) ListLoans(_ context.Context, pacsID uint) ([]LoanScheme, error) {
	var out []LoanScheme
	for _, ls := range r.loans {
		if ls.PacsID == pacsID {
			out = append(out, *ls)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListActiveLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error) {
	all, _ := r.ListLoans(ctx, pacsID)
	var out []LoanScheme
	for _, ls := range all {
		if ls.IsActive {
			out = append(out, ls)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAllActiveLoans(context.Context) ([]LoanListing, error) {
	return nil, nil
}

func (r *fakeRepo) UpdateLoan(_ context.Context, ls *LoanScheme) error {
	cp := *ls
	r.loans[ls.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteLoan(_ context.Context, id uint) error {
	delete(r.loans, id)
	for sid, st := range r.steps {
		if st.LoanSchemeID == id {
			delete(r.steps, sid)
		}
	}
	return nil
}

func (r *fakeRepo) CreateDeposit(_ context.Context, ds *DepositScheme) error {
	ds.ID = r.id()
	cp := *ds
	r.deposits[ds.ID] = &cp
	return nil
}

func (r *fakeRepo) GetDeposit(_ context.Context, id uint) (*DepositScheme, error) {
	ds, ok := r.deposits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ds
	return &cp, nil
}

func (r *fakeRepo) ListDeposits(_ context.Context, pacsID uint) ([]DepositScheme, error) {
	var out []DepositScheme
	for _, ds := range r.deposits {
		if ds.PacsID == pacsID {
			out = append(out, *ds)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error) {
	all, _ := r.ListDeposits(ctx, pacsID)
	var out []DepositScheme
	for _, ds := range all {
		if ds.IsActive {
			out = append(out, ds)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateDeposit(_ context.Context, ds *DepositScheme) error {
	cp := *ds
	r.deposits[ds.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteDeposit(_ context.Context, id uint) error {
	delete(r.deposits, id)
	return nil
}

func (r *fakeRepo) CreateStep(_ context.Context, st *LoanApplicationStep) error {
	st.ID = r.id()
	cp := *st
	r.steps[st.ID] = &cp
	return nil
}

func (r *fakeRepo) GetStep(_ context.Context, id uint) (*LoanApplicationStep, error) {
	st, ok := r.steps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeRepo) ListSteps(_ context.Context, loanSchemeID uint) ([]LoanApplicationStep, error) {
	var out []LoanApplicationStep
	for _, st := range r.steps {
		if st.LoanSchemeID == loanSchemeID {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

func (r *fakeRepo) UpdateStep(_ context.Context, st *LoanApplicationStep) error {
	cp := *st
	r.steps[st.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteStep(_ context.Context, id uint) error {
	st, ok := r.steps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.steps, id)
	for _, other := range r.steps {
		if other.LoanSchemeID == st.LoanSchemeID && other.StepNumber > st.StepNumber {
			other.StepNumber--
		}
	}
	return nil
}

func (r *fakeRepo) ReorderSteps(_ context.Context, loanSchemeID uint, orderedIDs []uint) error {
	for i, id := range orderedIDs {
		st, ok := r.steps[id]
		if !ok || st.LoanSchemeID != loanSchemeID {
			return gorm.ErrRecordNotFound
		}
		st.StepNumber = i + 1
	}
	return nil
}

func (r *fakeRepo) CountActiveLoans(ctx context.Context, pacsID uint) (int64, error) {
	active, _ := r.ListActiveLoans(ctx, pacsID)
	return int64(len(active)), nil
}

func (r *fakeRepo) CountActiveDeposits(ctx context.Context, pacsID uint) (int64, error) {
	active, _ := r.ListActiveDeposits(ctx, pacsID)
	return int64(len(active)), nil
}

// ======================
// 🔹 Tests
// ======================

func newTestService() (Service, *fakeRepo, *fakeAudit) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	return NewService(repo, audit), repo, audit
}

func TestCreateLoanStoresNewlineFieldsAsLists(t *testing.T) {
	svc, _, audit := newTestService()

	ls, err := svc.CreateLoan(context.Background(), 1, "green-valley", LoanSchemeInput{
		Name:        "Kisan Credit",
		Eligibility: "Must be a member\nLand holding proof",
		Benefits:    "A\nB\nC",
	}, 7, "1.2.3.4")
	require.NoError(t, err)

	assert.JSONEq(t, `["A","B","C"]`, string(ls.Benefits))
	assert.Equal(t, "A\nB\nC", JSONToLines(ls.Benefits))
	assert.Equal(t, "Must be a member\nLand holding proof", JSONToLines(ls.Eligibility))
	assert.True(t, ls.IsActive)
	assert.Contains(t, audit.actions, "CREATE_LOAN_SCHEME")
}

func TestGetLoanHidesOtherSocieties(t *testing.T) {
	svc, _, _ := newTestService()

	ls, err := svc.CreateLoan(context.Background(), 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	_, err = svc.GetLoan(context.Background(), 2, ls.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetLoan(context.Background(), 1, ls.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crop Loan", got.Name)
}

func TestAddStepAppendsNumbering(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	first, err := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "Visit office"}, 7, "")
	require.NoError(t, err)
	second, err := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "Submit documents"}, 7, "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.StepNumber)
	assert.Equal(t, 2, second.StepNumber)
}

func TestReorderStepsRewritesSequence(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	a, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "A"}, 7, "")
	b, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "B"}, 7, "")
	c, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "C"}, 7, "")

	steps, err := svc.ReorderSteps(ctx, 1, "green-valley", ls.ID, []uint{c.ID, a.ID, b.ID}, 7, "")
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "C", steps[0].Title)
	assert.Equal(t, "A", steps[1].Title)
	assert.Equal(t, "B", steps[2].Title)
	for i, st := range steps {
		assert.Equal(t, i+1, st.StepNumber)
	}
}

func TestReorderStepsRejectsStaleSets(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	a, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "A"}, 7, "")
	b, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "B"}, 7, "")

	// Missing a step
	_, err = svc.ReorderSteps(ctx, 1, "green-valley", ls.ID, []uint{a.ID}, 7, "")
	assert.ErrorIs(t, err, ErrStepSetStale)

	// Duplicate entry
	_, err = svc.ReorderSteps(ctx, 1, "green-valley", ls.ID, []uint{a.ID, a.ID}, 7, "")
	assert.ErrorIs(t, err, ErrStepSetStale)

	// Step from another scheme
	other, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Other"}, 7, "")
	require.NoError(t, err)
	foreign, _ := svc.AddStep(ctx, 1, "green-valley", other.ID, StepInput{Title: "X"}, 7, "")
	_, err = svc.ReorderSteps(ctx, 1, "green-valley", ls.ID, []uint{a.ID, foreign.ID}, 7, "")
	assert.ErrorIs(t, err, ErrStepSetStale)

	// Original order untouched
	steps, err := svc.ListSteps(ctx, 1, ls.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, []uint{steps[0].ID, steps[1].ID})
}

func TestDeleteLoanRemovesSteps(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)
	_, err = svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "A"}, 7, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLoan(ctx, 1, "green-valley", ls.ID, 7, ""))

	assert.Empty(t, repo.steps)
	_, err = svc.GetLoan(ctx, 1, ls.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStepClosesGap(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	a, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "A"}, 7, "")
	b, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "B"}, 7, "")
	c, _ := svc.AddStep(ctx, 1, "green-valley", ls.ID, StepInput{Title: "C"}, 7, "")

	require.NoError(t, svc.DeleteStep(ctx, 1, "green-valley", ls.ID, b.ID, 7, ""))

	steps, err := svc.ListSteps(ctx, 1, ls.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, a.ID, steps[0].ID)
	assert.Equal(t, 1, steps[0].StepNumber)
	assert.Equal(t, c.ID, steps[1].ID)
	assert.Equal(t, 2, steps[1].StepNumber)
}

func TestUpdateLoanTogglesActive(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ls, err := svc.CreateLoan(ctx, 1, "green-valley", LoanSchemeInput{Name: "Crop Loan"}, 7, "")
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateLoan(ctx, 1, "green-valley", ls.ID, LoanSchemeInput{
		Name:     "Crop Loan",
		IsActive: &inactive,
	}, 7, "")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActiveLoans(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListLoans(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
