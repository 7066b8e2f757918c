package scheme

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/utils"
)

var (
	ErrNotFound      = errors.New("scheme not found")
	ErrStepNotFound  = errors.New("application step not found")
	ErrStepSetStale  = errors.New("reorder must list every step of the scheme exactly once")
)

// LoanSchemeInput carries newline-delimited multi-value fields as edited
// in the admin forms
type LoanSchemeInput struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	InterestRate float64  `json:"interest_rate"`
	MinAmount    *float64 `json:"min_amount"`
	MaxAmount    *float64 `json:"max_amount"`
	TenureMonths *int     `json:"tenure_months"`
	Eligibility  string   `json:"eligibility"`
	Benefits     string   `json:"benefits"`
	Documents    string   `json:"documents"`
	IsActive     *bool    `json:"is_active"`
}

type DepositSchemeInput struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	InterestRate float64  `json:"interest_rate"`
	MinDeposit   *float64 `json:"min_deposit"`
	TenureMonths *int     `json:"tenure_months"`
	Benefits     string   `json:"benefits"`
	IsActive     *bool    `json:"is_active"`
}

type StepInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type Service interface {
	CreateLoan(ctx context.Context, pacsID uint, slug string, in LoanSchemeInput, actorID uint, ip string) (*LoanScheme, error)
	GetLoan(ctx context.Context, pacsID, id uint) (*LoanScheme, error)
	ListLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error)
	ListActiveLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error)
	ListAllActiveLoans(ctx context.Context) ([]LoanListing, error)
	UpdateLoan(ctx context.Context, pacsID uint, slug string, id uint, in LoanSchemeInput, actorID uint, ip string) (*LoanScheme, error)
	DeleteLoan(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CreateDeposit(ctx context.Context, pacsID uint, slug string, in DepositSchemeInput, actorID uint, ip string) (*DepositScheme, error)
	GetDeposit(ctx context.Context, pacsID, id uint) (*DepositScheme, error)
	ListDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error)
	ListActiveDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error)
	UpdateDeposit(ctx context.Context, pacsID uint, slug string, id uint, in DepositSchemeInput, actorID uint, ip string) (*DepositScheme, error)
	DeleteDeposit(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	ListSteps(ctx context.Context, pacsID, loanSchemeID uint) ([]LoanApplicationStep, error)
	AddStep(ctx context.Context, pacsID uint, slug string, loanSchemeID uint, in StepInput, actorID uint, ip string) (*LoanApplicationStep, error)
	UpdateStep(ctx context.Context, pacsID uint, slug string, loanSchemeID, stepID uint, in StepInput, actorID uint, ip string) (*LoanApplicationStep, error)
	DeleteStep(ctx context.Context, pacsID uint, slug string, loanSchemeID, stepID uint, actorID uint, ip string) error
	ReorderSteps(ctx context.Context, pacsID uint, slug string, loanSchemeID uint, orderedIDs []uint, actorID uint, ip string) ([]LoanApplicationStep, error)

	CountActive(ctx context.Context, pacsID uint) (loans int64, deposits int64, err error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

// ownedLoan loads a loan scheme and hides it behind ErrNotFound when it
// belongs to a different society
func (s *service) ownedLoan(ctx context.Context, pacsID, id uint) (*LoanScheme, error) {
	ls, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ls.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return ls, nil
}

func (s *service) ownedDeposit(ctx context.Context, pacsID, id uint) (*DepositScheme, error) {
	ds, err := s.repo.GetDeposit(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ds.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return ds, nil
}

func (s *service) notifyChange(ctx context.Context, actorID, pacsID uint, slug, action, resource string, details map[string]interface{}, ip string) {
	_ = s.auditSvc.LogAction(ctx, &actorID, &pacsID, action, details, ip, "success")
	utils.PublishContentEvent(utils.ContentEvent{
		PacsID:   pacsID,
		Slug:     slug,
		Resource: resource,
		Action:   action,
	})
}

// ======================
// 🔹 Loan schemes
// ======================

func (s *service) CreateLoan(ctx context.Context, pacsID uint, slug string, in LoanSchemeInput, actorID uint, ip string) (*LoanScheme, error) {
	ls := &LoanScheme{
		PacsID:       pacsID,
		Name:         in.Name,
		Description:  in.Description,
		InterestRate: in.InterestRate,
		MinAmount:    in.MinAmount,
		MaxAmount:    in.MaxAmount,
		TenureMonths: in.TenureMonths,
		Eligibility:  LinesToJSON(in.Eligibility),
		Benefits:     LinesToJSON(in.Benefits),
		Documents:    LinesToJSON(in.Documents),
		IsActive:     true,
	}
	if in.IsActive != nil {
		ls.IsActive = *in.IsActive
	}
	if err := s.repo.CreateLoan(ctx, ls); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_LOAN_SCHEME", "loan_scheme",
		map[string]interface{}{"scheme_id": ls.ID, "name": ls.Name}, ip)
	return ls, nil
}

func (s *service) GetLoan(ctx context.Context, pacsID, id uint) (*LoanScheme, error) {
	return s.ownedLoan(ctx, pacsID, id)
}

func (s *service) ListLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error) {
	return s.repo.ListLoans(ctx, pacsID)
}

func (s *service) ListActiveLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error) {
	return s.repo.ListActiveLoans(ctx, pacsID)
}

func (s *service) ListAllActiveLoans(ctx context.Context) ([]LoanListing, error) {
	return s.repo.ListAllActiveLoans(ctx)
}

func (s *service) UpdateLoan(ctx context.Context, pacsID uint, slug string, id uint, in LoanSchemeInput, actorID uint, ip string) (*LoanScheme, error) {
	ls, err := s.ownedLoan(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}

	ls.Name = in.Name
	ls.Description = in.Description
	ls.InterestRate = in.InterestRate
	ls.MinAmount = in.MinAmount
	ls.MaxAmount = in.MaxAmount
	ls.TenureMonths = in.TenureMonths
	ls.Eligibility = LinesToJSON(in.Eligibility)
	ls.Benefits = LinesToJSON(in.Benefits)
	ls.Documents = LinesToJSON(in.Documents)
	if in.IsActive != nil {
		ls.IsActive = *in.IsActive
	}

	if err := s.repo.UpdateLoan(ctx, ls); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_LOAN_SCHEME", "loan_scheme",
		map[string]interface{}{"scheme_id": ls.ID, "name": ls.Name}, ip)
	return ls, nil
}

func (s *service) DeleteLoan(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	ls, err := s.ownedLoan(ctx, pacsID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteLoan(ctx, id); err != nil {
		return err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_LOAN_SCHEME", "loan_scheme",
		map[string]interface{}{"scheme_id": id, "name": ls.Name}, ip)
	return nil
}

// ======================
// 🔹 Deposit schemes
// ======================

func (s *service) CreateDeposit(ctx context.Context, pacsID uint, slug string, in DepositSchemeInput, actorID uint, ip string) (*DepositScheme, error) {
	ds := &DepositScheme{
		PacsID:       pacsID,
		Name:         in.Name,
		Description:  in.Description,
		InterestRate: in.InterestRate,
		MinDeposit:   in.MinDeposit,
		TenureMonths: in.TenureMonths,
		Benefits:     LinesToJSON(in.Benefits),
		IsActive:     true,
	}
	if in.IsActive != nil {
		ds.IsActive = *in.IsActive
	}
	if err := s.repo.CreateDeposit(ctx, ds); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_DEPOSIT_SCHEME", "deposit_scheme",
		map[string]interface{}{"scheme_id": ds.ID, "name": ds.Name}, ip)
	return ds, nil
}

func (s *service) GetDeposit(ctx context.Context, pacsID, id uint) (*DepositScheme, error) {
	return s.ownedDeposit(ctx, pacsID, id)
}

func (s *service) ListDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error) {
	return s.repo.ListDeposits(ctx, pacsID)
}

func (s *service) ListActiveDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error) {
	return s.repo.ListActiveDeposits(ctx, pacsID)
}

func (s *service) UpdateDeposit(ctx context.Context, pacsID uint, slug string, id uint, in DepositSchemeInput, actorID uint, ip string) (*DepositScheme, error) {
	ds, err := s.ownedDeposit(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}

	ds.Name = in.Name
	ds.Description = in.Description
	ds.InterestRate = in.InterestRate
	ds.MinDeposit = in.MinDeposit
	ds.TenureMonths = in.TenureMonths
	ds.Benefits = LinesToJSON(in.Benefits)
	if in.IsActive != nil {
		ds.IsActive = *in.IsActive
	}

	if err := s.repo.UpdateDeposit(ctx, ds); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_DEPOSIT_SCHEME", "deposit_scheme",
		map[string]interface{}{"scheme_id": ds.ID, "name": ds.Name}, ip)
	return ds, nil
}

func (s *service) DeleteDeposit(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	ds, err := s.ownedDeposit(ctx, pacsID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteDeposit(ctx, id); err != nil {
		return err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_DEPOSIT_SCHEME", "deposit_scheme",
		map[string]interface{}{"scheme_id": id, "name": ds.Name}, ip)
	return nil
}

// ======================
// 🔹 Application steps
// ======================

func (s *service) ListSteps(ctx context.Context, pacsID, loanSchemeID uint) ([]LoanApplicationStep, error) {
	if _, err := s.ownedLoan(ctx, pacsID, loanSchemeID); err != nil {
		return nil, err
	}
	return s.repo.ListSteps(ctx, loanSchemeID)
}

func (s *service) AddStep(ctx context.Context, pacsID uint, slug string, loanSchemeID uint, in StepInput, actorID uint, ip string) (*LoanApplicationStep, error) {
	if _, err := s.ownedLoan(ctx, pacsID, loanSchemeID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListSteps(ctx, loanSchemeID)
	if err != nil {
		return nil, err
	}

	st := &LoanApplicationStep{
		LoanSchemeID: loanSchemeID,
		StepNumber:   len(existing) + 1,
		Title:        in.Title,
		Description:  in.Description,
	}
	if err := s.repo.CreateStep(ctx, st); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "ADD_LOAN_STEP", "loan_scheme",
		map[string]interface{}{"scheme_id": loanSchemeID, "step_id": st.ID}, ip)
	return st, nil
}

func (s *service) ownedStep(ctx context.Context, pacsID, loanSchemeID, stepID uint) (*LoanApplicationStep, error) {
	if _, err := s.ownedLoan(ctx, pacsID, loanSchemeID); err != nil {
		return nil, err
	}
	st, err := s.repo.GetStep(ctx, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStepNotFound
		}
		return nil, err
	}
	if st.LoanSchemeID != loanSchemeID {
		return nil, ErrStepNotFound
	}
	return st, nil
}

func (s *service) UpdateStep(ctx context.Context, pacsID uint, slug string, loanSchemeID, stepID uint, in StepInput, actorID uint, ip string) (*LoanApplicationStep, error) {
	st, err := s.ownedStep(ctx, pacsID, loanSchemeID, stepID)
	if err != nil {
		return nil, err
	}

	st.Title = in.Title
	st.Description = in.Description
	if err := s.repo.UpdateStep(ctx, st); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_LOAN_STEP", "loan_scheme",
		map[string]interface{}{"scheme_id": loanSchemeID, "step_id": stepID}, ip)
	return st, nil
}

func (s *service) DeleteStep(ctx context.Context, pacsID uint, slug string, loanSchemeID, stepID uint, actorID uint, ip string) error {
	if _, err := s.ownedStep(ctx, pacsID, loanSchemeID, stepID); err != nil {
		return err
	}

	if err := s.repo.DeleteStep(ctx, stepID); err != nil {
		return err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_LOAN_STEP", "loan_scheme",
		map[string]interface{}{"scheme_id": loanSchemeID, "step_id": stepID}, ip)
	return nil
}

func (s *service) ReorderSteps(ctx context.Context, pacsID uint, slug string, loanSchemeID uint, orderedIDs []uint, actorID uint, ip string) ([]LoanApplicationStep, error) {
	if _, err := s.ownedLoan(ctx, pacsID, loanSchemeID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListSteps(ctx, loanSchemeID)
	if err != nil {
		return nil, err
	}

	// The request must account for every current step exactly once
	if len(orderedIDs) != len(existing) {
		return nil, ErrStepSetStale
	}
	known := make(map[uint]bool, len(existing))
	for _, st := range existing {
		known[st.ID] = true
	}
	seen := make(map[uint]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return nil, ErrStepSetStale
		}
		seen[id] = true
	}

	if err := s.repo.ReorderSteps(ctx, loanSchemeID, orderedIDs); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, actorID, pacsID, slug, "REORDER_LOAN_STEPS", "loan_scheme",
		map[string]interface{}{"scheme_id": loanSchemeID, "order": orderedIDs}, ip)

	return s.repo.ListSteps(ctx, loanSchemeID)
}

func (s *service) CountActive(ctx context.Context, pacsID uint) (int64, int64, error) {
	loans, err := s.repo.CountActiveLoans(ctx, pacsID)
	if err != nil {
		return 0, 0, err
	}
	deposits, err := s.repo.CountActiveDeposits(ctx, pacsID)
	if err != nil {
		return 0, 0, err
	}
	return loans, deposits, nil
}
