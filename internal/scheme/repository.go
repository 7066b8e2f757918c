package scheme

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Loan schemes
	CreateLoan(ctx context.Context, ls *LoanScheme) error
	GetLoan(ctx context.Context, id uint) (*LoanScheme, error)
	ListLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error)
	ListActiveLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error)
	ListAllActiveLoans(ctx context.Context) ([]LoanListing, error)
	UpdateLoan(ctx context.Context, ls *LoanScheme) error
	DeleteLoan(ctx context.Context, id uint) error

	// Deposit schemes
	CreateDeposit(ctx context.Context, ds *DepositScheme) error
	GetDeposit(ctx context.Context, id uint) (*DepositScheme, error)
	ListDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error)
	ListActiveDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error)
	UpdateDeposit(ctx context.Context, ds *DepositScheme) error
	DeleteDeposit(ctx context.Context, id uint) error

	// Application steps
	CreateStep(ctx context.Context, st *LoanApplicationStep) error
	GetStep(ctx context.Context, id uint) (*LoanApplicationStep, error)
	ListSteps(ctx context.Context, loanSchemeID uint) ([]LoanApplicationStep, error)
	UpdateStep(ctx context.Context, st *LoanApplicationStep) error
	DeleteStep(ctx context.Context, id uint) error
	ReorderSteps(ctx context.Context, loanSchemeID uint, orderedIDs []uint) error

	CountActiveLoans(ctx context.Context, pacsID uint) (int64, error)
	CountActiveDeposits(ctx context.Context, pacsID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ======================
// 🔹 Loan schemes
// ======================

func (r *repository) CreateLoan(ctx context.Context, ls *LoanScheme) error {
	return r.db.WithContext(ctx).Create(ls).Error
}

func (r *repository) GetLoan(ctx context.Context, id uint) (*LoanScheme, error) {
	var ls LoanScheme
	err := r.db.WithContext(ctx).First(&ls, id).Error
	return &ls, err
}

func (r *repository) ListLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error) {
	var schemes []LoanScheme
	err := r.db.WithContext(ctx).
		Where("pacs_id = ?", pacsID).
		Order("created_at").
		Find(&schemes).Error
	return schemes, err
}

func (r *repository) ListActiveLoans(ctx context.Context, pacsID uint) ([]LoanScheme, error) {
	var schemes []LoanScheme
	err := r.db.WithContext(ctx).
		Where("pacs_id = ? AND is_active = ?", pacsID, true).
		Order("created_at").
		Find(&schemes).Error
	return schemes, err
}

// ListAllActiveLoans backs the cross-society loan directory
func (r *repository) ListAllActiveLoans(ctx context.Context) ([]LoanListing, error) {
	var results []LoanListing
	err := r.db.WithContext(ctx).Raw(`
		SELECT ls.*, p.name AS pacs_name, p.slug AS pacs_slug
		FROM loan_schemes ls
		JOIN pacs p ON p.id = ls.pacs_id
		WHERE ls.is_active = true
		ORDER BY p.name, ls.name
	`).Scan(&results).Error
	return results, err
}

func (r *repository) UpdateLoan(ctx context.Context, ls *LoanScheme) error {
	return r.db.WithContext(ctx).Save(ls).Error
}

// DeleteLoan removes the scheme and its application steps together
func (r *repository) DeleteLoan(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_scheme_id = ?", id).Delete(&LoanApplicationStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&LoanScheme{}, id).Error
	})
}

// ======================
// 🔹 Deposit schemes
// ======================

func (r *repository) CreateDeposit(ctx context.Context, ds *DepositScheme) error {
	return r.db.WithContext(ctx).Create(ds).Error
}

func (r *repository) GetDeposit(ctx context.Context, id uint) (*DepositScheme, error) {
	var ds DepositScheme
	err := r.db.WithContext(ctx).First(&ds, id).Error
	return &ds, err
}

func (r *repository) ListDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error) {
	var schemes []DepositScheme
	err := r.db.WithContext(ctx).
		Where("pacs_id = ?", pacsID).
		Order("created_at").
		Find(&schemes).Error
	return schemes, err
}

func (r *repository) ListActiveDeposits(ctx context.Context, pacsID uint) ([]DepositScheme, error) {
	var schemes []DepositScheme
	err := r.db.WithContext(ctx).
		Where("pacs_id = ? AND is_active = ?", pacsID, true).
		Order("created_at").
		Find(&schemes).Error
	return schemes, err
}

func (r *repository) UpdateDeposit(ctx context.Context, ds *DepositScheme) error {
	return r.db.WithContext(ctx).Save(ds).Error
}

func (r *repository) DeleteDeposit(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DepositScheme{}, id).Error
}

// ======================
// 🔹 Application steps
// ======================

func (r *repository) CreateStep(ctx context.Context, st *LoanApplicationStep) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) GetStep(ctx context.Context, id uint) (*LoanApplicationStep, error) {
	var st LoanApplicationStep
	err := r.db.WithContext(ctx).First(&st, id).Error
	return &st, err
}

func (r *repository) ListSteps(ctx context.Context, loanSchemeID uint) ([]LoanApplicationStep, error) {
	var steps []LoanApplicationStep
	err := r.db.WithContext(ctx).
		Where("loan_scheme_id = ?", loanSchemeID).
		Order("step_number").
		Find(&steps).Error
	return steps, err
}

func (r *repository) UpdateStep(ctx context.Context, st *LoanApplicationStep) error {
	return r.db.WithContext(ctx).Save(st).Error
}

// DeleteStep removes one step and closes the numbering gap it leaves
func (r *repository) DeleteStep(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st LoanApplicationStep
		if err := tx.First(&st, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&LoanApplicationStep{}, id).Error; err != nil {
			return err
		}
		return tx.Model(&LoanApplicationStep{}).
			Where("loan_scheme_id = ? AND step_number > ?", st.LoanSchemeID, st.StepNumber).
			UpdateColumn("step_number", gorm.Expr("step_number - 1")).Error
	})
}

// ReorderSteps rewrites step numbers 1..N following the given ID order,
// all in one transaction so a failed reorder leaves the old order intact
func (r *repository) ReorderSteps(ctx context.Context, loanSchemeID uint, orderedIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&LoanApplicationStep{}).
				Where("id = ? AND loan_scheme_id = ?", id, loanSchemeID).
				UpdateColumn("step_number", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *repository) CountActiveLoans(ctx context.Context, pacsID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LoanScheme{}).
		Where("pacs_id = ? AND is_active = ?", pacsID, true).
		Count(&count).Error
	return count, err
}

func (r *repository) CountActiveDeposits(ctx context.Context, pacsID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DepositScheme{}).
		Where("pacs_id = ? AND is_active = ?", pacsID, true).
		Count(&count).Error
	return count, err
}
