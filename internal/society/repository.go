package society

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, pacs *Pacs) error
	GetByID(ctx context.Context, id uint) (*Pacs, error)
	GetBySlug(ctx context.Context, slug string) (*Pacs, error)
	List(ctx context.Context) ([]Pacs, error)
	Update(ctx context.Context, pacs *Pacs) error
	UpdateTemplateType(ctx context.Context, id uint, templateType int) error
	DeleteCascade(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, pacs *Pacs) error {
	return r.db.WithContext(ctx).Create(pacs).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Pacs, error) {
	var pacs Pacs
	err := r.db.WithContext(ctx).First(&pacs, id).Error
	return &pacs, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Pacs, error) {
	var pacs Pacs
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&pacs).Error
	return &pacs, err
}

func (r *repository) List(ctx context.Context) ([]Pacs, error) {
	var societies []Pacs
	err := r.db.WithContext(ctx).Order("name").Find(&societies).Error
	return societies, err
}

func (r *repository) Update(ctx context.Context, pacs *Pacs) error {
	return r.db.WithContext(ctx).Save(pacs).Error
}

func (r *repository) UpdateTemplateType(ctx context.Context, id uint, templateType int) error {
	return r.db.WithContext(ctx).
		Model(&Pacs{}).
		Where("id = ?", id).
		Update("template_type", templateType).Error
}

// DeleteCascade removes the society and every child row in one transaction.
// The store schema is not relied on for referential cleanup.
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		childTables := []string{
			"pacs_services",
			"machinery",
			"fertilizers",
			"procurements",
			"pds_shops",
			"gallery_items",
			"team_members",
			"pacs_users",
		}
		for _, table := range childTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE pacs_id = ?", id).Error; err != nil {
				return err
			}
		}

		// Application steps hang off loan schemes, not the society directly
		if err := tx.Exec(`
			DELETE FROM loan_application_steps
			WHERE loan_scheme_id IN (SELECT id FROM loan_schemes WHERE pacs_id = ?)
		`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM loan_schemes WHERE pacs_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM deposit_schemes WHERE pacs_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&Pacs{}, id).Error
	})
}
