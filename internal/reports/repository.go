package reports

import (
	"context"

	"gorm.io/gorm"
)

// DirectoryRow is one society line of the platform directory report
type DirectoryRow struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	District       string `json:"district"`
	State          string `json:"state"`
	MemberCount    *int   `json:"member_count"`
	LoanSchemes    int64  `json:"loan_schemes"`
	DepositSchemes int64  `json:"deposit_schemes"`
	Services       int64  `json:"services"`
	PDSShops       int64  `json:"pds_shops"`
	Staff          int64  `json:"staff"`
}

// SchemeRow is one scheme line of a society's content report
type SchemeRow struct {
	Kind         string   `json:"kind"` // loan / deposit
	Name         string   `json:"name"`
	InterestRate float64  `json:"interest_rate"`
	MinAmount    *float64 `json:"min_amount"`
	MaxAmount    *float64 `json:"max_amount"`
	IsActive     bool     `json:"is_active"`
}

type Repository interface {
	DirectoryRows(ctx context.Context) ([]DirectoryRow, error)
	SchemeRows(ctx context.Context, pacsID uint) ([]SchemeRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) DirectoryRows(ctx context.Context) ([]DirectoryRow, error) {
	var rows []DirectoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.slug, p.name, p.district, p.state, p.member_count,
		       (SELECT COUNT(*) FROM loan_schemes ls WHERE ls.pacs_id = p.id)    AS loan_schemes,
		       (SELECT COUNT(*) FROM deposit_schemes ds WHERE ds.pacs_id = p.id) AS deposit_schemes,
		       (SELECT COUNT(*) FROM pacs_services s WHERE s.pacs_id = p.id)     AS services,
		       (SELECT COUNT(*) FROM pds_shops sh WHERE sh.pacs_id = p.id)       AS pds_shops,
		       (SELECT COUNT(*) FROM pacs_users pu WHERE pu.pacs_id = p.id)      AS staff
		FROM pacs p
		ORDER BY p.name
	`).Scan(&rows).Error
	return rows, err
}

func (r *repository) SchemeRows(ctx context.Context, pacsID uint) ([]SchemeRow, error) {
	var rows []SchemeRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT 'loan' AS kind, name, interest_rate, min_amount, max_amount, is_active
		FROM loan_schemes WHERE pacs_id = ?
		UNION ALL
		SELECT 'deposit' AS kind, name, interest_rate, min_deposit AS min_amount, NULL AS max_amount, is_active
		FROM deposit_schemes WHERE pacs_id = ?
		ORDER BY kind, name
	`, pacsID, pacsID).Scan(&rows).Error
	return rows, err
}
