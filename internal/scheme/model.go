package scheme

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ======================
// 🔹 Loan & Deposit Schemes
// ======================

type LoanScheme struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	PacsID       uint    `gorm:"not null;index" json:"pacs_id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	InterestRate float64 `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`

	MinAmount    *float64 `json:"min_amount"`
	MaxAmount    *float64 `json:"max_amount"`
	TenureMonths *int     `json:"tenure_months"`

	// Newline-edited lists, stored as JSON arrays
	Eligibility datatypes.JSON `gorm:"type:jsonb" json:"eligibility"`
	Benefits    datatypes.JSON `gorm:"type:jsonb" json:"benefits"`
	Documents   datatypes.JSON `gorm:"type:jsonb" json:"documents"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LoanScheme) TableName() string {
	return "loan_schemes"
}

type DepositScheme struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	PacsID       uint    `gorm:"not null;index" json:"pacs_id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	InterestRate float64 `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`

	MinDeposit   *float64 `json:"min_deposit"`
	TenureMonths *int     `json:"tenure_months"`

	Benefits datatypes.JSON `gorm:"type:jsonb" json:"benefits"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DepositScheme) TableName() string {
	return "deposit_schemes"
}

// LoanApplicationStep is one ordered step of a loan scheme's application
// process. StepNumber is a plain display position, rewritten 1..N on
// every reorder.
type LoanApplicationStep struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LoanSchemeID uint      `gorm:"not null;index" json:"loan_scheme_id"`
	StepNumber   int       `gorm:"not null" json:"step_number"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LoanApplicationStep) TableName() string {
	return "loan_application_steps"
}

// LoanListing is one row of the cross-society loan directory
type LoanListing struct {
	LoanScheme
	PacsName string `json:"pacs_name"`
	PacsSlug string `json:"pacs_slug"`
}

// ======================
// 🔹 Multi-value helpers
// ======================

// SplitLines turns newline-delimited form input into an ordered list,
// dropping blank lines
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// JoinLines is the inverse of SplitLines for redisplay in edit forms
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// LinesToJSON stores newline-delimited input as a JSON array
func LinesToJSON(s string) datatypes.JSON {
	items := SplitLines(s)
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

// JSONToLines renders a stored JSON array back to newline-delimited text
func JSONToLines(j datatypes.JSON) string {
	var items []string
	if err := json.Unmarshal(j, &items); err != nil {
		return ""
	}
	return JoinLines(items)
}
