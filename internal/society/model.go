package society

import (
	"time"
)

// ======================
// 🔹 PACS Core Model
// ======================

// Pacs is one Primary Agricultural Cooperative Society. The slug is the
// only public routing key and is immutable after creation.
type Pacs struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	District string `gorm:"type:varchar(100)" json:"district"`
	State    string `gorm:"type:varchar(100)" json:"state"`
	Address  string `gorm:"type:text" json:"address"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Email    string `gorm:"type:varchar(255)" json:"email"`

	History         string `gorm:"type:text" json:"history"`
	ServicesSummary string `gorm:"type:text" json:"services_summary"`
	ImpactSummary   string `gorm:"type:text" json:"impact_summary"`

	EstablishedYear *int `json:"established_year"`
	MemberCount     *int `json:"member_count"`

	CoverImageURL  *string `gorm:"type:text" json:"cover_image_url"`
	HeaderImageURL *string `gorm:"type:text" json:"header_image_url"`
	LogoURL        *string `gorm:"type:text" json:"logo_url"`

	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	MapEmbedURL *string  `gorm:"type:text" json:"map_embed_url"`

	// Public page design, 1..3. Values outside the range render as 1.
	TemplateType int `gorm:"default:1" json:"template_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pacs) TableName() string {
	return "pacs"
}

const (
	TemplateMin = 1
	TemplateMax = 3
)

// Slugs that can never belong to a society because they collide with
// top-level routes
var reservedSlugs = map[string]bool{
	"admin":       true,
	"api":         true,
	"auth":        true,
	"auth-pages":  true,
	"super-admin": true,
	"login":       true,
	"loans":       true,
	"swagger":     true,
	"uploads":     true,
	"files":       true,
	"healthz":     true,
	"public":      true,
}

// IsReservedSlug reports whether slug collides with a top-level route
func IsReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}
