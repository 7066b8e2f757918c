package catalog

import "time"

// ======================
// 🔹 Society Content Catalog
// ======================

// PacsService is one card on the society page's services section
type PacsService struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PacsID      uint      `gorm:"not null;index" json:"pacs_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IconName    string    `gorm:"type:varchar(100)" json:"icon_name"`
	IsVisible   bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PacsService) TableName() string {
	return "pacs_services"
}

// knownIcons is the closed set the templates can render. Anything else
// falls back to the generic symbol so a typo never breaks a page.
var knownIcons = map[string]bool{
	"credit":      true,
	"seeds":       true,
	"fertilizer":  true,
	"storage":     true,
	"machinery":   true,
	"insurance":   true,
	"marketing":   true,
	"training":    true,
	"pds":         true,
	"procurement": true,
	"generic":     true,
}

const defaultIcon = "generic"

// ResolveIcon maps a stored icon name to one the templates know
func ResolveIcon(name string) string {
	if knownIcons[name] {
		return name
	}
	return defaultIcon
}

type Machinery struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PacsID      uint      `gorm:"not null;index" json:"pacs_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	RatePerDay  *float64  `json:"rate_per_day"`
	RateUnit    string    `gorm:"type:varchar(50)" json:"rate_unit"` // per day / per hour / per acre
	ImageURL    *string   `gorm:"type:varchar(500)" json:"image_url"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	IsVisible   bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Machinery) TableName() string {
	return "machinery"
}

type Fertilizer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PacsID      uint      `gorm:"not null;index" json:"pacs_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       *float64  `json:"price"`
	Unit        string    `gorm:"type:varchar(50)" json:"unit"` // per bag / per kg
	InStock     bool      `gorm:"default:true" json:"in_stock"`
	IsVisible   bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Fertilizer) TableName() string {
	return "fertilizers"
}

type Procurement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PacsID    uint      `gorm:"not null;index" json:"pacs_id"`
	CropName  string    `gorm:"type:varchar(255);not null" json:"crop_name"`
	Season    string    `gorm:"type:varchar(100)" json:"season"`
	Rate      *float64  `json:"rate"`
	Unit      string    `gorm:"type:varchar(50)" json:"unit"` // per quintal
	Notes     string    `gorm:"type:text" json:"notes"`
	IsVisible bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Procurement) TableName() string {
	return "procurements"
}

type PDSShop struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PacsID       uint      `gorm:"not null;index" json:"pacs_id"`
	ShopNumber   string    `gorm:"type:varchar(100)" json:"shop_number"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Address      string    `gorm:"type:text" json:"address"`
	ContactName  string    `gorm:"type:varchar(255)" json:"contact_name"`
	ContactPhone string    `gorm:"type:varchar(50)" json:"contact_phone"`
	Timings      string    `gorm:"type:varchar(255)" json:"timings"`
	IsVisible    bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PDSShop) TableName() string {
	return "pds_shops"
}
