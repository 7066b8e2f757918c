package gallery

import "time"

// GalleryItem is one photo of a society's gallery section
type GalleryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PacsID    uint      `gorm:"not null;index" json:"pacs_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Caption   string    `gorm:"type:varchar(500)" json:"caption"`
	IsVisible bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
