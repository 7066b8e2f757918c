package team

import "time"

// TeamMember is one entry of a society's team section. Leadership members
// are grouped first on public pages; ties in display order fall back to
// creation time.
type TeamMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PacsID       uint      `gorm:"not null;index" json:"pacs_id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Designation  string    `gorm:"type:varchar(255)" json:"designation"`
	Bio          string    `gorm:"type:text" json:"bio"`
	PhotoURL     *string   `gorm:"type:varchar(500)" json:"photo_url"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	IsLeadership bool      `gorm:"default:false" json:"is_leadership"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsVisible    bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
