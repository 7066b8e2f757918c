package assignment

import (
	"time"
)

// Assignment links one user to one society with a role. Holding a row is
// what grants admin access to that society; users may hold several.
type Assignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_pacs" json:"user_id"`
	PacsID    uint      `gorm:"not null;index;uniqueIndex:idx_user_pacs" json:"pacs_id"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"` // admin / manager / staff
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "pacs_users"
}

// AssignedSociety is one entry of an admin's dashboard
type AssignedSociety struct {
	PacsID   uint   `json:"pacs_id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
	Role     string `json:"role"`
}

// StaffMember is one entry of a society's staff list
type StaffMember struct {
	AssignmentID uint      `json:"assignment_id"`
	UserID       uint      `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
