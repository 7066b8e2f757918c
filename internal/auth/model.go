package auth

import (
	"time"
)

// ======================
// 🔹 User & Role Models
// ======================

type UserRole struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoleName    string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CanRegister bool      `gorm:"default:false" json:"can_register"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       uint      `gorm:"not null" json:"role_id"`
	Role         UserRole  `gorm:"foreignKey:RoleID" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}
