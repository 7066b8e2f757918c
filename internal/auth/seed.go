package auth

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultRoles = []UserRole{
	{RoleName: "super_admin", Description: "Platform administrator", CanRegister: false},
	{RoleName: "admin", Description: "Society administrator", CanRegister: true},
	{RoleName: "manager", Description: "Society manager", CanRegister: true},
	{RoleName: "staff", Description: "Society staff", CanRegister: true},
}

// SeedUserRoles inserts the role rows if they are missing
func SeedUserRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded role %s", role.RoleName)
	}
	return nil
}

// SeedSuperAdminUser creates the bootstrap super admin account once
func SeedSuperAdminUser(db *gorm.DB) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	if email == "" {
		email = "superadmin@pacsportal.in"
	}
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe@123"
	}

	var role UserRole
	if err := db.Where("role_name = ?", "super_admin").First(&role).Error; err != nil {
		return err
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		FullName:     "Super Admin",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded super admin %s", email)
	return nil
}
