package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sharath018/pacs-portal-backend/config"
	"github.com/sharath018/pacs-portal-backend/database"
	_ "github.com/sharath018/pacs-portal-backend/docs"
	"github.com/sharath018/pacs-portal-backend/internal/assignment"
	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/internal/auth"
	"github.com/sharath018/pacs-portal-backend/internal/catalog"
	"github.com/sharath018/pacs-portal-backend/internal/gallery"
	"github.com/sharath018/pacs-portal-backend/internal/publicsite"
	"github.com/sharath018/pacs-portal-backend/internal/scheme"
	"github.com/sharath018/pacs-portal-backend/internal/society"
	"github.com/sharath018/pacs-portal-backend/internal/team"
	"github.com/sharath018/pacs-portal-backend/routes"
	"github.com/sharath018/pacs-portal-backend/utils"
)

// @title PACS Portal API
// @version 1.0
// @description Multi-tenant directory and admin portal for Primary Agricultural Cooperative Societies.
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&society.Pacs{},
		&assignment.Assignment{},
		&auditlog.AuditLog{},
		&scheme.LoanScheme{},
		&scheme.DepositScheme{},
		&scheme.LoanApplicationStep{},
		&catalog.PacsService{},
		&catalog.Machinery{},
		&catalog.Fertilizer{},
		&catalog.Procurement{},
		&catalog.PDSShop{},
		&team.TeamMember{},
		&gallery.GalleryItem{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrated")

	if err := auth.SeedUserRoles(db); err != nil {
		log.Fatalf("❌ Role seeding failed: %v", err)
	}
	if err := auth.SeedSuperAdminUser(db); err != nil {
		log.Fatalf("❌ Superadmin seeding failed: %v", err)
	}

	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	utils.InitializeKafka(cfg)

	if err := os.MkdirAll(config.UploadPath, 0o755); err != nil {
		log.Fatalf("❌ Could not create upload directory: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", os.Getenv("FRONTEND_URL")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/uploads", config.UploadPath)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	publicSvc := routes.Setup(r, db, cfg)

	publicsite.StartCacheInvalidator(context.Background(), publicSvc)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
