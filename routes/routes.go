package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/config"
	"github.com/sharath018/pacs-portal-backend/internal/assignment"
	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/internal/auth"
	"github.com/sharath018/pacs-portal-backend/internal/catalog"
	"github.com/sharath018/pacs-portal-backend/internal/gallery"
	"github.com/sharath018/pacs-portal-backend/internal/publicsite"
	"github.com/sharath018/pacs-portal-backend/internal/reports"
	"github.com/sharath018/pacs-portal-backend/internal/scheme"
	"github.com/sharath018/pacs-portal-backend/internal/society"
	"github.com/sharath018/pacs-portal-backend/internal/superadmin"
	"github.com/sharath018/pacs-portal-backend/internal/team"
	"github.com/sharath018/pacs-portal-backend/internal/uploads"
	"github.com/sharath018/pacs-portal-backend/middleware"
)

// Setup wires every repository, service and handler and registers all
// routes. It returns the public site service so main can start the
// cache invalidator against it.
func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config) publicsite.Service {
	// Repositories
	authRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	societyRepo := society.NewRepository(db)
	assignmentRepo := assignment.NewRepository(db)
	schemeRepo := scheme.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	teamRepo := team.NewRepository(db)
	galleryRepo := gallery.NewRepository(db)
	reportsRepo := reports.NewRepository(db)
	superadminRepo := superadmin.NewRepository(db)

	// Services
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	societySvc := society.NewService(societyRepo, auditSvc)
	assignmentSvc := assignment.NewService(assignmentRepo, auditSvc)
	schemeSvc := scheme.NewService(schemeRepo, auditSvc)
	catalogSvc := catalog.NewService(catalogRepo, auditSvc)
	teamSvc := team.NewService(teamRepo, auditSvc)
	gallerySvc := gallery.NewService(galleryRepo, auditSvc)
	publicSvc := publicsite.NewService(societySvc, schemeSvc, catalogSvc, teamSvc, gallerySvc, publicsite.NewPageCache())
	superadminSvc := superadmin.NewService(superadminRepo, authRepo, auditSvc, cfg.DefaultResetPassword)

	// Handlers
	authHandler := auth.NewHandler(authSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	societyHandler := society.NewHandler(societySvc)
	assignmentHandler := assignment.NewHandler(assignmentSvc)
	schemeHandler := scheme.NewHandler(schemeSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	teamHandler := team.NewHandler(teamSvc)
	galleryHandler := gallery.NewHandler(gallerySvc)
	publicHandler := publicsite.NewHandler(publicSvc)
	reportsHandler := reports.NewHandler(reportsRepo)
	superadminHandler := superadmin.NewHandler(superadminSvc, societySvc, assignmentSvc)
	uploadHandler := uploads.NewHandler()

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ======================
	// 🔹 Public HTML pages
	// ======================
	r.GET("/", publicHandler.DirectoryPage)
	r.GET("/loans", publicHandler.AllLoansPage)
	r.GET("/:slug", publicHandler.SocietyPage)
	r.GET("/:slug/loans", publicHandler.SocietyLoansPage)
	r.GET("/:slug/loans/:id", publicHandler.LoanDetailPage)
	r.GET("/:slug/deposits", publicHandler.SocietyDepositsPage)
	r.GET("/:slug/pds-shops", publicHandler.SocietyPDSShopsPage)
	r.GET("/:slug/service/:id", publicHandler.ServiceDetailPage)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	// ======================
	// 🔹 Public JSON API
	// ======================
	public := api.Group("/public")
	{
		public.GET("/societies", publicHandler.DirectoryJSON)
		public.GET("/societies/:slug", publicHandler.PageJSON)
		public.GET("/societies/:slug/loans", publicHandler.LoansJSON)
		public.GET("/societies/:slug/deposits", publicHandler.DepositsJSON)
		public.GET("/societies/:slug/pds-shops", publicHandler.PDSShopsJSON)
		public.GET("/loans", publicHandler.AllLoansJSON)
	}

	// ======================
	// 🔹 Auth
	// ======================
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/roles", authHandler.GetPublicRoles)
	}

	// Everything below requires a valid token
	protected := api.Group("")
	protected.Use(middleware.AuditMiddleware(), middleware.AuthMiddleware(cfg, authSvc))

	// Dashboard: societies the caller can manage
	protected.GET("/admin/societies", assignmentHandler.ListMySocieties)

	// ======================
	// 🔹 Society admin (tenant scoped)
	// ======================
	admin := protected.Group("/admin/:slug")
	admin.Use(middleware.RequireSocietyAccess(societySvc, assignmentSvc))
	{
		admin.GET("", societyHandler.GetProfile)
		admin.PUT("", societyHandler.UpdateProfile)
		admin.PUT("/template", societyHandler.SetTemplate)

		admin.GET("/staff", assignmentHandler.ListStaff)
		admin.PUT("/staff/:id", assignmentHandler.ChangeRole)
		admin.DELETE("/staff/:id", assignmentHandler.Revoke)

		admin.POST("/loan-schemes", schemeHandler.CreateLoan)
		admin.GET("/loan-schemes", schemeHandler.ListLoans)
		admin.GET("/loan-schemes/:id", schemeHandler.GetLoan)
		admin.PUT("/loan-schemes/:id", schemeHandler.UpdateLoan)
		admin.DELETE("/loan-schemes/:id", schemeHandler.DeleteLoan)

		admin.GET("/loan-schemes/:id/steps", schemeHandler.ListSteps)
		admin.POST("/loan-schemes/:id/steps", schemeHandler.AddStep)
		admin.PUT("/loan-schemes/:id/steps/reorder", schemeHandler.ReorderSteps)
		admin.PUT("/loan-schemes/:id/steps/:stepId", schemeHandler.UpdateStep)
		admin.DELETE("/loan-schemes/:id/steps/:stepId", schemeHandler.DeleteStep)

		admin.POST("/deposit-schemes", schemeHandler.CreateDeposit)
		admin.GET("/deposit-schemes", schemeHandler.ListDeposits)
		admin.GET("/deposit-schemes/:id", schemeHandler.GetDeposit)
		admin.PUT("/deposit-schemes/:id", schemeHandler.UpdateDeposit)
		admin.DELETE("/deposit-schemes/:id", schemeHandler.DeleteDeposit)

		admin.POST("/services", catalogHandler.CreateService)
		admin.GET("/services", catalogHandler.ListServices)
		admin.PUT("/services/:id", catalogHandler.UpdateService)
		admin.DELETE("/services/:id", catalogHandler.DeleteService)

		admin.POST("/machinery", catalogHandler.CreateMachinery)
		admin.GET("/machinery", catalogHandler.ListMachinery)
		admin.PUT("/machinery/:id", catalogHandler.UpdateMachinery)
		admin.DELETE("/machinery/:id", catalogHandler.DeleteMachinery)

		admin.POST("/fertilizers", catalogHandler.CreateFertilizer)
		admin.GET("/fertilizers", catalogHandler.ListFertilizers)
		admin.PUT("/fertilizers/:id", catalogHandler.UpdateFertilizer)
		admin.DELETE("/fertilizers/:id", catalogHandler.DeleteFertilizer)

		admin.POST("/procurements", catalogHandler.CreateProcurement)
		admin.GET("/procurements", catalogHandler.ListProcurements)
		admin.PUT("/procurements/:id", catalogHandler.UpdateProcurement)
		admin.DELETE("/procurements/:id", catalogHandler.DeleteProcurement)

		admin.POST("/pds-shops", catalogHandler.CreatePDSShop)
		admin.GET("/pds-shops", catalogHandler.ListPDSShops)
		admin.PUT("/pds-shops/:id", catalogHandler.UpdatePDSShop)
		admin.DELETE("/pds-shops/:id", catalogHandler.DeletePDSShop)

		admin.POST("/team", teamHandler.Create)
		admin.GET("/team", teamHandler.List)
		admin.PUT("/team/:id", teamHandler.Update)
		admin.DELETE("/team/:id", teamHandler.Delete)

		admin.POST("/gallery", galleryHandler.Create)
		admin.GET("/gallery", galleryHandler.List)
		admin.PUT("/gallery/:id", galleryHandler.Update)
		admin.DELETE("/gallery/:id", galleryHandler.Delete)

		admin.POST("/uploads", uploadHandler.Upload)
		admin.GET("/reports/schemes", reportsHandler.SchemeReport)
	}

	// ======================
	// 🔹 Superadmin console
	// ======================
	super := protected.Group("/superadmin")
	super.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin))
	{
		super.POST("/societies", superadminHandler.CreateSociety)
		super.GET("/societies", superadminHandler.ListSocieties)
		super.GET("/societies/:id", superadminHandler.GetSociety)
		super.DELETE("/societies/:id", superadminHandler.DeleteSociety)

		super.GET("/users", superadminHandler.ListUsers)
		super.GET("/users/:id", superadminHandler.GetUser)
		super.PUT("/users/:id/status", superadminHandler.SetUserStatus)
		super.POST("/users/:id/reset-password", superadminHandler.ResetUserPassword)
		super.POST("/users/bulk-reset-passwords", superadminHandler.BulkResetPasswords)

		super.POST("/assignments", superadminHandler.CreateAssignment)
		super.DELETE("/assignments/:id", superadminHandler.DeleteAssignment)

		super.GET("/auditlogs", auditHandler.GetAuditLogs)
		super.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)

		super.GET("/reports/societies", reportsHandler.DirectoryReport)
		super.GET("/stats", superadminHandler.Stats)
	}

	return publicSvc
}
