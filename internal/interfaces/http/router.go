package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Polizas-api/internal/application/auth"
	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CompanyUC  *usecase.CompanyUseCase
	PolicyUC   *usecase.PolicyUseCase
	ContactUC  *usecase.ContactUseCase
	ExpiryScan *notify.ExpiryScanUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staff := []string{entity.RoleSubAdmin, entity.RoleAdmin, entity.RoleSuperUser}
	admins := []string{entity.RoleAdmin, entity.RoleSuperUser}

	// Auth. El registro acepta token opcional: con privilegios se pueden
	// asignar roles, sin token siempre queda como "user".
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuthMiddleware(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Get("/reset-password/:token", authHandler.ValidateResetToken)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Contacto (público, con identidad opcional)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", OptionalAuthMiddleware(deps.JWTSecret), contactHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users.Get("/", RequireRole(staff...), userHandler.List)
	users.Get("/search", RequireRole(staff...), userHandler.Search)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/toggle-status", RequireRole(admins...), userHandler.ToggleStatus)
	users.Put("/:id/roles", RequireRole(entity.RoleSuperUser), userHandler.UpdateRoles)
	users.Delete("/:id", RequireRole(entity.RoleSuperUser), userHandler.Delete)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", RequireRole(admins...), companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", RequireRole(entity.RoleSuperUser), companyHandler.Create)
	companies.Put("/:id", RequireRole(entity.RoleSuperUser), companyHandler.Update)
	companies.Patch("/:id/toggle-status", RequireRole(entity.RoleSuperUser), companyHandler.ToggleStatus)

	// Policies
	policies := protected.Group("/policies")
	policyHandler := NewPolicyHandler(deps.PolicyUC, deps.ExpiryScan)
	policies.Post("/", RequireRole(staff...), policyHandler.Create)
	policies.Get("/", policyHandler.List)
	policies.Post("/expiry-scan", RequireRole(admins...), policyHandler.RunExpiryScan)
	policies.Get("/user/:userId", policyHandler.ListByOwner)
	policies.Get("/:id", policyHandler.GetByID)
	policies.Get("/:id/pdf", policyHandler.GeneratePDF)
	policies.Put("/:id", RequireRole(staff...), policyHandler.Update)
	policies.Delete("/:id", RequireRole(staff...), policyHandler.Delete)

	// Bandeja de contacto (solo administración)
	contact := protected.Group("/contact")
	contact.Get("/", RequireRole(admins...), contactHandler.List)
	contact.Get("/user/:userId", contactHandler.ListByUser)
	contact.Get("/:id", RequireRole(admins...), contactHandler.GetByID)
	contact.Patch("/:id/read", RequireRole(admins...), contactHandler.MarkRead)
	contact.Post("/:id/respond", RequireRole(admins...), contactHandler.Respond)
	contact.Delete("/:id", RequireRole(admins...), contactHandler.Delete)
}
