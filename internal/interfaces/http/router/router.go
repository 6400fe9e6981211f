package router

import (
	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/infrastructure/auth"
	"github.com/fleetcore/backend/internal/infrastructure/config"
	"github.com/fleetcore/backend/internal/infrastructure/logger"
	"github.com/fleetcore/backend/internal/interfaces/http/handler"
	"github.com/fleetcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles all route handlers for registration
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Company   *handler.CompanyHandler
	User      *handler.UserHandler
	Admin     *handler.AdminHandler
	Audit     *handler.AuditHandler
	Vehicle   *handler.VehicleHandler
	Equipment *handler.EquipmentHandler
	WorkOrder *handler.WorkOrderHandler
	Inventory *handler.InventoryHandler
}

// Dependencies carries the cross-cutting services the router wires into
// middleware.
type Dependencies struct {
	Config      *config.Config
	JWTService  *auth.JWTService
	Blacklist   auth.TokenBlacklist
	Permissions *appidentity.PermissionService
	Logger      *zap.Logger
}

// New builds the gin engine with the full middleware chain and route table
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(deps.Config.HTTP.CORSAllowOrigins))
	engine.Use(middleware.Tracing(deps.Config.App.Name, deps.Config.Telemetry.Enabled))
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.Blacklist,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/login",
		},
		Logger: deps.Logger,
	}))

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
	}

	companies := api.Group("/companies")
	{
		companies.POST("", h.Company.Create)
		companies.GET("", h.Company.List)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
	}

	users := api.Group("/users")
	{
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/promote", h.Admin.PromoteToAdmin)
		admin.POST("/provision", h.Admin.Provision)
	}

	audit := api.Group("/audit")
	{
		audit.GET("/users/:id", h.Audit.ListByUser)
		audit.GET("/companies/:id", h.Audit.ListByCompany)
	}

	perm := func(resource identity.Resource, action identity.Action) gin.HandlerFunc {
		return middleware.RequirePermission(deps.Permissions, resource, action, deps.Logger)
	}

	vehicles := api.Group("/vehicles")
	{
		vehicles.POST("", perm(identity.ResourceVehicles, identity.ActionCreate), h.Vehicle.Create)
		vehicles.GET("", perm(identity.ResourceVehicles, identity.ActionView), h.Vehicle.List)
		vehicles.GET("/:id", perm(identity.ResourceVehicles, identity.ActionView), h.Vehicle.Get)
		vehicles.PUT("/:id", perm(identity.ResourceVehicles, identity.ActionEdit), h.Vehicle.Update)
		vehicles.DELETE("/:id", perm(identity.ResourceVehicles, identity.ActionDelete), h.Vehicle.Delete)
	}

	equipment := api.Group("/equipment")
	{
		equipment.POST("", perm(identity.ResourceEquipment, identity.ActionCreate), h.Equipment.Create)
		equipment.GET("", perm(identity.ResourceEquipment, identity.ActionView), h.Equipment.List)
		equipment.GET("/:id", perm(identity.ResourceEquipment, identity.ActionView), h.Equipment.Get)
		equipment.PUT("/:id", perm(identity.ResourceEquipment, identity.ActionEdit), h.Equipment.Update)
		equipment.DELETE("/:id", perm(identity.ResourceEquipment, identity.ActionDelete), h.Equipment.Delete)
	}

	api.GET("/taxonomy/:kind", h.Equipment.ListTaxonomy)

	workOrders := api.Group("/work-orders")
	{
		workOrders.POST("", perm(identity.ResourceWorkOrders, identity.ActionCreate), h.WorkOrder.Create)
		workOrders.GET("", perm(identity.ResourceWorkOrders, identity.ActionView), h.WorkOrder.List)
		workOrders.GET("/:id", perm(identity.ResourceWorkOrders, identity.ActionView), h.WorkOrder.Get)
		workOrders.PUT("/:id", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.Update)
		workOrders.DELETE("/:id", perm(identity.ResourceWorkOrders, identity.ActionDelete), h.WorkOrder.Delete)

		workOrders.POST("/:id/parts", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.AddPart)
		workOrders.GET("/:id/parts", perm(identity.ResourceWorkOrders, identity.ActionView), h.WorkOrder.ListParts)
		workOrders.PUT("/:id/parts/:lineId", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.UpdatePart)
		workOrders.DELETE("/:id/parts/:lineId", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.RemovePart)

		workOrders.POST("/:id/labor", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.StartLabor)
		workOrders.GET("/:id/labor", perm(identity.ResourceWorkOrders, identity.ActionView), h.WorkOrder.ListLabor)
		workOrders.POST("/:id/labor/:lineId/close", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.CloseLabor)
		workOrders.POST("/:id/labor/:lineId/reopen", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.ReopenLabor)
		workOrders.DELETE("/:id/labor/:lineId", perm(identity.ResourceWorkOrders, identity.ActionEdit), h.WorkOrder.RemoveLabor)
	}

	// Inventory authorization lives in the service, which checks the
	// parts_inventory grant per operation.
	inventoryParts := api.Group("/inventory/parts")
	{
		inventoryParts.POST("", h.Inventory.Create)
		inventoryParts.GET("", h.Inventory.List)
		inventoryParts.GET("/low-stock", h.Inventory.ListLowStock)
		inventoryParts.GET("/:id", h.Inventory.Get)
		inventoryParts.PUT("/:id", h.Inventory.Update)
		inventoryParts.POST("/:id/restock", h.Inventory.Restock)
		inventoryParts.DELETE("/:id", h.Inventory.Delete)
	}

	return engine
}
