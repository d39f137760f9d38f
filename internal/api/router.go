package api

import (
	v1 "github.com/drivestack/drivestack/internal/api/v1"
	"github.com/drivestack/drivestack/internal/auth"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/rbac"
	"github.com/drivestack/drivestack/internal/rest/middleware"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Contract *v1.ContractHandler
	Customer *v1.CustomerHandler
	Vehicle  *v1.VehicleHandler
	Employee *v1.EmployeeHandler
}

func NewRouter(
	handlers Handlers,
	provider auth.Provider,
	evaluator *rbac.Evaluator,
	log *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/v1")
	{
		public.POST("/auth/signup", handlers.Auth.SignUp)
		public.POST("/auth/login", handlers.Auth.Login)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(provider, log))
	registerV1Routes(private, handlers, evaluator)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, evaluator *rbac.Evaluator) {
	perm := func(permission string) gin.HandlerFunc {
		return middleware.RequirePermission(evaluator, permission)
	}

	contracts := router.Group("/contracts")
	{
		contracts.POST("", perm(types.PermissionCreateContracts), handlers.Contract.CreateContract)
		contracts.GET("", perm(types.PermissionViewContracts), handlers.Contract.ListContracts)
		contracts.GET("/:id", perm(types.PermissionViewContracts), handlers.Contract.GetContract)
		contracts.POST("/:id/complete", perm(types.PermissionCompleteContracts), handlers.Contract.CompleteContract)
		contracts.POST("/:id/extend", perm(types.PermissionUpdateContracts), handlers.Contract.ExtendContract)
		contracts.POST("/:id/cancel", perm(types.PermissionCancelContracts), handlers.Contract.CancelContract)
		contracts.POST("/:id/overage-estimate", perm(types.PermissionViewContracts), handlers.Contract.EstimateOverage)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", perm(types.PermissionManageCustomers), handlers.Customer.CreateCustomer)
		customers.GET("", perm(types.PermissionViewCustomers), handlers.Customer.ListCustomers)
		customers.GET("/:id", perm(types.PermissionViewCustomers), handlers.Customer.GetCustomer)
		customers.PUT("/:id", perm(types.PermissionManageCustomers), handlers.Customer.UpdateCustomer)
		customers.GET("/:id/tier-info", perm(types.PermissionViewCustomers), handlers.Customer.GetTierInfo)
	}

	vehicles := router.Group("/vehicles")
	{
		vehicles.POST("", perm(types.PermissionManageVehicles), handlers.Vehicle.CreateVehicle)
		vehicles.GET("", perm(types.PermissionViewVehicles), handlers.Vehicle.ListVehicles)
		vehicles.GET("/:id", perm(types.PermissionViewVehicles), handlers.Vehicle.GetVehicle)
		vehicles.PUT("/:id", perm(types.PermissionManageVehicles), handlers.Vehicle.UpdateVehicle)
	}

	employees := router.Group("/employees")
	{
		employees.POST("", perm(types.PermissionManageEmployees), handlers.Employee.CreateEmployee)
		employees.GET("", perm(types.PermissionViewEmployees), handlers.Employee.ListEmployees)
		employees.GET("/:id", perm(types.PermissionViewEmployees), handlers.Employee.GetEmployee)
		employees.PUT("/:id", perm(types.PermissionManageEmployees), handlers.Employee.UpdateEmployee)
	}
}
