package main

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/api"
	v1 "github.com/drivestack/drivestack/internal/api/v1"
	"github.com/drivestack/drivestack/internal/auth"
	"github.com/drivestack/drivestack/internal/cache"
	"github.com/drivestack/drivestack/internal/config"
	authdomain "github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/domain/contract"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/user"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/pricing"
	"github.com/drivestack/drivestack/internal/rbac"
	"github.com/drivestack/drivestack/internal/repository"
	"github.com/drivestack/drivestack/internal/service"
	"github.com/drivestack/drivestack/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	_ "github.com/drivestack/drivestack/docs/swagger"
)

// @title DriveStack API
// @version 1.0
// @description Multi-tenant car rental contract and tiered pricing API
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format *Bearer &lt;token&gt;*

func init() {
	// Run everything in UTC
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			postgres.NewDB,
			func(db *postgres.DB) postgres.IClient { return db },

			// Repositories
			repository.NewContractRepository,
			repository.NewCustomerRepository,
			repository.NewVehicleRepository,
			repository.NewEmployeeRepository,
			repository.NewTenantRepository,
			repository.NewUserRepository,
			repository.NewAuthRepository,
			repository.NewScheduleChecker,

			// Pricing and permissions
			providePricingTiers,
			provideRoleTable,
			rbac.NewEvaluator,
			auth.NewProvider,

			// Services
			provideServiceParams,
			service.NewCustomerService,
			service.NewVehicleService,
			service.NewEmployeeService,
			service.NewContractService,
			service.NewAuthService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func providePricingTiers() *pricing.TierTable {
	return pricing.DefaultTierTable()
}

func provideRoleTable(cfg *config.Configuration) (*rbac.RoleTable, error) {
	return rbac.LoadRoleTable(cfg.RBAC.RolesConfigPath)
}

func provideServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	db postgres.IClient,
	tiers *pricing.TierTable,
	authRepo authdomain.Repository,
	userRepo user.Repository,
	contractRepo contract.Repository,
	customerRepo customer.Repository,
	vehicleRepo vehicle.Repository,
	employeeRepo employee.Repository,
	tenantRepo tenant.Repository,
	scheduleChecker vehicle.ScheduleChecker,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:          log,
		Config:          cfg,
		DB:              db,
		TierTable:       tiers,
		AuthRepo:        authRepo,
		UserRepo:        userRepo,
		ContractRepo:    contractRepo,
		CustomerRepo:    customerRepo,
		VehicleRepo:     vehicleRepo,
		EmployeeRepo:    employeeRepo,
		TenantRepo:      tenantRepo,
		ScheduleChecker: scheduleChecker,
	}
}

func provideHandlers(
	log *logger.Logger,
	authService service.AuthService,
	contractService service.ContractService,
	customerService service.CustomerService,
	vehicleService service.VehicleService,
	employeeService service.EmployeeService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Auth:     v1.NewAuthHandler(authService, log),
		Contract: v1.NewContractHandler(contractService, log),
		Customer: v1.NewCustomerHandler(customerService, log),
		Vehicle:  v1.NewVehicleHandler(vehicleService, log),
		Employee: v1.NewEmployeeHandler(employeeService, log),
	}
}

func provideRouter(
	handlers api.Handlers,
	provider auth.Provider,
	evaluator *rbac.Evaluator,
	log *logger.Logger,
) *gin.Engine {
	return api.NewRouter(handlers, provider, evaluator, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return nil
		},
	})
}
