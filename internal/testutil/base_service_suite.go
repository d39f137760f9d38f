package testutil

import (
	"context"
	"time"

	"github.com/drivestack/drivestack/internal/cache"
	"github.com/drivestack/drivestack/internal/config"
	"github.com/drivestack/drivestack/internal/domain/auth"
	"github.com/drivestack/drivestack/internal/domain/contract"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/domain/employee"
	"github.com/drivestack/drivestack/internal/domain/tenant"
	"github.com/drivestack/drivestack/internal/domain/user"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/drivestack/drivestack/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	ContractRepo contract.Repository
	CustomerRepo customer.Repository
	VehicleRepo  vehicle.Repository
	EmployeeRepo employee.Repository
	TenantRepo   tenant.Repository
	UserRepo     user.Repository
	AuthRepo     auth.Repository

	// ScheduleChecker shares the contract store's data
	ScheduleChecker vehicle.ScheduleChecker
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	contractStore := NewInMemoryContractStore()
	s.stores = Stores{
		ContractRepo:    contractStore,
		CustomerRepo:    NewInMemoryCustomerStore(),
		VehicleRepo:     NewInMemoryVehicleStore(),
		EmployeeRepo:    NewInMemoryEmployeeStore(),
		TenantRepo:      NewInMemoryTenantStore(),
		UserRepo:        NewInMemoryUserStore(),
		AuthRepo:        NewInMemoryAuthStore(),
		ScheduleChecker: contractStore,
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ContractRepo.(*InMemoryContractStore).Clear()
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.VehicleRepo.(*InMemoryVehicleStore).Clear()
	s.stores.EmployeeRepo.(*InMemoryEmployeeStore).Clear()
	s.stores.TenantRepo.(*InMemoryTenantStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AuthRepo.(*InMemoryAuthStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext overrides the test context, used by isolation tests that act
// as a different tenant or role.
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the reference time for the current test
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetUUID returns a fresh id for fixtures
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
