package testutil

import (
	"context"

	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient satisfies postgres.IClient for service tests that run
// against in-memory repositories. WithTx executes the function directly so
// transactional code paths run unchanged.
type MockPostgresClient struct {
	logger *logger.Logger
}

func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{logger: logger}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Querier is never reached in tests backed by in-memory repositories
func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}
