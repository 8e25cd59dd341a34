package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"grapevine/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver   neo4j.DriverWithContext
	sessions SessionFactory
	logger   *zap.Logger
	timeout  time.Duration
}

// NewRepository creates a new graph repository. timeout bounds every
// repository operation; zero disables the bound.
func NewRepository(driver neo4j.DriverWithContext, timeout time.Duration) *Repository {
	return &Repository{
		driver:   driver,
		sessions: driverSessions{driver: driver},
		logger:   logger.Get(),
		timeout:  timeout,
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureSchema installs the uniqueness constraint backing registration.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.sessions.Session(ctx, neo4j.AccessModeWrite)
	_, err := Collect(ctx, session,
		`CREATE CONSTRAINT user_email_unique IF NOT EXISTS
		 FOR (u:User) REQUIRE u.email IS UNIQUE`, nil)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	r.logger.Info("Graph schema ensured")
	return nil
}

// opContext applies the configured per-operation timeout.
func (r *Repository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
