package postgres_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"domainkit/pkg/entity"
	"domainkit/pkg/repository/postgres"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func runMigrations(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) (*postgres.Store, func()) {
	t.Helper()
	ctx := context.Background()

	// start container
	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	// create postgres store
	store, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	// run migrations
	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	err = runMigrations(store.DB.(*sql.DB), migrationsDir)
	require.NoError(t, err)

	return store, func() {
		_ = store.Close()
		_ = pgContainer.Container.Terminate(ctx)
	}
}

// product is a minimal catalog entity used to exercise the repository against
// the products table.
type product struct {
	entity.Base

	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
}

type productRow struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	Price    float64   `db:"price"`
	Status   string    `db:"status"`
	Tags     string    `db:"tags"`
	Featured bool      `db:"featured"`

	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

func productMapping() postgres.Mapping[product, productRow] {
	return postgres.Mapping[product, productRow]{
		Table:        "products",
		ArrayColumns: []string{"tags"},
		ToRow: func(p product) (productRow, error) {
			tags := []byte("[]")
			if p.Tags != nil {
				var err error
				if tags, err = json.Marshal(p.Tags); err != nil {
					return productRow{}, err //nolint: wrapcheck
				}
			}

			return productRow{
				ID:        uuid.UUID(p.ID),
				Name:      p.Name,
				Price:     p.Price,
				Status:    p.Status,
				Tags:      string(tags),
				Featured:  p.Featured,
				CreatedAt: p.CreatedAt,
				UpdatedAt: sql.NullTime{Time: p.UpdatedAt, Valid: !p.UpdatedAt.IsZero()},
			}, nil
		},
		FromRow: func(row productRow) (product, error) {
			var tags []string
			if row.Tags != "" {
				if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
					return product{}, err //nolint: wrapcheck
				}
			}

			return product{
				Base: entity.Base{
					ID:        entity.ID(row.ID),
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.UpdatedAt.Time,
				},
				Name:     row.Name,
				Price:    row.Price,
				Status:   row.Status,
				Tags:     tags,
				Featured: row.Featured,
			}, nil
		},
	}
}

func newProduct(name string, price float64, status string, featured bool, tags ...string) product {
	return product{
		Base:     entity.NewBase(),
		Name:     name,
		Price:    price,
		Status:   status,
		Tags:     tags,
		Featured: featured,
	}
}
