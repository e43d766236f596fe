package testutil

import (
	"context"
	"fmt"
	"os"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// postgresImage is the image started when no external test database is configured.
const postgresImage = "postgres:16-alpine"

// ResolveDSN returns the DSN integration tests should use, plus a cleanup
// function the caller must run once the tests have finished.
//
// TEST_DATABASE_URL wins when set. Otherwise, if GO_TEST_INTEGRATION is set,
// a throw-away Postgres container is started and TEST_DATABASE_URL is exported
// so helpers like NewPool pick it up. With neither set, ResolveDSN returns ""
// and integration tests skip themselves.
func ResolveDSN(ctx context.Context) (string, func(), error) {
	noop := func() {}

	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return dsn, noop, nil
	}
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		return "", noop, nil
	}

	req := tc.ContainerRequest{
		Image: postgresImage,
		Env: map[string]string{
			"POSTGRES_USER":     "pessoas",
			"POSTGRES_PASSWORD": "pessoas",
			"POSTGRES_DB":       "pessoas",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return "", noop, fmt.Errorf("testutil.ResolveDSN: start container: %w", err)
	}
	terminate := func() { _ = c.Terminate(context.Background()) }

	host, err := c.Host(ctx)
	if err != nil {
		terminate()
		return "", noop, fmt.Errorf("testutil.ResolveDSN: host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return "", noop, fmt.Errorf("testutil.ResolveDSN: port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://pessoas:pessoas@%s:%s/pessoas?sslmode=disable", host, port.Port())
	if err := os.Setenv("TEST_DATABASE_URL", dsn); err != nil {
		terminate()
		return "", noop, fmt.Errorf("testutil.ResolveDSN: export dsn: %w", err)
	}
	return dsn, terminate, nil
}
