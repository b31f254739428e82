// Package pgtest starts a throwaway postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the postgres image the history schema is tested against
const Image = "postgres:16-alpine"

// Start runs a postgres container for the life of t and returns its DSN
// the first run may pull the image, hence the long deadline
func Start(t testing.TB) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "chimera",
				"POSTGRES_PASSWORD": "chimera",
				"POSTGRES_DB":       "chimera",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("pgtest: start container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("pgtest: host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pgtest: mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://chimera:chimera@%s:%s/chimera?sslmode=disable", host, port.Port())
}
