package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ecomkit/shop/internal/db"
)

const (
	dbUser     = "shop_user"
	dbPassword = "shop_pass"
	dbName     = "shop"
)

// StartPostgres launches a temporary Postgres container, applies the
// migrations for the given schema dir, and returns the DSN plus a cleanup
// function. The cleanup function is also registered with t.Cleanup.
func StartPostgres(ctx context.Context, t *testing.T, migrationsDir string) (string, func()) {
	t.Helper()

	containerName := "shop-int-" + uuid.NewString()
	runArgs := []string{
		"run", "--rm", "-d",
		"-e", fmt.Sprintf("POSTGRES_USER=%s", dbUser),
		"-e", fmt.Sprintf("POSTGRES_PASSWORD=%s", dbPassword),
		"-e", fmt.Sprintf("POSTGRES_DB=%s", dbName),
		"-P",
		"--name", containerName,
		"postgres:16-alpine",
	}

	if err := exec.CommandContext(ctx, "docker", runArgs...).Run(); err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	cleanup := func() {
		_ = exec.Command("docker", "stop", containerName).Run()
	}
	t.Cleanup(cleanup)

	hostPort := waitForPort(ctx, t, containerName)
	dsn := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", dbUser, dbPassword, hostPort, dbName)

	waitAndMigrate(ctx, t, dsn, migrationsDir)

	return dsn, cleanup
}

func waitForPort(ctx context.Context, t *testing.T, containerName string) string {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for postgres port")
		}

		out, err := exec.CommandContext(ctx, "docker", "port", containerName, "5432/tcp").Output()
		if err == nil {
			parts := strings.Split(strings.TrimSpace(string(out)), ":")
			if len(parts) == 2 {
				return parts[1]
			}
		}

		select {
		case <-ctx.Done():
			t.Fatalf("context cancelled waiting for postgres port: %v", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func waitAndMigrate(ctx context.Context, t *testing.T, dsn, migrationsDir string) {
	t.Helper()

	logger := log.New(io.Discard, "", 0)

	deadline := time.Now().Add(30 * time.Second)
	for {
		conn, err := sql.Open("postgres", dsn)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err = conn.PingContext(pingCtx)
			cancel()
			_ = conn.Close()
			if err == nil {
				if err = db.RunMigrations(dsn, migrationsDir, logger); err == nil {
					return
				}
			}
		}

		if time.Now().After(deadline) {
			t.Fatalf("timeout connecting to postgres: %v", err)
		}

		select {
		case <-ctx.Done():
			t.Fatalf("context cancelled connecting to postgres: %v", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
}
