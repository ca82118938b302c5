package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"store-catalog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "store.db")}
}

func (c *cli) run(args ...string) (int, string, string) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--driver", "sqlite", "--sqlite-path", c.dbPath, "--json"}, args...)
	code := run(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func runJSON[T any](c *cli, args ...string) T {
	c.t.Helper()
	code, out, errOut := c.run(args...)
	require.Equal(c.t, exitSuccess, code, errOut)

	var v T
	require.NoError(c.t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestMigrate(t *testing.T) {
	c := newCLI(t)

	code, out, _ := c.run("migrate")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "schema up to date")

	code, _, _ = c.run("migrate")
	assert.Equal(t, exitSuccess, code)
}

func TestCatalogRoundTrip(t *testing.T) {
	c := newCLI(t)

	customer := runJSON[models.Customer](c, "customer", "create", "--name", "Ada", "--email", "ada@example.com")
	product := runJSON[models.Product](c, "product", "create", "--name", "Widget", "--price", "9.99", "--stock", "5")

	order := runJSON[models.Order](c, "order", "create",
		"--customer", customer.ID, "--product", product.ID, "--quantity", "3")
	assert.True(t, decimal.RequireFromString("29.97").Equal(order.TotalAmount))

	orders := runJSON[[]models.Order](c, "order", "list", "--customer", customer.ID)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	deleted := runJSON[map[string]interface{}](c, "customer", "delete", customer.ID)
	assert.Equal(t, customer.ID, deleted["deleted"])
	assert.EqualValues(t, 1, deleted["cascaded_orders"])

	assert.Empty(t, runJSON[[]models.Order](c, "order", "list"))
	assert.Len(t, runJSON[[]models.Product](c, "product", "list"), 1)
}

func TestUpdateOnlyChangesGivenFlags(t *testing.T) {
	c := newCLI(t)

	customer := runJSON[models.Customer](c, "customer", "create", "--name", "Grace", "--phone", "555")
	updated := runJSON[models.Customer](c, "customer", "update", customer.ID, "--address", "1 Main St")

	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, "1 Main St", updated.Address)

	// an explicitly empty value is still a change
	updated = runJSON[models.Customer](c, "customer", "update", customer.ID, "--phone", "")
	assert.Equal(t, "", updated.Phone)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestExitCodes(t *testing.T) {
	c := newCLI(t)
	product := runJSON[models.Product](c, "product", "create", "--name", "Pen", "--price", "1.00")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"empty name", []string{"customer", "create", "--name", " "}, exitUserError},
		{"bad price", []string{"product", "create", "--name", "x", "--price", "cheap"}, exitUserError},
		{"missing customer", []string{"order", "create", "--customer", "nobody", "--product", product.ID, "--quantity", "1"}, exitUserError},
		{"zero quantity", []string{"order", "create", "--customer", "nobody", "--product", product.ID}, exitUserError},
		{"unknown id", []string{"product", "get", "nobody"}, exitUserError},
		{"conflicting filters", []string{"order", "list", "--customer", "a", "--product", "b"}, exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := c.run(tt.args...)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestUnreachableDatabaseIsSystemError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "store.db")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--driver", "sqlite", "--sqlite-path", missing, "customer", "list"}, &stdout, &stderr)
	assert.Equal(t, exitSysError, code)
}

func TestSettingsFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("STORECTL_DRIVER", "sqlite")
	t.Setenv("STORECTL_SQLITE_PATH", path)

	var stdout, stderr bytes.Buffer
	code := run([]string{"migrate"}, &stdout, &stderr)
	require.Equal(t, exitSuccess, code, stderr.String())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestTableOutput(t *testing.T) {
	c := newCLI(t)
	runJSON[models.Product](c, "product", "create", "--name", "Lamp", "--price", "12.5")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--driver", "sqlite", "--sqlite-path", c.dbPath, "product", "list"}, &stdout, &stderr)
	require.Equal(t, exitSuccess, code, stderr.String())
	assert.Contains(t, stdout.String(), "PRICE")
	assert.Contains(t, stdout.String(), "12.50")
}
