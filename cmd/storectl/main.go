// Command storectl manages customers, products and orders directly
// against the catalog database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"store-catalog/config"
	"store-catalog/internal/service"
	"store-catalog/internal/store"
	"store-catalog/internal/util"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

const (
	cfgKeyConfig      = "config"
	cfgKeyDriver      = "driver"
	cfgKeyDatabaseURL = "database-url"
	cfgKeySQLitePath  = "sqlite-path"
	cfgKeyJSON        = "json"
	cfgKeyLogLevel    = "log-level"
)

// v holds the merged flag, env and config file settings of the current run
var v *viper.Viper

func newRootCmd() *cobra.Command {
	v = viper.New()

	rootCmd := &cobra.Command{
		Use:           "storectl",
		Short:         "storectl manages the store catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigFile()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(cfgKeyConfig, "", "config file (yaml, json or toml)")
	flags.String(cfgKeyDriver, "", "database driver: postgres or sqlite")
	flags.String(cfgKeyDatabaseURL, "", "postgres connection URL")
	flags.String(cfgKeySQLitePath, "", "sqlite database file")
	flags.Bool(cfgKeyJSON, false, "output as JSON")
	flags.String(cfgKeyLogLevel, "warn", "log level")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("STORECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCustomerCmd())
	rootCmd.AddCommand(newProductCmd())
	rootCmd.AddCommand(newOrderCmd())
	return rootCmd
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps caller mistakes to 1 and everything else to 2
func exitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation),
		errors.Is(err, store.ErrReference),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}

var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// loadConfigFile reads --config when given. A missing file is an error
// only when it was named explicitly.
func loadConfigFile() error {
	path := v.GetString(cfgKeyConfig)
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// databaseConfig layers flags, STORECTL_* env and the config file over
// the service's own environment configuration.
func databaseConfig() config.DatabaseConfig {
	db := config.Load().Database

	if driver := v.GetString(cfgKeyDriver); driver != "" {
		db.Driver = driver
	}
	if url := v.GetString(cfgKeyDatabaseURL); url != "" {
		db.URL = url
		if v.GetString(cfgKeyDriver) == "" {
			db.Driver = config.DriverPostgres
		}
	}
	if path := v.GetString(cfgKeySQLitePath); path != "" {
		db.SQLitePath = path
		if v.GetString(cfgKeyDriver) == "" && v.GetString(cfgKeyDatabaseURL) == "" {
			db.Driver = config.DriverSQLite
		}
	}
	db.Driver = db.ResolveDriver()
	return db
}

// openCatalog connects to the database and returns a catalog service.
// The returned func releases the connection.
func openCatalog(ctx context.Context) (*service.CatalogService, func(), error) {
	if err := util.InitLogger("development", v.GetString(cfgKeyLogLevel)); err != nil {
		return nil, nil, err
	}

	st, err := store.NewStore(databaseConfig())
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}

	cleanup := func() {
		st.Close()
		util.SyncLogger()
	}
	return service.NewCatalogService(st, nil, nil, 0), cleanup, nil
}

// withCatalog runs fn against a freshly opened catalog
func withCatalog(cmd *cobra.Command, fn func(ctx context.Context, catalog *service.CatalogService) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	catalog, cleanup, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, catalog)
}

// printResult writes v as JSON when --json is set, otherwise as a table
func printResult(w io.Writer, value interface{}, header []string, rows [][]string) error {
	if v.GetBool(cfgKeyJSON) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
