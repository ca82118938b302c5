package store

import (
	"context"
	"sync"
	"time"

	"store-catalog/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store persists customers, products and orders. Every exported
// operation runs in its own transaction.
type Store struct {
	db     *sqlx.DB
	driver string
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the clock used to stamp created/updated dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore connects to the configured database. Failures to open or
// ping are reported as *ConnectionError.
func NewStore(cfg config.DatabaseConfig, opts ...Option) (*Store, error) {
	driver := cfg.ResolveDriver()
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Op: "open database", Err: err}
	}

	if driver == config.DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Op: "ping database", Err: err}
	}

	s := &Store{db: db, driver: driver, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the name of the database driver in use
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &ConnectionError{Op: "ping database", Err: err}
	}
	return nil
}

// withTx runs fn in a transaction that is committed when fn returns nil
// and rolled back otherwise.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &ConnectionError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeError("commit transaction", err)
	}
	return nil
}

// rebind converts a query written with ? placeholders to the driver's syntax
func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

// stamp returns the current time, bumped past prev and past the last
// stamp issued, so last_update_date strictly increases for a row and
// created_date orders rows created by this store.
func (s *Store) stamp(prev time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor := prev.UTC()
	if s.last.After(floor) {
		floor = s.last
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(floor) {
		now = floor.Add(time.Microsecond)
	}
	s.last = now
	return now
}
