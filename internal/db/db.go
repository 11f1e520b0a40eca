package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect distinguishes the placeholder style and migration set of a driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB is a connection pool that remembers which dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect

	orderMu sync.Mutex
}

// Ordered runs fn while holding the pool's insert-order lock. Ids drawn and
// written inside fn commit in the order they were drawn, so a reader paging
// with an id cursor never sees a smaller id appear behind a larger one.
// fn must not start a transaction that outlives it.
func (d *DB) Ordered(fn func() error) error {
	d.orderMu.Lock()
	defer d.orderMu.Unlock()
	return fn()
}

// sqlitePragmas are embedded in the DSN so that every pooled connection gets them.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(30000)",
	"synchronous(NORMAL)",
}

// BuildDSN turns a file path into a modernc sqlite DSN carrying the pragmas.
func BuildDSN(path string) string {
	values := url.Values{}
	for _, p := range sqlitePragmas {
		values.Add("_pragma", p)
	}
	return "file:" + path + "?" + values.Encode()
}

// Open connects to the database for driver ("sqlite" or "postgres") and
// applies pending migrations. For sqlite, dsn is a file path.
func Open(driver, dsn string) (*DB, error) {
	var (
		conn    *sql.DB
		dialect Dialect
		err     error
	)
	switch Dialect(driver) {
	case SQLite:
		dir := filepath.Dir(dsn)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		conn, err = sql.Open("sqlite", BuildDSN(dsn))
		dialect = SQLite
	case Postgres:
		conn, err = sql.Open("postgres", dsn)
		dialect = Postgres
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	database := &DB{DB: conn, Dialect: dialect}
	if err := Migrate(database); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return database, nil
}

// Rebind rewrites '?' placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
