// Package db owns the connection lifecycle, credentials, and schema for the
// tasks table. Every statement runs on its own freshly opened connection.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Supported drivers (database/sql driver names).
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Options describes the connection target.
type Options struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Database string // namespace created by EnsureSchema (mysql)
	Charset  string
	Path     string // sqlite3 database file

	// Passwords is consulted on the first mysql connection only.
	Passwords PasswordSource
}

// ConnectError reports that the very first connection could not be
// established. It is the only fatal error in the program.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string { return e.Err.Error() }

func (e *ConnectError) Unwrap() error { return e.Err }

// Connector opens one connection per statement.
type Connector struct {
	opts      Options
	passwords *CachedPassword
	database  string // default database for new mysql connections
	connected bool
	log       zerolog.Logger
}

// NewConnector creates a Connector. No connection is made until Open.
func NewConnector(opts Options, log zerolog.Logger) (*Connector, error) {
	switch opts.Driver {
	case DriverMySQL:
		if opts.Passwords == nil {
			return nil, fmt.Errorf("mysql driver requires a password source")
		}
	case DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite3 driver requires a database path")
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	c := &Connector{opts: opts, log: log}
	if opts.Passwords != nil {
		c.passwords = NewCachedPassword(opts.Passwords)
	}
	return c, nil
}

// Open acquires a single connection. The returned release func closes the
// connection and its handle and must be called on every path.
func (c *Connector) Open(ctx context.Context) (*sql.Conn, func(), error) {
	dsn, err := c.dsn()
	if err != nil {
		return nil, nil, c.connectFailed(err)
	}

	handle, err := sql.Open(c.opts.Driver, dsn)
	if err != nil {
		return nil, nil, c.connectFailed(err)
	}
	handle.SetMaxOpenConns(1)
	handle.SetMaxIdleConns(0)

	conn, err := handle.Conn(ctx)
	if err != nil {
		_ = handle.Close()
		return nil, nil, c.connectFailed(err)
	}

	if !c.connected {
		c.connected = true
		c.log.Debug().Str("driver", c.opts.Driver).Str("target", c.target()).Msg("database connection established")
	}

	release := func() {
		if err := conn.Close(); err != nil {
			c.log.Debug().Err(err).Msg("failed to close connection")
		}
		if err := handle.Close(); err != nil {
			c.log.Debug().Err(err).Msg("failed to close database handle")
		}
	}
	return conn, release, nil
}

// Connected reports whether any connection has succeeded.
func (c *Connector) Connected() bool {
	return c.connected
}

// UseDatabase sets the default database for subsequent mysql connections.
func (c *Connector) UseDatabase(name string) {
	c.database = name
}

func (c *Connector) connectFailed(err error) error {
	c.log.Debug().Err(err).Str("target", c.target()).Msg("connection failed")
	if !c.connected {
		return &ConnectError{Err: err}
	}
	return fmt.Errorf("failed to connect: %w", err)
}

func (c *Connector) target() string {
	if c.opts.Driver == DriverSQLite {
		return c.opts.Path
	}
	return net.JoinHostPort(c.opts.Host, strconv.Itoa(c.opts.Port))
}

func (c *Connector) dsn() (string, error) {
	if c.opts.Driver == DriverSQLite {
		return c.opts.Path, nil
	}

	password, err := c.passwords.Password()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.User = c.opts.User
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = c.target()
	cfg.DBName = c.database
	cfg.ParseTime = true
	if c.opts.Charset != "" {
		cfg.Params = map[string]string{"charset": c.opts.Charset}
	}
	return cfg.FormatDSN(), nil
}
