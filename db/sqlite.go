package db

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// SQLiteDriverName is go-sqlite3 with UnicodeLower registered on every connection.
	SQLiteDriverName = "sqlite3_employee"

	// UnicodeLower folds case the way strings.ToLower does. The builtin LOWER only folds ASCII.
	UnicodeLower = "unicode_lower"
)

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(UnicodeLower, strings.ToLower, true)
		},
	})
}

// SQLite returns a gorm dialector for dsn backed by SQLiteDriverName.
func SQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: SQLiteDriverName,
		DSN:        dsn,
	})
}
