package database

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3_showcase"

var registerSQLite sync.Once

// unicodeLower stands in for SQLite's built-in lower(), which only folds ASCII.
func unicodeLower(v interface{}) interface{} {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// sqliteDriverName registers, once, a sqlite3 driver whose connections use
// unicodeLower for LOWER().
func sqliteDriverName() string {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", unicodeLower, true)
			},
		})
	})
	return sqliteDriver
}
