package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the frame state database. The connection may
// be opened on the first DB call, so commands that never touch stored
// positions never create the file.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	// Path is the database file, reported even before it is opened.
	Path() string
	Close() error
	IsInitialized() bool
}
