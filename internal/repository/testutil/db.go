package testutil

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// SetupMockDB creates a sqlmock database for repository tests. Queries are
// matched as regular expressions.
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// RecentTime matches a time argument set by the repository itself: UTC and
// within the last minute
type RecentTime struct{}

// Match implements sqlmock.Argument
func (RecentTime) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if !ok {
		return false
	}
	return ts.Location() == time.UTC && time.Since(ts) < time.Minute && !ts.After(time.Now())
}
