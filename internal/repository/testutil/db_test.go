package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetupMockDB(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	assert.NotNil(t, mock)
	assert.NoError(t, db.Ping())

	cleanup()
	assert.Error(t, db.Ping())
}

func TestRecentTime(t *testing.T) {
	m := RecentTime{}

	assert.True(t, m.Match(time.Now().UTC()))
	assert.False(t, m.Match(time.Now().In(time.FixedZone("X", 3600))))
	assert.False(t, m.Match(time.Now().UTC().Add(-2*time.Minute)))
	assert.False(t, m.Match(time.Now().UTC().Add(time.Hour)))
	assert.False(t, m.Match("2024-01-01"))
}
