package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_late.sql":  {Data: []byte("SELECT 10;")},
		"migrations/002_next.sql":  {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql": {Data: []byte("SELECT 1;")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)

	require.Len(t, migrations, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].version, migrations[1].version, migrations[2].version})
	assert.Equal(t, "SELECT 10;", migrations[2].sql)
}

func TestLoadMigrationsRejectsBadNames(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"migrations/init.sql": {Data: []byte("")}})
	assert.Error(t, err)

	_, err = loadMigrations(fstest.MapFS{"migrations/abc_init.sql": {Data: []byte("")}})
	assert.Error(t, err)
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migrations, err := loadMigrations(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, 1, migrations[0].version)
	assert.Contains(t, migrations[0].sql, "CREATE TABLE IF NOT EXISTS daily_activities")
}
