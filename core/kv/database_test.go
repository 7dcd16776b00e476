package kv

import (
	"context"
	"testing"

	"roster-manager/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

// setupMockDB creates a mock GORM DB speaking the MySQL dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestDatabaseStore_SQLite(t *testing.T) {
	ctx := context.Background()
	db := setupSQLite(t)
	local := NewDatabaseStore(db, ScopeLocal)
	session := NewDatabaseStore(db, ScopeSession)

	require.NoError(t, local.Set(ctx, "team_1", `{"id":1}`))
	require.NoError(t, session.Set(ctx, "team_1", `{"id":2}`))

	v, ok, err := local.Get(ctx, "team_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)

	// Upsert replaces the value in place.
	require.NoError(t, local.Set(ctx, "team_1", `{"id":3}`))
	v, _, _ = local.Get(ctx, "team_1")
	assert.Equal(t, `{"id":3}`, v)

	v, _, _ = session.Get(ctx, "team_1")
	assert.Equal(t, `{"id":2}`, v)

	_, ok, err = local.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, local.Delete(ctx, "team_1"))
	_, ok, _ = local.Get(ctx, "team_1")
	assert.False(t, ok)
}

func TestDatabaseStore_KeysEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	db := setupSQLite(t)
	s := NewDatabaseStore(db, ScopeLocal)

	require.NoError(t, s.Set(ctx, "createdTeams_alice", "[]"))
	require.NoError(t, s.Set(ctx, "createdTeamsXbob", "[]"))
	require.NoError(t, s.Set(ctx, "playerList", "[]"))

	keys, err := s.Keys(ctx, PrefixCreatedTeams)
	require.NoError(t, err)
	assert.Equal(t, []string{"createdTeams_alice"}, keys)
}

func TestDatabaseStore_MySQLErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := setupMockDB(t)
	s := NewDatabaseStore(db, ScopeLocal)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").WillReturnError(assert.AnError)
	_, _, err := s.Get(ctx, "playerList")
	assert.ErrorIs(t, err, assert.AnError)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"scope", "bucket_key", "value"}).AddRow(ScopeLocal, "playerList", "[]"))
	v, ok, err := s.Get(ctx, "playerList")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	mock.ExpectQuery("SELECT `bucket_key` FROM `kv_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"bucket_key"}).AddRow("createdTeams_a"))
	keys, err := s.Keys(ctx, PrefixCreatedTeams)
	require.NoError(t, err)
	assert.Equal(t, []string{"createdTeams_a"}, keys)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "createdTeams!_", escapeLike("createdTeams_"))
	assert.Equal(t, "a!%b!!", escapeLike("a%b!"))
}
