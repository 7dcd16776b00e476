package buckets

import (
	"context"
	"testing"

	"roster-manager/core/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(withSession bool) (*Service, *int) {
	var session kv.Store
	if withSession {
		session = kv.NewMemoryStore()
	}
	changes := 0
	repo := kv.NewRepository(kv.NewMemoryStore(), session)
	return NewService(repo, zap.NewNop(), func() { changes++ }), &changes
}

func TestService_PutGetDelete(t *testing.T) {
	svc, changes := setupService(true)
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, "", kv.KeyPlayerList, []byte(`[{"name":"张三"}]`)))
	v, ok, err := svc.Get(ctx, kv.ScopeLocal, kv.KeyPlayerList)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"张三"}]`, v)

	_, ok, err = svc.Get(ctx, kv.ScopeSession, kv.KeyPlayerList)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Delete(ctx, kv.ScopeLocal, kv.KeyPlayerList))
	_, ok, _ = svc.Get(ctx, kv.ScopeLocal, kv.KeyPlayerList)
	assert.False(t, ok)
	assert.Equal(t, 2, *changes)
}

func TestService_PutRejectsInvalidJSON(t *testing.T) {
	svc, changes := setupService(false)

	err := svc.Put(context.Background(), "", "playerList", []byte(`[{"name":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, 0, *changes)
}

func TestService_Scopes(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	_, err := svc.List(ctx, kv.ScopeSession, "")
	assert.ErrorIs(t, err, ErrUnknownScope)

	_, err = svc.List(ctx, "cookie", "")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestService_Import(t *testing.T) {
	svc, changes := setupService(false)
	ctx := context.Background()

	keys, err := svc.Import(ctx, "", []byte(`{"createdTeams_U":"[]","staffList":[{"name":"b"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"createdTeams_U", "staffList"}, keys)
	assert.Equal(t, 1, *changes)

	listed, err := svc.List(ctx, "", "created")
	require.NoError(t, err)
	assert.Equal(t, []string{"createdTeams_U"}, listed)
}
