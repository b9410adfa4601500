package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Store 测试
// =============================================================================

func setupTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	logger := zap.NewNop()
	config := Config{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
		StateTTL: 0,
	}

	store, err := New(config, logger)
	require.NoError(t, err)

	return mr, store
}

func TestNew(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	assert.NotNil(t, store)
	assert.NotNil(t, store.redis)
	assert.NotNil(t, store.logger)
}

func TestNew_ConnectionRefused(t *testing.T) {
	config := Config{Addr: "127.0.0.1:1"}
	_, err := New(config, zap.NewNop())
	assert.Error(t, err)
}

func TestStore_SetAndGet(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()

	err := store.Set(ctx, "U123", UserState{Provider: "openai", Model: "gpt-4o"})
	require.NoError(t, err)

	st, err := store.Get(ctx, "U123")
	require.NoError(t, err)
	assert.Equal(t, "openai", st.Provider)
	assert.Equal(t, "gpt-4o", st.Model)
}

func TestStore_GetNoState(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	_, err := store.Get(context.Background(), "U404")
	require.Error(t, err)
	assert.True(t, IsNoState(err))
}

func TestStore_KeysAreScopedPerUser(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "U1", UserState{Provider: "openai", Model: "gpt-4o"}))
	require.NoError(t, store.Set(ctx, "U2", UserState{Provider: "genai", Model: "genai-agent"}))

	st1, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	st2, err := store.Get(ctx, "U2")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", st1.Model)
	assert.Equal(t, "genai-agent", st2.Model)

	// 底层键带有 user_state: 前缀
	assert.True(t, mr.Exists("user_state:U1"))
}

func TestStore_Delete(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "U123", UserState{Provider: "openai", Model: "gpt-4o"}))
	require.NoError(t, store.Delete(ctx, "U123"))

	_, err := store.Get(ctx, "U123")
	assert.True(t, IsNoState(err))
}

func TestStore_StateTTLExpires(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := New(Config{Addr: mr.Addr(), StateTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "U123", UserState{Provider: "openai", Model: "gpt-4o"}))

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "U123")
	assert.True(t, IsNoState(err))
}

func TestStore_ClosedRejectsOperations(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()

	require.NoError(t, store.Close())
	// Close 幂等
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err := store.Get(ctx, "U123")
	assert.Error(t, err)
	assert.False(t, IsNoState(err))
	assert.Error(t, store.Set(ctx, "U123", UserState{}))
	assert.Error(t, store.Ping(ctx))
}

func TestStore_CorruptValue(t *testing.T) {
	mr, store := setupTestStore(t)
	defer mr.Close()
	defer store.Close()

	require.NoError(t, mr.Set("user_state:U123", "not-json"))

	_, err := store.Get(context.Background(), "U123")
	require.Error(t, err)
	assert.False(t, IsNoState(err))
}
