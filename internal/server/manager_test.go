package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Manager 测试
// =============================================================================

func newTestManager(t *testing.T, handler http.Handler) *Manager {
	t.Helper()
	config := DefaultConfig()
	config.Addr = "127.0.0.1:0"
	config.ShutdownTimeout = 2 * time.Second
	return NewManager(handler, config, zap.NewNop())
}

func TestManager_StartAndServe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	m := newTestManager(t, mux)
	require.NoError(t, m.Start())
	defer m.Shutdown(context.Background())

	resp, err := http.Get("http://" + m.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestManager_Shutdown(t *testing.T) {
	m := newTestManager(t, http.NewServeMux())
	require.NoError(t, m.Start())

	require.NoError(t, m.Shutdown(context.Background()))
	// 幂等
	require.NoError(t, m.Shutdown(context.Background()))

	// 关闭后拒绝再次启动
	assert.Error(t, m.Start())
}

func TestManager_StartFailsOnBadAddr(t *testing.T) {
	config := DefaultConfig()
	config.Addr = "256.256.256.256:99999"
	m := NewManager(http.NewServeMux(), config, zap.NewNop())

	assert.Error(t, m.Start())
}

func TestManager_ErrChannelEmptyOnCleanShutdown(t *testing.T) {
	m := newTestManager(t, http.NewServeMux())
	require.NoError(t, m.Start())
	require.NoError(t, m.Shutdown(context.Background()))

	select {
	case err := <-m.Err():
		t.Fatalf("unexpected server error: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}
