package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/vk/ck3graph/internal/ctxlog"
)

// LogsEnv, when set to "true", dumps the captured log of every test that
// used Context.
const LogsEnv = "CK3GRAPH_TEST_LOGS"

// Context returns a context carrying a debug-level text logger that writes
// into the returned buffer.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv(LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}
