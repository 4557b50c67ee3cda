// Package testing flips binaries into test mode when blank-imported from a
// test, so importing cmd wiring never opens Postgres or Redis connections.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

// TestModeEnv is read by app.InTestMode.
const TestModeEnv = "BIZTIME_TEST_MODE"

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv(TestModeEnv, "1")
		// Tests never reach a real Redis; an empty address disables cache and jobs.
		_ = os.Setenv("REDIS_ADDR", "")
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
