package app

import (
	"os"
	"sync"
)

// testModeEnv matches testing.TestModeEnv; binaries return early when it is "1".
const testModeEnv = "BIZTIME_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})

// InTestMode reports whether main should return before dialing Postgres or
// Redis. The environment is read once per process.
func InTestMode() bool {
	return testMode()
}
