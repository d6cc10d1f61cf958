// Package testing forces test mode for suites that import it, so entry
// points never bind sockets or watch files while under test.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("LOCATOR_TEST_MODE", "1")
		if os.Getenv("LISTINGS_WATCH") == "" {
			_ = os.Setenv("LISTINGS_WATCH", "false")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
