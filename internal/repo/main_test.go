package repo_test

import (
	"os"
	"testing"

	"github.com/pessoas-api/backend/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole package, so individual tests never need to think about schema state.
// Without a database the pgxmock tests still run and integration tests skip.
func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithDatabase(m))
}
