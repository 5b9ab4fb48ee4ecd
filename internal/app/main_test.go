//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/freight-rate-service/internal/testutil"
)

// TestMain sets up a shared MongoDB container for all app integration tests in this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
