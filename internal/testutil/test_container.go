//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// shared is the MongoDB container reused by every test of a package.
var shared struct {
	once      sync.Once
	container *MongoDBContainer
	err       error
}

// GetSharedMongoDB starts the package-wide MongoDB container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.once.Do(func() {
		shared.container, shared.err = SetupMongoDB(ctx)
	})
	return shared.container, shared.err
}

// CleanupSharedMongoDB terminates the shared container, if one was started.
func CleanupSharedMongoDB(ctx context.Context) error {
	if shared.container == nil {
		return nil
	}
	return shared.container.Cleanup(ctx)
}

// SetupTestMainWithMongoDB starts the shared MongoDB container, runs the tests and tears it down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "start shared MongoDB container: %v\n", err)
		return 1
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cleanup shared MongoDB container: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared MongoDB container.
// It panics when TestMain did not start the container.
func GetSharedContainerURI() string {
	if shared.container == nil {
		panic("shared MongoDB container not started: use SetupTestMainWithMongoDB in TestMain")
	}
	return shared.container.URI
}

// SanitizeDBName turns a test name into a unique, valid MongoDB database name.
func SanitizeDBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_", "$", "_").Replace(testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return name + "_" + strconv.FormatInt(time.Now().UnixNano()%1000000, 10)
}
