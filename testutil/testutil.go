// Package testutil holds helpers shared by tests that need a running catalog.
package testutil

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/internal/catalogd/server"
	"github.com/grovetools/catalogd/internal/catalogd/store"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// IsolateHome points CATALOGD_HOME at a temp dir so logs, pidfiles and
// config lookups stay out of the real home directory.
func IsolateHome(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("CATALOGD_HOME", dir)
	return dir
}

// DiscardLogger returns an entry that drops everything.
func DiscardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// StartServer serves a catalog seeded with seed on an httptest server that is
// closed when the test ends.
func StartServer(t *testing.T, seed ...models.Cat) (*httptest.Server, *store.Store) {
	t.Helper()

	st := store.New(seed...)
	srv, err := server.New(st, config.Default().Server, DiscardLogger())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}
