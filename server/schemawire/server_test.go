package schemawire_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/typewire/internal/registry"
	"github.com/tuannm99/typewire/internal/typedesc"
	"github.com/tuannm99/typewire/schemaclient"
	"github.com/tuannm99/typewire/server/schemawire"
)

// startServer runs Serve on an ephemeral port and returns its address.
func startServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = ln.Close()
	})

	logger := schemawire.NewLogger(false)
	go func() { _ = schemawire.Serve(ctx, ln, registry.New(), logger) }()

	return ln.Addr().String()
}

func TestServer_RegisterFetchListDrop(t *testing.T) {
	addr := startServer(t)

	c, err := schemaclient.Dial(addr, 2*time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(5 * time.Second)

	ctx := context.Background()
	schema := typedesc.NewStruct(
		typedesc.Field{Name: "id", Type: typedesc.Int64},
		typedesc.Field{Name: "email", Type: typedesc.NewOptional(typedesc.String)},
	)

	require.NoError(t, c.Register(ctx, "users", schema))

	got, err := c.Fetch(ctx, "users")
	require.NoError(t, err)
	assert.True(t, schema.Equal(got))

	names, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, names)

	require.NoError(t, c.Drop(ctx, "users"))

	_, err = c.Fetch(ctx, "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestServer_DuplicateRegisterRejected(t *testing.T) {
	addr := startServer(t)

	c, err := schemaclient.Dial(addr, 2*time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(5 * time.Second)

	ctx := context.Background()
	schema := typedesc.NewStruct(typedesc.Field{Name: "id", Type: typedesc.Int32})

	require.NoError(t, c.Register(ctx, "events", schema))
	err = c.Register(ctx, "events", schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestServer_NonStructRejected(t *testing.T) {
	addr := startServer(t)

	c, err := schemaclient.Dial(addr, 2*time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(5 * time.Second)

	err = c.Register(context.Background(), "bad", typedesc.Int32)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "struct")
}

func TestServer_MultipleClients(t *testing.T) {
	addr := startServer(t)
	ctx := context.Background()

	a, err := schemaclient.Dial(addr, 2*time.Second)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	b, err := schemaclient.Dial(addr, 2*time.Second)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	schema := typedesc.NewStruct(typedesc.Field{Name: "n", Type: typedesc.Int32})
	require.NoError(t, a.Register(ctx, "shared", schema))

	// a schema registered on one connection is visible on another
	got, err := b.Fetch(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, schema.Equal(got))
}
