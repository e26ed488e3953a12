package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPostgres runs against a real database when TEST_DATABASE_URL is set.
func TestPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	kv, err := OpenPostgres(ctx, url, 2)
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.pool.Exec(ctx, `DELETE FROM catalog_kv WHERE key IN ('missing', 'doc')`)
	require.NoError(t, err)

	exerciseKV(t, kv)
}
