package sqlite_test

import (
	"context"
	"testing"

	"github.com/ayumu-h/curio"
	"github.com/ayumu-h/curio/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// mustCreateCabinet creates a cabinet for item tests to hang off.
func mustCreateCabinet(t *testing.T, db *sqlite.DB, name string) *curio.Cabinet {
	t.Helper()
	cabinet := &curio.Cabinet{Name: name}
	require.NoError(t, sqlite.NewCabinetService(db).CreateCabinet(context.Background(), cabinet))
	return cabinet
}

// mustCreateItem creates a minimal valid item in the given cabinet.
func mustCreateItem(t *testing.T, db *sqlite.DB, cabinetID, title string) *curio.Item {
	t.Helper()
	item := &curio.Item{CabinetID: cabinetID, Title: title}
	require.NoError(t, sqlite.NewItemService(db).CreateItem(context.Background(), item))
	return item
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cabinets").Scan(&count))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&count))
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/curio.db")
		err := db.Open()
		require.Error(t, err)
	})
}
