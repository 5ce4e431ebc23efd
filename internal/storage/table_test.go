// internal/storage/table_test.go
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	return db
}

func TestLoadMissingTableYieldsEmpty(t *testing.T) {
	db := newTestDB(t)

	table, err := db.Load("produtos")
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := newTestDB(t)

	table := NewTable("id", "nome", "preco")
	table.Append(map[string]string{"id": "1", "nome": "Caixa de som", "preco": "10"})
	table.Append(map[string]string{"id": "2", "nome": "E-book, edição especial", "preco": "7.5"})
	require.NoError(t, db.Save("produtos", table))

	loaded, err := db.Load("produtos")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "nome", "preco"}, loaded.Columns)
	require.Len(t, loaded.Rows, 2)
	assert.Equal(t, "Caixa de som", loaded.Rows[0]["nome"])
	assert.Equal(t, "E-book, edição especial", loaded.Rows[1]["nome"])
}

func TestSaveIsFullOverwrite(t *testing.T) {
	db := newTestDB(t)

	first := NewTable("id", "nome")
	first.Append(map[string]string{"id": "1", "nome": "A"})
	first.Append(map[string]string{"id": "2", "nome": "B"})
	require.NoError(t, db.Save("produtos", first))

	second := NewTable("id", "nome")
	second.Append(map[string]string{"id": "3", "nome": "C"})
	require.NoError(t, db.Save("produtos", second))

	loaded, err := db.Load("produtos")
	require.NoError(t, err)
	require.Len(t, loaded.Rows, 1)
	assert.Equal(t, "3", loaded.Rows[0]["id"])
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(dir)
	require.NoError(t, err)

	table := NewTable("id")
	table.Append(map[string]string{"id": "1"})
	require.NoError(t, db.Save("pedidos", table))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pedidos.csv", filepath.Base(entries[0].Name()))
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(dir)
	require.NoError(t, err)

	// ragged quoting makes the csv reader fail
	require.NoError(t, os.WriteFile(filepath.Join(dir, "produtos.csv"), []byte("id,nome\n\"1,broken\n"), 0o644))

	_, err = db.Load("produtos")
	assert.Error(t, err)
}
