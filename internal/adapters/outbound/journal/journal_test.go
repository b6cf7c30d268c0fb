package journal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/journal"
	"github.com/ordercraft/ordercraft/internal/domain"
)

func TestFileJournal_LoadMissingFile(t *testing.T) {
	j := journal.New(filepath.Join(t.TempDir(), "orders.json"))

	entries, err := j.Load()
	assert.NoError(t, err)
	assert.Nil(t, entries)
}

func TestFileJournal_RecordAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal", "orders.json")
	j := journal.New(path)

	require.NoError(t, j.Record(domain.JournalEntry{OrderID: "o-1", Total: decimal.RequireFromString("10.50")}))
	require.NoError(t, j.Record(domain.JournalEntry{OrderID: "o-2", Total: decimal.NewFromInt(3)}))

	entries, err := j.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "o-1", entries[0].OrderID)
	assert.Equal(t, "10.5", entries[0].Total.String())
	assert.Equal(t, "o-2", entries[1].OrderID)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileJournal_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	j := journal.New(path)
	_, err := j.Load()
	assert.Error(t, err)
	assert.Error(t, j.Record(domain.JournalEntry{OrderID: "o-1"}))
}
