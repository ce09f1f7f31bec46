package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nagarniyantran/civicnav/pkg/adapters/memory"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `
reports:
  - id: NM2024001
    status: open
    ward: 7
  - id: NM2024002
    status: resolved
    ward: 7
  - id: NM2024003
    status: open
    ward: 12
wards: []
`

func TestBackend_Fetch(t *testing.T) {
	b, err := memory.ParseBackend([]byte(seed))
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter ports.Filter
		want   []string
	}{
		{"nil filter matches all", nil, []string{"NM2024001", "NM2024002", "NM2024003"}},
		{"single field", ports.Filter{"status": "open"}, []string{"NM2024001", "NM2024003"}},
		{"text form of numbers", ports.Filter{"ward": "7", "status": "open"}, []string{"NM2024001"}},
		{"unknown field", ports.Filter{"priority": "high"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := b.Fetch(ctx, "reports", tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r["id"].(string))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBackend_UnknownCollection(t *testing.T) {
	b := memory.NewBackend(nil)
	_, err := b.Fetch(context.Background(), "reports", nil)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestBackend_RecordsAreCopies(t *testing.T) {
	b := memory.NewBackend(map[string][]ports.Record{
		"reports": {{"id": "NM2024001", "status": "open"}},
	})
	ctx := context.Background()

	records, err := b.Fetch(ctx, "reports", nil)
	require.NoError(t, err)
	records[0]["status"] = "tampered"

	again, err := b.Fetch(ctx, "reports", nil)
	require.NoError(t, err)
	assert.Equal(t, "open", again[0]["status"])
}

func TestBackend_InsertAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	b, err := memory.LoadBackend(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports", "wards"}, b.Collections())

	b.Insert("wards", ports.Record{"id": 7})
	wards, err := b.Fetch(context.Background(), "wards", ports.Filter{"id": 7})
	require.NoError(t, err)
	assert.Len(t, wards, 1)

	_, err = memory.LoadBackend(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBackend_CancelledContext(t *testing.T) {
	b := memory.NewBackend(map[string][]ports.Record{"reports": nil})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Fetch(ctx, "reports", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
