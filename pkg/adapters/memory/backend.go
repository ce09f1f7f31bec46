package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Backend implements ports.Backend over in-process collections.
// Safe for concurrent use.
type Backend struct {
	mu          sync.RWMutex
	collections map[string][]ports.Record
}

// NewBackend creates a backend holding the given collections.
func NewBackend(collections map[string][]ports.Record) *Backend {
	b := &Backend{collections: make(map[string][]ports.Record, len(collections))}
	for name, records := range collections {
		b.collections[name] = cloneRecords(records)
	}
	return b
}

// ParseBackend builds a backend from a YAML document mapping collection names
// to lists of records:
//
//	reports:
//	  - id: NM2024001
//	    status: open
func ParseBackend(data []byte) (*Backend, error) {
	var collections map[string][]ports.Record
	if err := yaml.Unmarshal(data, &collections); err != nil {
		return nil, fmt.Errorf("failed to parse backend seed: %w", err)
	}
	return NewBackend(collections), nil
}

// LoadBackend reads a YAML seed file. See ParseBackend.
func LoadBackend(path string) (*Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend seed: %w", err)
	}
	return ParseBackend(data)
}

// Insert appends a record to collection, creating it if needed.
func (b *Backend) Insert(collection string, record ports.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.collections[collection] = append(b.collections[collection], cloneRecord(record))
}

// Collections returns the collection names, sorted.
func (b *Backend) Collections() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.collections))
	for name := range b.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fetch returns copies of the records of collection whose fields equal every
// filter value. Values are compared by their text form, so the filter "7"
// matches the number 7.
func (b *Backend) Fetch(ctx context.Context, collection string, filter ports.Filter) ([]ports.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	records, ok := b.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, collection)
	}

	out := make([]ports.Record, 0, len(records))
	for _, r := range records {
		if matches(r, filter) {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func matches(r ports.Record, filter ports.Filter) bool {
	for k, want := range filter {
		got, ok := r[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func cloneRecords(in []ports.Record) []ports.Record {
	out := make([]ports.Record, len(in))
	for i, r := range in {
		out[i] = cloneRecord(r)
	}
	return out
}

func cloneRecord(r ports.Record) ports.Record {
	out := make(ports.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
