package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/nagarniyantran/civicnav/pkg/session"
)

// ListSessions prints one session ID per line.
func ListSessions(ctx context.Context, manager *session.Manager, w io.Writer) error {
	ids, err := manager.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No active sessions found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

// InspectSession prints the stored state of a session and its view as indented JSON.
func InspectSession(ctx context.Context, manager *session.Manager, id string, w io.Writer) error {
	state, err := manager.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session %q: %w", id, err)
	}
	out := struct {
		State any                 `json:"state"`
		View  resolver.Descriptor `json:"view"`
	}{
		State: state,
		View:  resolver.Describe(resolver.InputFrom(state)).Descriptor(),
	}
	return writeJSON(w, out)
}

// RemoveSession deletes a stored session.
func RemoveSession(ctx context.Context, manager *session.Manager, id string, w io.Writer) error {
	if err := manager.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %q: %w", id, err)
	}
	fmt.Fprintf(w, "Session '%s' deleted.\n", id)
	return nil
}

// ListRecords prints the records of a backend collection matching filter as indented JSON.
func ListRecords(ctx context.Context, backend ports.Backend, collection string, filter ports.Filter, w io.Writer) error {
	if backend == nil {
		return fmt.Errorf("no backend configured (set backend_seed)")
	}
	records, err := backend.Fetch(ctx, collection, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", collection, err)
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "No %s found.\n", collection)
		return nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		return fmt.Sprint(records[i]["id"]) < fmt.Sprint(records[j]["id"])
	})
	return writeJSON(w, records)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
