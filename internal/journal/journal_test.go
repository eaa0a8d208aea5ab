package journal

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)
	session := uuid.New()
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	kinds := []string{KindTick, KindAction, KindTick}
	for i, kind := range kinds {
		e := Entry{
			SessionID: session,
			Time:      base.Add(time.Duration(i) * time.Second),
			Kind:      kind,
			Species:   "CAT",
			PetName:   "Mochi",
			State:     "NORMAL",
		}
		if kind == KindAction {
			e.Name = "play"
			var err error
			if e, err = e.WithPayload(map[string]int{"happiness": 15}); err != nil {
				t.Fatal(err)
			}
		}
		if err := j.Append(ctx, e); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(got))
	}
	if got[0].Kind != KindTick || got[1].Kind != KindAction {
		t.Errorf("kinds = %s, %s; want newest first", got[0].Kind, got[1].Kind)
	}
	if !got[0].Time.Equal(base.Add(2 * time.Second)) {
		t.Errorf("time = %v, want %v", got[0].Time, base.Add(2*time.Second))
	}
	if got[1].SessionID != session || got[1].ID == (ulid.ULID{}) {
		t.Errorf("ids = %s / %s", got[1].ID, got[1].SessionID)
	}

	var payload map[string]int
	if err := json.Unmarshal(got[1].Payload, &payload); err != nil {
		t.Fatalf("payload %q: %v", got[1].Payload, err)
	}
	if payload["happiness"] != 15 || got[1].Name != "play" {
		t.Errorf("action entry = %q %v", got[1].Name, payload)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Append(ctx, Entry{Kind: KindSave, Species: "DOG", PetName: "Rex", State: "SLEEP"}); err != nil {
		t.Fatal(err)
	}
	j.Close()

	j, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PetName != "Rex" || got[0].State != "SLEEP" {
		t.Errorf("after reopen: %+v", got)
	}
	if got[0].ID.Time() == 0 {
		t.Errorf("generated id %s carries no timestamp", got[0].ID)
	}
	if string(got[0].Payload) != "null" {
		t.Errorf("empty payload stored as %q, want null", got[0].Payload)
	}
}

func TestNop(t *testing.T) {
	var j Journal = Nop{}
	if err := j.Append(context.Background(), Entry{Kind: KindTick}); err != nil {
		t.Error(err)
	}
	got, err := j.Recent(context.Background(), 5)
	if err != nil || len(got) != 0 {
		t.Errorf("Nop.Recent = %v, %v", got, err)
	}
}
