package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rcliao/ghost/internal/model"
)

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestRecords(t)
	addTasks(t, src, "a", "b")
	Append(ctx, src, model.KindContact, model.Contact{Meta: src.NewMeta(), Name: "Asha", Phone: "98765"})

	doc, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(doc.Records) != 2 {
		t.Errorf("expected 2 non-empty kinds, got %d", len(doc.Records))
	}

	// Through JSON, as the CLI does
	b, _ := json.Marshal(doc)
	var decoded Export
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	dst := newTestRecords(t)
	n, err := dst.Import(ctx, &decoded)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}

	// Second import skips items already present
	n, _ = dst.Import(ctx, &decoded)
	if n != 0 {
		t.Errorf("expected 0 on re-import, got %d", n)
	}

	contacts, _ := Load[model.Contact](ctx, dst, model.KindContact)
	if len(contacts) != 1 || contacts[0].Phone != "98765" {
		t.Errorf("unexpected contacts %+v", contacts)
	}
}

func TestExportSingleKind(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	addTasks(t, r, "a")
	Append(ctx, r, model.KindNote, model.Note{Meta: r.NewMeta(), Text: "n"})

	doc, _ := r.ExportAll(ctx, model.KindNote)
	if len(doc.Records) != 1 || len(doc.Records[model.KindNote]) != 1 {
		t.Errorf("expected only notes, got %v", doc.Records)
	}
}

func TestImportUnknownKind(t *testing.T) {
	r := newTestRecords(t)
	_, err := r.Import(context.Background(), &Export{Records: map[model.Kind][]json.RawMessage{
		"spaceship": {json.RawMessage(`{"id":"x"}`)},
	}})
	if err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	for _, text := range []string{"Buy milk", "call mom", "milk the cow"} {
		Append(ctx, r, model.KindNote, model.Note{Meta: r.NewMeta(), Text: text})
	}

	hits, err := Search(ctx, r, model.KindNote, "MILK", func(n model.Note) string { return n.Text })
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Index != 1 || hits[1].Index != 3 {
		t.Errorf("expected indices 1 and 3, got %d and %d", hits[0].Index, hits[1].Index)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	addTasks(t, r, "a", "b")

	st, err := r.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 2 || len(st.Kinds) != 1 || st.Kinds[0].Kind != model.KindTask {
		t.Errorf("unexpected stats %+v", st)
	}
}
