package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/ghost/internal/model"
)

func newTestRecords(t *testing.T) *Records {
	t.Helper()
	r := NewRecords(newTestKV(t))
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	r.Now = func() time.Time { return fixed }
	return r
}

func addTasks(t *testing.T, r *Records, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := Append(context.Background(), r, model.KindTask, model.Task{Meta: r.NewMeta(), Text: text}); err != nil {
			t.Fatalf("append %q: %v", text, err)
		}
	}
}

func taskTexts(t *testing.T, r *Records) []string {
	t.Helper()
	tasks, err := Load[model.Task](context.Background(), r, model.KindTask)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out := []string{}
	for _, tk := range tasks {
		out = append(out, tk.Text)
	}
	return out
}

func TestLoadEmpty(t *testing.T) {
	r := newTestRecords(t)
	tasks, err := Load[model.Task](context.Background(), r, model.KindTask)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil list, got %v", tasks)
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	r := newTestRecords(t)

	for n := 1; n <= 5; n++ {
		idx, err := Append(context.Background(), r, model.KindNote, model.Note{Meta: r.NewMeta(), Text: fmt.Sprintf("note %d", n)})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if idx != n {
			t.Errorf("expected index %d, got %d", n, idx)
		}
	}

	notes, _ := Load[model.Note](context.Background(), r, model.KindNote)
	for i, n := range notes {
		if want := fmt.Sprintf("note %d", i+1); n.Text != want {
			t.Errorf("position %d: expected %q, got %q", i+1, want, n.Text)
		}
	}
}

func TestRoundTripAllFields(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)

	want := model.Expense{
		Meta:        r.NewMeta(),
		Amount:      249.5,
		Description: "lunch",
		Category:    "food",
		PaymentMode: "upi",
	}
	Append(ctx, r, model.KindExpense, want)

	got, err := Load[model.Expense](ctx, r, model.KindExpense)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]model.Expense{want}, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveAtShiftsIndices(t *testing.T) {
	r := newTestRecords(t)
	addTasks(t, r, "a", "b", "c", "d")

	removed, err := RemoveAt[model.Task](context.Background(), r, model.KindTask, 2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.Text != "b" {
		t.Errorf("expected to remove 'b', got %q", removed.Text)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, taskTexts(t, r)); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}

	// Index 2 now points at what used to be 3
	removed, _ = RemoveAt[model.Task](context.Background(), r, model.KindTask, 2)
	if removed.Text != "c" {
		t.Errorf("expected shifted index to remove 'c', got %q", removed.Text)
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	r := newTestRecords(t)
	addTasks(t, r, "a", "b")

	for _, idx := range []int{0, -1, 3, 5} {
		_, err := RemoveAt[model.Task](context.Background(), r, model.KindTask, idx)
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("index %d: expected IndexError, got %v", idx, err)
		}
		if ie.Len != 2 || ie.Index != idx {
			t.Errorf("index %d: unexpected error fields %+v", idx, ie)
		}
	}
	if n := len(taskTexts(t, r)); n != 2 {
		t.Errorf("expected list unchanged with 2 items, got %d", n)
	}
}

func TestUpdateAt(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	addTasks(t, r, "a", "b")

	got, err := UpdateAt(ctx, r, model.KindTask, 2, func(tk *model.Task) error {
		tk.Done = true
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Done {
		t.Error("expected returned task to be done")
	}

	tasks, _ := Load[model.Task](ctx, r, model.KindTask)
	if tasks[0].Done || !tasks[1].Done {
		t.Errorf("expected only task 2 done, got %+v", tasks)
	}
}

func TestUpdateAtMutatorErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	addTasks(t, r, "a")

	boom := errors.New("already done")
	_, err := UpdateAt(ctx, r, model.KindTask, 1, func(tk *model.Task) error {
		tk.Text = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}
	if texts := taskTexts(t, r); texts[0] != "a" {
		t.Errorf("expected unchanged text, got %q", texts[0])
	}
}

func TestAppendCapped(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)

	for i := 0; i < 5; i++ {
		AppendCapped(ctx, r, model.KindChat, model.Message{Meta: r.NewMeta(), Text: fmt.Sprint(i)}, 3)
	}
	msgs, _ := Load[model.Message](ctx, r, model.KindChat)
	if len(msgs) != 3 || msgs[0].Text != "2" || msgs[2].Text != "4" {
		t.Errorf("expected last three messages, got %+v", msgs)
	}
}

func TestStorageError(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	r := NewRecords(kv)
	kv.Fail = errors.New("quota exceeded")

	_, err := Append(ctx, r, model.KindNote, model.Note{Text: "x"})
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if se.Kind != model.KindNote {
		t.Errorf("expected kind note, got %q", se.Kind)
	}

	kv.Fail = nil
	notes, _ := Load[model.Note](ctx, r, model.KindNote)
	if len(notes) != 0 {
		t.Errorf("failed append must not be saved, got %d notes", len(notes))
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	r := newTestRecords(t)
	addTasks(t, r, "a")
	Append(ctx, r, model.KindNote, model.Note{Meta: r.NewMeta(), Text: "n"})
	r.SetSetting(ctx, "voice", "false")

	if err := r.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	for _, k := range []model.Kind{model.KindTask, model.KindNote} {
		if n, _ := r.Count(ctx, k); n != 0 {
			t.Errorf("expected %s cleared, got %d", k, n)
		}
	}
	if _, ok, _ := r.Setting(ctx, "voice"); ok {
		t.Error("expected settings cleared")
	}
}

func TestNewMetaUnique(t *testing.T) {
	r := newTestRecords(t)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := r.NewMeta().ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
