package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcliao/ghost/internal/model"
)

// Export is the document produced by ExportAll: each kind's raw item list.
type Export struct {
	Version int                                `json:"version"`
	Records map[model.Kind][]json.RawMessage `json:"records"`
}

// ExportAll returns every non-empty record list, optionally limited to one kind.
func (r *Records) ExportAll(ctx context.Context, kind model.Kind) (*Export, error) {
	kinds := model.Kinds
	if kind != "" {
		kinds = []model.Kind{kind}
	}

	out := &Export{Version: 1, Records: map[model.Kind][]json.RawMessage{}}
	for _, k := range kinds {
		items, err := Load[json.RawMessage](ctx, r, k)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			out.Records[k] = items
		}
	}
	return out, nil
}

// Import appends the items in doc to the existing lists. Items whose ID is
// already present are skipped. Returns how many items were added.
func (r *Records) Import(ctx context.Context, doc *Export) (int, error) {
	for k := range doc.Records {
		if !model.ValidKinds[k] {
			return 0, fmt.Errorf("import: unknown kind %q", k)
		}
	}

	imported := 0
	for _, k := range model.Kinds {
		incoming := doc.Records[k]
		if len(incoming) == 0 {
			continue
		}

		existing, err := Load[json.RawMessage](ctx, r, k)
		if err != nil {
			return imported, err
		}
		seen := map[string]bool{}
		for _, raw := range existing {
			seen[itemID(raw)] = true
		}

		added := 0
		for _, raw := range incoming {
			id := itemID(raw)
			if id == "" {
				return imported, fmt.Errorf("import %s: item without id", k)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			existing = append(existing, raw)
			added++
		}
		if added == 0 {
			continue
		}
		if err := Save(ctx, r, k, existing); err != nil {
			return imported, err
		}
		imported += added
	}
	return imported, nil
}

func itemID(raw json.RawMessage) string {
	var m model.Meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	return m.ID
}
