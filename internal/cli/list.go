package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/ghost/internal/model"
	"github.com/rcliao/ghost/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List the records of one kind",
		Long:  "List records of a kind (" + kindNames() + ") in display order, with their 1-based index.",
		Args:  cobra.ExactArgs(1),
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results, newest last (0 for all)")

	RootCmd.AddCommand(cmd)
}

func kindNames() string {
	names := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func parseKind(s string) model.Kind {
	k := model.Kind(strings.TrimSuffix(strings.ToLower(s), "s"))
	if !model.ValidKinds[k] {
		exitErr("kind", fmt.Errorf("unknown kind %q (want one of %s)", s, kindNames()))
	}
	return k
}

// indexed pairs a raw record with its 1-based position.
type indexed struct {
	Index int             `json:"index"`
	Item  json.RawMessage `json:"item"`
}

func runList(cmd *cobra.Command, args []string) {
	kind := parseKind(args[0])
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	items, err := store.Load[json.RawMessage](cmd.Context(), records, kind)
	if err != nil {
		exitErr("list", err)
	}

	rows := make([]indexed, len(items))
	for i, it := range items {
		rows[i] = indexed{Index: i + 1, Item: it}
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	if formatFlag == "text" {
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", r.Index, recordText(r.Item))
		}
		return
	}

	b, _ := json.MarshalIndent(rows, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

// recordText joins an item's string and number fields, skipping metadata,
// for text output and search.
func recordText(raw json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return string(raw)
	}
	var parts []string
	for _, name := range []string{"text", "name", "front", "back", "mood", "note", "metric", "value", "unit", "amount", "description", "category", "payment_mode", "phone", "at", "status"} {
		switch v := fields[name].(type) {
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case float64:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	if done, ok := fields["done"].(bool); ok && done {
		parts = append(parts, "(done)")
	}
	return strings.Join(parts, " ")
}
