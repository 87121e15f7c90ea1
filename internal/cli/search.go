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
		Use:   "search [query]",
		Short: "Search records by keyword",
		Long:  "Search record text, case-insensitively. Searches every kind unless --kind is given.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("kind", "k", "", "Only search this kind")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

type searchHit struct {
	Kind  model.Kind      `json:"kind"`
	Index int             `json:"index"`
	Item  json.RawMessage `json:"item"`
}

func runSearch(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	kinds := model.Kinds
	if kindStr != "" {
		kinds = []model.Kind{parseKind(kindStr)}
	}

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	hits := []searchHit{}
	for _, k := range kinds {
		results, err := store.Search(cmd.Context(), records, k, query, recordText)
		if err != nil {
			exitErr("search", err)
		}
		for _, r := range results {
			hits = append(hits, searchHit{Kind: k, Index: r.Index, Item: r.Item})
		}
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	if formatFlag == "text" {
		for _, h := range hits {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d. %s\n", h.Kind, h.Index, recordText(h.Item))
		}
		return
	}

	b, _ := json.MarshalIndent(hits, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
