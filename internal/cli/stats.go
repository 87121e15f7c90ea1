package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and database size",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	stats, err := records.Stats(cmd.Context(), cfg.DBPath)
	if err != nil {
		exitErr("stats", err)
	}

	if formatFlag == "text" {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", stats.DBPath, stats.DBSize)
		for _, k := range stats.Kinds {
			fmt.Fprintf(out, "%-10s %d\n", k.Kind, k.Count)
		}
		fmt.Fprintf(out, "%-10s %d\n", "total", stats.Total)
		return
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
