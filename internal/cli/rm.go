package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/ghost/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <kind> <index>",
		Short: "Delete a record by its 1-based index",
		Long:  "Delete one record. Later records move up by one, so list again before removing another.",
		Args:  cobra.ExactArgs(2),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	kind := parseKind(args[0])
	n, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("index", err)
	}

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	removed, err := store.RemoveAt[json.RawMessage](cmd.Context(), records, kind, n)
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"index":%d,"removed":%s}`+"\n", kind, n, removed)
}
