package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/ghost/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import records from JSON",
		Long:  "Import records from JSON on stdin. Expects the format produced by export; items already present (same id) are skipped.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var doc store.Export
	if err := json.Unmarshal(data, &doc); err != nil {
		exitErr("parse json", err)
	}

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	imported, err := records.Import(cmd.Context(), &doc)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
