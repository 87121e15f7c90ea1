package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/ghost/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as JSON",
		Long:  "Export every record list as one JSON document. Limit to one kind with -k.",
		Run:   runExport,
	}

	cmd.Flags().StringP("kind", "k", "", "Only export this kind")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	var kind model.Kind
	if kindStr != "" {
		kind = parseKind(kindStr)
	}

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	doc, err := records.ExportAll(cmd.Context(), kind)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
