package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear [kind]",
		Short: "Delete all records of a kind, or everything",
		Long:  "Delete every record of one kind. Without a kind, deletes all records, settings and chat history.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runClear,
	}

	cmd.Flags().Bool("yes", false, "Confirm deleting everything")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")

	cfg := loadConfig()
	records, kv := openRecords(cfg)
	defer kv.Close()

	if len(args) == 1 {
		kind := parseKind(args[0])
		if err := records.Clear(cmd.Context(), kind); err != nil {
			exitErr("clear", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q}`+"\n", kind)
		return
	}

	if !yes {
		exitErr("clear", fmt.Errorf("this deletes all data; pass --yes to confirm"))
	}
	if err := records.ClearAll(cmd.Context()); err != nil {
		exitErr("clear", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true,"all":true}`)
}
