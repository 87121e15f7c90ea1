package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/ghost/internal/ghost"
	"github.com/rcliao/ghost/internal/host"
)

func init() {
	cmd := &cobra.Command{
		Use:   "say [text]",
		Short: "Send one line to ghost and print the replies",
		Long: "Handle a single input line, e.g. ghost say \"add task: buy milk and show tasks\".\n" +
			"Reminders and timers only fire in a chat session.",
		Args: cobra.MinimumNArgs(1),
		Run:  runSay,
	}

	RootCmd.AddCommand(cmd)
}

func runSay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	cfg.Voice = false

	var presenter ghost.Presenter = host.NewTerminalPresenter(cmd.OutOrStdout())
	if formatFlag == "json" {
		presenter = host.NewTerminalPresenter(io.Discard)
	}
	s := newSession(cfg, presenter)
	defer s.Close()

	replies := s.engine.Handle(cmd.Context(), strings.Join(args, " "))
	if formatFlag != "json" {
		return
	}

	out := make([]string, 0, len(replies))
	for _, r := range replies {
		out = append(out, r.Text)
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
