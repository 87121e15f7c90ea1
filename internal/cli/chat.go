package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/ghost/internal/host"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  "Read lines from stdin and answer each one. Type /quit or press Ctrl-D to leave.",
		Run:   runChat,
	}

	cmd.Flags().Bool("voice", false, "Speak replies (overrides the config default until toggled with 'voice on/off')")
	cmd.Flags().Bool("no-greeting", false, "Skip the opening greeting")

	RootCmd.AddCommand(cmd)
}

// readLines scans r on its own goroutine. interrupt sees each line as soon
// as it is read, so "stop" cuts off speech while Handle is still busy with
// the previous line.
func readLines(r io.Reader, interrupt func(line string) bool) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := sc.Text()
			interrupt(line)
			lines <- line
		}
	}()
	return lines
}

func runChat(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cmd.Flags().Changed("voice") {
		cfg.Voice, _ = cmd.Flags().GetBool("voice")
	}
	noGreeting, _ := cmd.Flags().GetBool("no-greeting")

	out := cmd.OutOrStdout()
	s := newSession(cfg, host.NewTerminalPresenter(out))
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noGreeting {
		s.engine.Greeting(ctx)
	}

	lines := readLines(cmd.InOrStdin(), s.engine.Interrupt)

	for {
		fmt.Fprint(out, "you> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return
			}
			switch strings.TrimSpace(line) {
			case "/quit", "/exit":
				return
			}
			s.engine.Handle(ctx, line)
		}
	}
}
