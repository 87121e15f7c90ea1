// Package host provides the terminal and desktop implementations of the
// engine's collaborators: presenter, notifier, link opener and speaker.
package host

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/model"
)

// TerminalPresenter prints assistant messages as "ghost> text" lines.
// User messages are not echoed since the user just typed them.
type TerminalPresenter struct {
	mu     sync.Mutex
	w      io.Writer
	Prefix string
}

// NewTerminalPresenter writes to w.
func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	return &TerminalPresenter{w: w, Prefix: "ghost> "}
}

// Present writes msg. Multi-line replies are indented under the prefix.
func (p *TerminalPresenter) Present(msg model.Message) {
	if msg.IsUser {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	indent := fmt.Sprintf("%*s", len(p.Prefix), "")
	for i, line := range strings.Split(msg.Text, "\n") {
		if i == 0 {
			fmt.Fprintf(p.w, "%s%s\n", p.Prefix, line)
		} else {
			fmt.Fprintf(p.w, "%s%s\n", indent, line)
		}
	}
}

// DesktopNotifier raises best-effort desktop notifications.
type DesktopNotifier struct {
	Logger *zap.Logger
	// Icon is an optional path passed to the notification daemon.
	Icon string
}

// Headless reports whether there is no display to notify on.
func Headless() bool {
	return runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// Notify shows a notification. Headless Linux hosts are skipped because
// beeep would fail there. Errors are logged and returned; callers ignore them.
func (n *DesktopNotifier) Notify(title, body string) error {
	if body == "" || Headless() {
		return nil
	}
	if err := beeep.Notify(title, body, n.Icon); err != nil {
		if n.Logger != nil {
			n.Logger.Debug("desktop notification failed", zap.String("title", title), zap.Error(err))
		}
		return err
	}
	return nil
}

// BrowserOpener opens links in the default browser.
type BrowserOpener struct{}

// Open opens url, discarding the launcher's output so it does not mix
// with the chat transcript.
func (BrowserOpener) Open(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
