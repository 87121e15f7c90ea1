package host

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/rcliao/ghost/internal/speech"
)

// speechCommands are tried in order by NewCommandSpeaker.
var speechCommands = []string{"espeak-ng", "espeak", "say", "spd-say"}

// CommandSpeaker speaks text by running a command-line TTS program once per
// utterance. Stop interrupts the utterance in progress and drops the rest.
type CommandSpeaker struct {
	Bin  string
	Args []string
	Opts speech.Options

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewCommandSpeaker looks up a known TTS program on PATH. ok is false when
// none is installed.
func NewCommandSpeaker() (s *CommandSpeaker, ok bool) {
	for _, name := range speechCommands {
		if path, err := exec.LookPath(name); err == nil {
			args := []string(nil)
			if name == "spd-say" {
				args = []string{"--wait"}
			}
			return &CommandSpeaker{Bin: path, Args: args, Opts: speech.DefaultOptions()}, true
		}
	}
	return nil, false
}

// Speak blocks until text has been spoken, ctx is done or Stop is called.
// Text with nothing speakable after sanitising is a no-op.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	utterances := speech.Utterances(text, s.Opts)
	if len(utterances) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	for _, u := range utterances {
		if ctx.Err() != nil {
			return nil
		}
		args := append(append([]string(nil), s.Args...), u)
		if err := exec.CommandContext(ctx, s.Bin, args...).Run(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("speak with %s: %w", s.Bin, err)
		}
	}
	return nil
}

// Stop interrupts any speech in progress.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// NopSpeaker is used when no TTS program is available.
type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, string) error { return nil }
func (NopSpeaker) Stop() {}
