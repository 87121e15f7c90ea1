package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/rcliao/ghost/internal/config"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level string
		json  bool
		want  zapcore.Level
	}{
		{"", false, zapcore.WarnLevel},
		{"debug", false, zapcore.DebugLevel},
		{"ERROR", true, zapcore.ErrorLevel},
	}
	for _, c := range cases {
		logger, err := New(config.LoggingConfig{Level: c.level, JSON: c.json})
		if err != nil {
			t.Fatalf("New(%q): %v", c.level, err)
		}
		if !logger.Core().Enabled(c.want) {
			t.Errorf("level %q: expected %s enabled", c.level, c.want)
		}
		if c.want > zapcore.DebugLevel && logger.Core().Enabled(c.want-1) {
			t.Errorf("level %q: expected %s disabled", c.level, c.want-1)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
