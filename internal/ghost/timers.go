package ghost

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/durations"
	"github.com/rcliao/ghost/internal/flow"
	"github.com/rcliao/ghost/internal/intent"
	"github.com/rcliao/ghost/internal/schedule"
)

// Scheduler groups.
const (
	groupReminder = "reminder"
	groupTimer    = "timer"
	groupPomodoro = "pomodoro"
	groupQuiz     = "quiz"
)

// alert raises a desktop notification when enabled. Failures never reach the user.
func (e *Engine) alert(title, body string) {
	if !e.opts.Notify {
		return
	}
	if err := e.notifier.Notify(title, body); err != nil {
		e.log.Debug("notification failed", zap.String("title", title), zap.Error(err))
	}
}

func (e *Engine) remindIn(_ context.Context, p intent.Params) []Reply {
	d, err := durations.Parse(p.Get("when"))
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	return e.scheduleReminder(p.Get("text"), d)
}

func (e *Engine) addReminder(ctx context.Context, p intent.Params) []Reply {
	var prefill map[string]string
	if text := p.Get("text"); text != "" {
		prefill = map[string]string{flow.FieldText: text}
	}
	return e.startEntry(ctx, flow.EntryReminder, prefill)
}

func (e *Engine) scheduleReminder(text string, d time.Duration) []Reply {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "to "))
	e.sched.After(groupReminder, text, d, e.fire("reminder", func(context.Context) []Reply {
		e.alert("⏰ Reminder", text)
		return say("⏰ Reminder: " + text)
	}))
	e.log.Info("reminder scheduled", zap.String("text", text), zap.Duration("in", d))
	return say(fmt.Sprintf("⏰ Okay, I'll remind you to %s in %s.", text, durations.Format(d)))
}

func (e *Engine) setTimer(_ context.Context, p intent.Params) []Reply {
	d, err := durations.Parse(p.Get("when"))
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	label := durations.Format(d)
	e.sched.After(groupTimer, "timer for "+label, d, e.fire("timer", func(context.Context) []Reply {
		e.alert("⏰ Timer done", label+" completed.")
		return say(fmt.Sprintf("⏰ Timer done! %s completed.", label))
	}))
	return say(fmt.Sprintf("✅ Timer set for %s. I'll alert you when it's done!", label))
}

func (e *Engine) meditate(_ context.Context, p intent.Params) []Reply {
	n, err := strconv.ParseFloat(p.Get("n"), 64)
	if err != nil {
		return say("❌ Please tell me how long, like 'start 5-minute meditation'.")
	}
	d, err := durations.Of(n, p.Get("unit"))
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	e.sched.After(groupTimer, "meditation", d, e.fire("meditation", func(context.Context) []Reply {
		e.alert("🧘 Meditation", "Your meditation is complete.")
		return say("🧘 Meditation complete. Well done! Take a moment before you carry on.")
	}))
	return say(fmt.Sprintf("🧘 Starting a %s meditation. Close your eyes and breathe slowly. I'll let you know when it's over.", durations.Format(d)))
}

func (e *Engine) startPomodoro(context.Context, intent.Params) []Reply {
	e.sched.CancelGroup(groupPomodoro)
	work, rest := e.opts.PomodoroWork, e.opts.PomodoroBreak
	e.sched.After(groupPomodoro, "pomodoro focus", work, e.fire("pomodoro", func(context.Context) []Reply {
		e.alert("🍅 Pomodoro", "Focus session done. Take a break!")
		e.sched.After(groupPomodoro, "pomodoro break", rest, e.fire("pomodoro break", func(context.Context) []Reply {
			e.alert("☕ Break over", "Ready for another pomodoro?")
			return say("☕ Break over. Say 'start pomodoro' for another round.")
		}))
		return say(fmt.Sprintf("🍅 Pomodoro done! Take a %s break.", durations.Format(rest)))
	}))
	return say(fmt.Sprintf("🍅 Pomodoro started: focus for %s. Say 'stop pomodoro' to cancel.", durations.Format(work)))
}

func (e *Engine) stopPomodoro(context.Context, intent.Params) []Reply {
	if e.sched.CancelGroup(groupPomodoro) == 0 {
		return say("No pomodoro is running.")
	}
	return say("🍅 Pomodoro stopped.")
}

func (e *Engine) pendingTimers() []schedule.Timer {
	var out []schedule.Timer
	for _, t := range e.sched.Pending("") {
		if t.Group != groupQuiz {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) showReminders(context.Context, intent.Params) []Reply {
	timers := e.pendingTimers()
	if len(timers) == 0 {
		return say("You have no pending reminders. Try 'remind me to drink water in 30 minutes'.")
	}
	now := e.clock.Now()
	var b strings.Builder
	b.WriteString("⏰ Pending reminders:")
	for i, t := range timers {
		fmt.Fprintf(&b, "\n%d. %s (in %s)", i+1, t.Label, durations.Format(t.Due.Sub(now)))
	}
	return []Reply{{Text: b.String(), Speech: fmt.Sprintf("You have %s pending.", count(len(timers), "reminder"))}}
}

func (e *Engine) clearReminders(context.Context, intent.Params) []Reply {
	n := e.sched.CancelGroup(groupReminder) + e.sched.CancelGroup(groupTimer)
	if n == 0 {
		return say("You have no pending reminders.")
	}
	return say(fmt.Sprintf("🗑️ Cleared %s.", count(n, "reminder")))
}
