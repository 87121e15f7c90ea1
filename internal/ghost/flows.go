package ghost

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/durations"
	"github.com/rcliao/ghost/internal/flow"
	"github.com/rcliao/ghost/internal/intent"
	"github.com/rcliao/ghost/internal/model"
)

func (e *Engine) busy(err error) []Reply {
	if errors.Is(err, flow.ErrBusy) {
		return say(fmt.Sprintf("You're in the middle of %s. Finish it or say 'exit' first.", e.flows.State().Title()))
	}
	e.log.Error("flow start failed", zap.Error(err))
	return say("⚠️ Something went wrong handling that. Please try again.")
}

func (e *Engine) startQuiz(ctx context.Context, _ intent.Params) []Reply {
	step, err := e.flows.StartQuiz()
	if err != nil {
		return e.busy(err)
	}
	return e.applyStep(ctx, step)
}

func (e *Engine) startRPS(ctx context.Context, _ intent.Params) []Reply {
	step, err := e.flows.StartRPS()
	if err != nil {
		return e.busy(err)
	}
	return e.applyStep(ctx, step)
}

func (e *Engine) startConfirmClear(ctx context.Context, _ intent.Params) []Reply {
	return e.confirmClear(ctx, false)
}

func (e *Engine) startConfirmClearChat(ctx context.Context, _ intent.Params) []Reply {
	return e.confirmClear(ctx, true)
}

func (e *Engine) confirmClear(ctx context.Context, chatOnly bool) []Reply {
	step, err := e.flows.StartConfirmClear(chatOnly)
	if err != nil {
		return e.busy(err)
	}
	return e.applyStep(ctx, step)
}

func (e *Engine) startEntry(ctx context.Context, kind flow.EntryKind, prefill map[string]string) []Reply {
	step, err := e.flows.StartEntry(kind, prefill)
	if err != nil {
		return e.busy(err)
	}
	return e.applyStep(ctx, step)
}

// applyStep turns a flow step into replies and carries out what it asks
// for: arming the quiz deadline, committing an entry, wiping data.
func (e *Engine) applyStep(ctx context.Context, step flow.Step) []Reply {
	var replies []Reply
	for _, r := range step.Replies {
		replies = append(replies, Reply{Text: r})
	}
	if step.ClearAll {
		replies = append(replies, e.clearAll(ctx)...)
	}
	if step.ClearChat {
		replies = append(replies, e.clearHistory(ctx)...)
	}
	if step.Commit != nil {
		replies = append(replies, e.commit(ctx, step.Commit)...)
	}
	switch {
	case step.ArmQuiz:
		e.armQuiz(step.QuizGen, step.QuizIndex)
	case step.Ended:
		e.sched.CancelGroup(groupQuiz)
	}
	return replies
}

// armQuiz replaces the deadline timer with one for the given question.
// The callback checks generation and index so a late fire is dropped.
func (e *Engine) armQuiz(gen uint64, index int) {
	e.sched.CancelGroup(groupQuiz)
	label := fmt.Sprintf("quiz question %d", index+1)
	e.sched.After(groupQuiz, label, e.opts.QuizDeadline, e.fire("quiz deadline", func(ctx context.Context) []Reply {
		step, ok := e.flows.QuizTimeout(gen, index)
		if !ok {
			e.log.Debug("stale quiz timer dropped", zap.Uint64("generation", gen), zap.Int("question", index+1))
			return nil
		}
		return e.applyStep(ctx, step)
	}))
}

func (e *Engine) commit(ctx context.Context, c *flow.Commit) []Reply {
	v := c.Values
	switch c.Of {
	case flow.EntryTask:
		return e.saveTask(ctx, v[flow.FieldText])
	case flow.EntryReminder:
		d, err := durations.Parse(v[flow.FieldWhen])
		if err != nil {
			return say("❌ " + capitalize(err.Error()) + ".")
		}
		return e.scheduleReminder(v[flow.FieldText], d)
	case flow.EntryContact:
		return e.saveContact(ctx, v[flow.FieldName], v[flow.FieldPhone])
	case flow.EntryExpense:
		amount, err := strconv.ParseFloat(v[flow.FieldAmount], 64)
		if err != nil {
			return say("❌ " + strconv.Quote(v[flow.FieldAmount]) + " is not a valid amount.")
		}
		return e.saveExpense(ctx, model.Expense{
			Amount:      amount,
			Description: v[flow.FieldDescription],
			Category:    v[flow.FieldCategory],
			PaymentMode: v[flow.FieldPayment],
		})
	}
	return nil
}

func (e *Engine) clearAll(ctx context.Context) []Reply {
	if err := e.records.ClearAll(ctx); err != nil {
		return e.storageReply(err, model.KindChat, true)
	}
	e.log.Info("all data cleared")
	return say("🧹 All your data has been cleared.")
}

// QuizTimerPending reports whether a quiz deadline is armed.
func (e *Engine) QuizTimerPending() bool {
	return len(e.sched.Pending(groupQuiz)) > 0
}

// FlowActive names the active flow, or "" when idle.
func (e *Engine) FlowActive() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flows.State().Title()
}
