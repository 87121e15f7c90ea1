// Package ghost is the assistant engine: it splits input lines into
// commands, routes each through the active conversation flow or the intent
// table, runs the matching handler and emits the replies.
package ghost

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/flow"
	"github.com/rcliao/ghost/internal/intent"
	"github.com/rcliao/ghost/internal/model"
	"github.com/rcliao/ghost/internal/schedule"
	"github.com/rcliao/ghost/internal/store"
)

// Presenter renders messages, both the user's and ghost's, in order.
type Presenter interface {
	Present(msg model.Message)
}

// Speaker reads replies aloud. Speak blocks until done or stopped.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}

// Notifier raises a best-effort desktop alert.
type Notifier interface {
	Notify(title, body string) error
}

// LinkOpener opens an external URL.
type LinkOpener interface {
	Open(url string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Reply is one message from ghost.
type Reply struct {
	Text string
	// Speech replaces Text when reading aloud.
	Speech string
	// Silent replies are never spoken.
	Silent bool
}

// Deps are the engine's collaborators. Records is required; the rest
// default to no-ops, the real clock and a real-timer scheduler.
type Deps struct {
	Records   *store.Records
	Scheduler schedule.Scheduler
	Clock     Clock
	Presenter Presenter
	Speaker   Speaker
	Notifier  Notifier
	Links     LinkOpener
	Rand      flow.Rand
	Logger    *zap.Logger
}

// Options tune engine behaviour. Zero values take the defaults.
type Options struct {
	QuizQuestions int
	QuizDeadline  time.Duration
	PomodoroWork  time.Duration
	PomodoroBreak time.Duration
	// HistoryLimit caps the persisted transcript; 0 keeps everything.
	HistoryLimit int
	// Voice is used until the user toggles voice, which is then persisted.
	Voice bool
	// Notify enables desktop alerts when timers fire.
	Notify bool
}

// Engine is safe for concurrent use. Input lines are handled one at a time
// and timer callbacks are serialised with them.
type Engine struct {
	records   *store.Records
	sched     schedule.Scheduler
	clock     Clock
	presenter Presenter
	speaker   Speaker
	notifier  Notifier
	links     LinkOpener
	rng       flow.Rand
	log       *zap.Logger
	opts      Options

	// turn serialises Handle calls, including speech; mu guards state and
	// is also taken by timer callbacks.
	turn sync.Mutex
	mu   sync.Mutex
	// hush is set by Interrupt and silences the rest of the current turn.
	hush atomic.Bool

	flows    *flow.Machine
	table    *intent.Table
	starts   *intent.Table
	handlers map[string]handler
}

type handler func(ctx context.Context, p intent.Params) []Reply

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

type nopPresenter struct{}

func (nopPresenter) Present(model.Message) {}

type nopSpeaker struct{}

func (nopSpeaker) Speak(context.Context, string) error { return nil }
func (nopSpeaker) Stop() {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) error { return nil }

type nopLinks struct{}

func (nopLinks) Open(string) error { return nil }

// New builds an engine. The store's timestamps follow the engine clock.
func New(deps Deps, opts Options) *Engine {
	if deps.Records == nil {
		panic("ghost: Deps.Records is required")
	}
	if deps.Clock == nil {
		deps.Clock = clockFunc(time.Now)
	}
	if deps.Scheduler == nil {
		deps.Scheduler = schedule.NewTimerScheduler()
	}
	if deps.Presenter == nil {
		deps.Presenter = nopPresenter{}
	}
	if deps.Speaker == nil {
		deps.Speaker = nopSpeaker{}
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Links == nil {
		deps.Links = nopLinks{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.QuizDeadline <= 0 {
		opts.QuizDeadline = 30 * time.Second
	}
	if opts.PomodoroWork <= 0 {
		opts.PomodoroWork = 25 * time.Minute
	}
	if opts.PomodoroBreak <= 0 {
		opts.PomodoroBreak = 5 * time.Minute
	}
	deps.Records.Now = deps.Clock.Now

	e := &Engine{
		records:   deps.Records,
		sched:     deps.Scheduler,
		clock:     deps.Clock,
		presenter: deps.Presenter,
		speaker:   deps.Speaker,
		notifier:  deps.Notifier,
		links:     deps.Links,
		rng:       deps.Rand,
		log:       deps.Logger,
		opts:      opts,
		flows:     flow.NewMachine(deps.Rand, flow.Options{QuizQuestions: opts.QuizQuestions}),
	}
	e.buildRules()
	return e
}

// Handle processes one input line and returns ghost's replies in order.
// Replies are also presented, stored in the transcript and spoken when
// voice is on.
func (e *Engine) Handle(ctx context.Context, line string) []Reply {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	e.Interrupt(line)

	e.turn.Lock()
	defer e.turn.Unlock()
	e.hush.Store(false)

	e.mu.Lock()
	e.emit(ctx, model.Message{Text: line, IsUser: true})
	e.mu.Unlock()

	var out []Reply
	pending := line
	for pending != "" {
		if ctx.Err() != nil {
			break
		}
		e.mu.Lock()
		seg, rest := e.next(pending)
		replies := e.dispatch(ctx, seg)
		if rest != "" && e.flows.WholeLine() {
			// The new flow would read the queued commands as its answers.
			e.log.Debug("queued commands dropped", zap.String("rest", rest))
			replies = append(replies, Reply{Text: fmt.Sprintf("I'll finish this first. Say %q again when we're done.", rest)})
			rest = ""
		}
		e.emitReplies(ctx, replies)
		e.mu.Unlock()

		out = append(out, replies...)
		e.speak(ctx, replies)
		pending = rest
	}
	return out
}

// dispatch runs one command. It never panics; a failing handler is logged
// and answered with a generic apology. Callers hold e.mu.
func (e *Engine) dispatch(ctx context.Context, seg string) (replies []Reply) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("handler panicked", zap.String("input", seg), zap.Any("panic", r), zap.Stack("stack"))
			replies = say("⚠️ Something went wrong handling that. Please try again.")
		}
	}()

	if e.flows.Active() {
		if m, ok := e.starts.Classify(seg); ok {
			return e.handlers[m.Name](ctx, m.Params)
		}
		return e.applyStep(ctx, e.flows.Input(seg))
	}

	m, ok := e.table.Classify(seg)
	if !ok {
		e.log.Debug("no intent matched", zap.String("input", seg))
		return say(fallbackReplies[e.rng.Intn(len(fallbackReplies))])
	}
	e.log.Debug("intent matched", zap.String("intent", m.Name), zap.String("input", seg))
	return e.handlers[m.Name](ctx, m.Params)
}

func (e *Engine) emitReplies(ctx context.Context, replies []Reply) {
	for _, r := range replies {
		e.emit(ctx, model.Message{Text: r.Text})
	}
}

// emit presents msg and appends it to the transcript. Transcript failures
// are logged only. Callers hold e.mu.
func (e *Engine) emit(ctx context.Context, msg model.Message) {
	msg.Meta = e.records.NewMeta()
	e.presenter.Present(msg)
	if err := store.AppendCapped(ctx, e.records, model.KindChat, msg, e.opts.HistoryLimit); err != nil {
		e.log.Warn("transcript write failed", zap.Error(err))
	}
}

// Interrupt stops speech in progress when line asks for silence. It does
// not wait for the current turn, so input readers call it as each line
// arrives, before the line is queued for Handle.
func (e *Engine) Interrupt(line string) bool {
	if _, ok := stopSpeech.Match(strings.TrimSpace(line)); !ok {
		return false
	}
	e.hush.Store(true)
	e.speaker.Stop()
	return true
}

func (e *Engine) speak(ctx context.Context, replies []Reply) {
	if len(replies) == 0 || !e.VoiceEnabled(ctx) {
		return
	}
	for _, r := range replies {
		if e.hush.Load() {
			return
		}
		if r.Silent {
			continue
		}
		text := r.Speech
		if text == "" {
			text = r.Text
		}
		if err := e.speaker.Speak(ctx, text); err != nil {
			e.log.Warn("speech failed", zap.Error(err))
			return
		}
	}
}

// VoiceEnabled reports whether replies are spoken: the persisted toggle if
// the user set one, the configured default otherwise.
func (e *Engine) VoiceEnabled(ctx context.Context) bool {
	v, ok, err := e.records.Setting(ctx, settingVoice)
	if err != nil || !ok {
		return e.opts.Voice
	}
	return v == "on"
}

// Greeting is the first message of an interactive session.
func (e *Engine) Greeting(ctx context.Context) []Reply {
	replies := say("Hello! I'm Ghost, your AI assistant. How can I help you today?")
	e.mu.Lock()
	e.emitReplies(ctx, replies)
	e.mu.Unlock()
	e.speak(ctx, replies)
	return replies
}

// Transcript returns the persisted chat history, oldest first.
func (e *Engine) Transcript(ctx context.Context) ([]model.Message, error) {
	return store.Load[model.Message](ctx, e.records, model.KindChat)
}

// fire wraps a timer callback so it runs under the engine lock and its
// replies go through the same emit path as handler replies.
func (e *Engine) fire(name string, fn func(ctx context.Context) []Reply) func() {
	return func() {
		ctx := context.Background()
		e.mu.Lock()
		var replies []Reply
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.log.Error("timer callback panicked", zap.String("timer", name), zap.Any("panic", r))
				}
			}()
			replies = fn(ctx)
		}()
		e.emitReplies(ctx, replies)
		e.mu.Unlock()
		e.speak(ctx, replies)
	}
}

func say(text string) []Reply {
	return []Reply{{Text: text}}
}

// storageReply turns a store error into the user-facing apology. write
// selects the save wording; reads name the kind.
func (e *Engine) storageReply(err error, kind model.Kind, write bool) []Reply {
	var se *store.StorageError
	if errors.As(err, &se) {
		e.log.Error("storage failure", zap.String("op", se.Op), zap.String("kind", string(kind)), zap.Error(se.Err))
	} else {
		e.log.Error("storage failure", zap.String("kind", string(kind)), zap.Error(err))
	}
	if write {
		return say("Sorry, I couldn't save that right now.")
	}
	return say("Sorry, I couldn't read your " + kind.Plural() + " right now.")
}
