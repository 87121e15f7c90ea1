package ghost

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rcliao/ghost/internal/flow"
	"github.com/rcliao/ghost/internal/intent"
	"github.com/rcliao/ghost/internal/model"
	"github.com/rcliao/ghost/internal/store"
)

const dateLayout = "2006-01-02"

var (
	expenseRe = regexp.MustCompile(`(?i)^(?P<amount>(?:rs\.?|₹|\$|€|inr|usd|eur)?\s*\d[\d,]*(?:\.\d+)?(?:\s*(?:rupees|dollars|euros|inr|usd|eur|rs)\b\.?)?)\s*(?:(?:on|for|at)\s+)?(?P<desc>.*)$`)
	contactRe = regexp.MustCompile(`^(?P<name>.*?)[\s,:-]*(?P<phone>\+?\d[\d\s\-().]{2,})$`)

	titleCase = cases.Title(language.English)
)

// noun is the singular word for kind used in replies.
func noun(kind model.Kind) string {
	switch kind {
	case model.KindPlan:
		return "plan item"
	case model.KindHealth:
		return "health log"
	case model.KindChat:
		return "message"
	}
	return string(kind)
}

func kindCount(n int, kind model.Kind) string {
	if n == 1 {
		return "1 " + noun(kind)
	}
	return fmt.Sprintf("%d %s", n, kind.Plural())
}

func count(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// kindFromWord maps the words users type ("to-do list", "today's plan",
// "saved notes") to a record kind.
func kindFromWord(w string) (model.Kind, bool) {
	w = strings.ToLower(strings.TrimSpace(w))
	switch {
	case strings.Contains(w, "plan"):
		return model.KindPlan, true
	case strings.Contains(w, "task"), strings.Contains(w, "todo"), strings.Contains(w, "to-do"):
		return model.KindTask, true
	case strings.Contains(w, "note"):
		return model.KindNote, true
	case strings.Contains(w, "habit"):
		return model.KindHabit, true
	case strings.Contains(w, "expense"):
		return model.KindExpense, true
	case strings.Contains(w, "mood"):
		return model.KindMood, true
	case strings.Contains(w, "goal"):
		return model.KindGoal, true
	case strings.Contains(w, "contact"):
		return model.KindContact, true
	case strings.Contains(w, "health"):
		return model.KindHealth, true
	case strings.Contains(w, "flashcard"):
		return model.KindFlashcard, true
	}
	return "", false
}

// indexReply answers an out-of-range index, or falls back to the storage
// apology for any other error.
func (e *Engine) indexReply(err error, kind model.Kind, n int) []Reply {
	var ie *store.IndexError
	if errors.As(err, &ie) {
		return say(fmt.Sprintf("❌ Invalid %s number %d. You have %s.", noun(kind), n, kindCount(ie.Len, kind)))
	}
	return e.storageReply(err, kind, true)
}

// index parses the n param. Bad input becomes index 0, which every list rejects.
func index(p intent.Params) int {
	n, err := strconv.Atoi(p.Get("n"))
	if err != nil {
		return 0
	}
	return n
}

// view describes how one record kind is listed and removed.
type view struct {
	header string
	hint   string
	rows   func(ctx context.Context, e *Engine) ([]string, error)
	remove func(ctx context.Context, e *Engine, n int) (string, error)
}

func viewOf[T any](kind model.Kind, header, hint string, row func(e *Engine, it T) string, label func(T) string) view {
	return view{
		header: header,
		hint:   hint,
		rows: func(ctx context.Context, e *Engine) ([]string, error) {
			items, err := store.Load[T](ctx, e.records, kind)
			if err != nil {
				return nil, err
			}
			out := make([]string, len(items))
			for i, it := range items {
				out[i] = fmt.Sprintf("%d. %s", i+1, row(e, it))
			}
			return out, nil
		},
		remove: func(ctx context.Context, e *Engine, n int) (string, error) {
			it, err := store.RemoveAt[T](ctx, e.records, kind, n)
			if err != nil {
				return "", err
			}
			return label(it), nil
		},
	}
}

var views = map[model.Kind]view{
	model.KindTask: viewOf(model.KindTask, "📋 Your tasks:", "Try 'add task: buy milk'.",
		func(_ *Engine, t model.Task) string {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			return box + " " + t.Text
		},
		func(t model.Task) string { return t.Text }),
	model.KindNote: viewOf(model.KindNote, "📒 Your notes:", "Try 'note: call the plumber'.",
		func(e *Engine, n model.Note) string {
			return fmt.Sprintf("%s (%s)", n.Text, humanize.RelTime(n.CreatedAt, e.clock.Now(), "ago", "from now"))
		},
		func(n model.Note) string { return n.Text }),
	model.KindHabit: viewOf(model.KindHabit, "🔁 Your habits:", "Try 'add habit: read 10 pages'.",
		func(_ *Engine, h model.Habit) string {
			return fmt.Sprintf("%s (streak: %s)", h.Name, count(h.Streak, "day"))
		},
		func(h model.Habit) string { return h.Name }),
	model.KindExpense: viewOf(model.KindExpense, "💰 Your expenses:", "Try 'spent 250 on lunch'.",
		func(_ *Engine, x model.Expense) string { return expenseLine(x) },
		func(x model.Expense) string { return expenseLine(x) }),
	model.KindMood: viewOf(model.KindMood, "🙂 Your mood log:", "Try 'mood: happy'.",
		func(_ *Engine, m model.Mood) string {
			line := fmt.Sprintf("%s (%s)", m.Mood, m.CreatedAt.Local().Format("Jan 2 3:04 PM"))
			if m.Note != "" {
				line += ": " + m.Note
			}
			return line
		},
		func(m model.Mood) string { return m.Mood }),
	model.KindGoal: viewOf(model.KindGoal, "🎯 Your goals:", "Try 'add goal: run a 5k'.",
		func(_ *Engine, g model.Goal) string {
			if g.Status == model.GoalCompleted {
				return g.Text + " ✅"
			}
			return g.Text
		},
		func(g model.Goal) string { return g.Text }),
	model.KindContact: viewOf(model.KindContact, "📇 Your contacts:", "Try 'add contact John 555 1234'.",
		func(_ *Engine, c model.Contact) string { return c.Name + ": " + c.Phone },
		func(c model.Contact) string { return c.Name }),
	model.KindPlan: viewOf(model.KindPlan, "🗓️ Today's plan:", "Try 'plan: gym at 7am'.",
		func(_ *Engine, p model.PlanItem) string {
			if p.At != "" {
				return p.At + " " + p.Text
			}
			return p.Text
		},
		func(p model.PlanItem) string { return p.Text }),
	model.KindHealth: viewOf(model.KindHealth, "❤️ Your health logs:", "Try 'log weight 70 kg'.",
		func(_ *Engine, h model.HealthLog) string { return healthLine(h) },
		func(h model.HealthLog) string { return healthLine(h) }),
	model.KindFlashcard: viewOf(model.KindFlashcard, "🃏 Your flashcards:", "Try 'flashcard: hola = hello'.",
		func(_ *Engine, f model.Flashcard) string { return f.Front + " = " + f.Back },
		func(f model.Flashcard) string { return f.Front }),
}

func expenseLine(x model.Expense) string {
	line := humanize.Commaf(x.Amount)
	if x.Description != "" {
		line += " for " + x.Description
	}
	var extra []string
	if x.Category != "" {
		extra = append(extra, x.Category)
	}
	if x.PaymentMode != "" {
		extra = append(extra, x.PaymentMode)
	}
	if len(extra) > 0 {
		line += " (" + strings.Join(extra, ", ") + ")"
	}
	return line
}

func healthLine(h model.HealthLog) string {
	line := h.Metric + ": " + strconv.FormatFloat(h.Value, 'f', -1, 64)
	if h.Unit != "" {
		line += " " + h.Unit
	}
	return line
}

func (e *Engine) showRecords(ctx context.Context, p intent.Params) []Reply {
	kind, ok := kindFromWord(p.Get("kind"))
	if !ok {
		return say("I don't keep a list called " + strconv.Quote(p.Get("kind")) + ".")
	}
	return e.list(ctx, kind)
}

func (e *Engine) list(ctx context.Context, kind model.Kind) []Reply {
	v := views[kind]
	rows, err := v.rows(ctx, e)
	if err != nil {
		return e.storageReply(err, kind, false)
	}
	if len(rows) == 0 {
		return say(fmt.Sprintf("You have no %s yet. %s", kind.Plural(), v.hint))
	}
	text := v.header + "\n" + strings.Join(rows, "\n")
	if kind == model.KindExpense {
		total, err := e.totalSpent(ctx)
		if err != nil {
			return e.storageReply(err, kind, false)
		}
		text += "\nTotal: " + humanize.Commaf(total)
	}
	return []Reply{{Text: text, Speech: fmt.Sprintf("You have %s.", kindCount(len(rows), kind))}}
}

func (e *Engine) removeRecord(ctx context.Context, p intent.Params) []Reply {
	kind, ok := kindFromWord(p.Get("kind"))
	if !ok {
		return say("I don't keep a list called " + strconv.Quote(p.Get("kind")) + ".")
	}
	n := index(p)
	label, err := views[kind].remove(ctx, e, n)
	if err != nil {
		return e.indexReply(err, kind, n)
	}
	e.log.Debug("record removed", zap.String("kind", string(kind)), zap.Int("index", n))
	return say(fmt.Sprintf("🗑️ Removed %s %d: %s", noun(kind), n, label))
}

func (e *Engine) clearRecords(ctx context.Context, p intent.Params) []Reply {
	kind, ok := kindFromWord(p.Get("kind"))
	if !ok {
		return say("I don't keep a list called " + strconv.Quote(p.Get("kind")) + ".")
	}
	if err := e.records.Clear(ctx, kind); err != nil {
		return e.storageReply(err, kind, true)
	}
	return say(fmt.Sprintf("🧹 Cleared all your %s.", kind.Plural()))
}

// Tasks.

func (e *Engine) addTask(ctx context.Context, p intent.Params) []Reply {
	text := strings.TrimSpace(p.Get("text"))
	if text == "" {
		return e.startEntry(ctx, flow.EntryTask, nil)
	}
	return e.saveTask(ctx, text)
}

func (e *Engine) saveTask(ctx context.Context, text string) []Reply {
	n, err := store.Append(ctx, e.records, model.KindTask, model.Task{Meta: e.records.NewMeta(), Text: text})
	if err != nil {
		return e.storageReply(err, model.KindTask, true)
	}
	return say(fmt.Sprintf("✅ Task %d added: %s", n, text))
}

func (e *Engine) completeTask(ctx context.Context, p intent.Params) []Reply {
	n := index(p)
	t, err := store.UpdateAt(ctx, e.records, model.KindTask, n, func(t *model.Task) error {
		t.Done = true
		return nil
	})
	if err != nil {
		return e.indexReply(err, model.KindTask, n)
	}
	return say(fmt.Sprintf("✅ Marked task %d as done: %s", n, t.Text))
}

// Notes.

func (e *Engine) addNote(ctx context.Context, p intent.Params) []Reply {
	text := strings.TrimSpace(p.Get("text"))
	n, err := store.Append(ctx, e.records, model.KindNote, model.Note{Meta: e.records.NewMeta(), Text: text})
	if err != nil {
		return e.storageReply(err, model.KindNote, true)
	}
	return say(fmt.Sprintf("📝 Note %d saved: %s", n, text))
}

func (e *Engine) searchNotes(ctx context.Context, p intent.Params) []Reply {
	q := strings.TrimSpace(p.Get("q"))
	results, err := store.Search(ctx, e.records, model.KindNote, q, func(n model.Note) string { return n.Text })
	if err != nil {
		return e.storageReply(err, model.KindNote, false)
	}
	if len(results) == 0 {
		return say(fmt.Sprintf("🔍 No notes mention %q.", q))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Notes matching %q:", q)
	for _, r := range results {
		fmt.Fprintf(&b, "\n%d. %s", r.Index, r.Item.Text)
	}
	return []Reply{{Text: b.String(), Speech: fmt.Sprintf("I found %s.", count(len(results), "note"))}}
}

// Habits.

func (e *Engine) addHabit(ctx context.Context, p intent.Params) []Reply {
	name := strings.TrimSpace(p.Get("name"))
	habits, err := store.Load[model.Habit](ctx, e.records, model.KindHabit)
	if err != nil {
		return e.storageReply(err, model.KindHabit, false)
	}
	for i, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return say(fmt.Sprintf("You're already tracking %q as habit %d.", h.Name, i+1))
		}
	}
	habits = append(habits, model.Habit{Meta: e.records.NewMeta(), Name: name})
	if err := store.Save(ctx, e.records, model.KindHabit, habits); err != nil {
		return e.storageReply(err, model.KindHabit, true)
	}
	return say(fmt.Sprintf("🔁 Now tracking habit: %s. Say 'done habit %s' each day you do it.", name, name))
}

func (e *Engine) habitDone(ctx context.Context, p intent.Params) []Reply {
	name := strings.TrimSpace(p.Get("name"))
	habits, err := store.Load[model.Habit](ctx, e.records, model.KindHabit)
	if err != nil {
		return e.storageReply(err, model.KindHabit, false)
	}
	i := -1
	for j, h := range habits {
		if strings.EqualFold(h.Name, name) {
			i = j
			break
		}
	}
	if i < 0 {
		return say(fmt.Sprintf("I'm not tracking a habit called %q. Say 'add habit: %s' first.", name, name))
	}

	now := e.clock.Now()
	h := &habits[i]
	today := now.Format(dateLayout)
	if containsString(h.Dates, today) {
		return say(fmt.Sprintf("You already did %s today. Streak: %s 🔥", h.Name, count(h.Streak, "day")))
	}
	h.Dates = append(h.Dates, today)
	sort.Strings(h.Dates)
	h.Streak = Streak(h.Dates, now)
	if err := store.Save(ctx, e.records, model.KindHabit, habits); err != nil {
		return e.storageReply(err, model.KindHabit, true)
	}
	return say(fmt.Sprintf("🔥 Nice! %s done for today. Streak: %s.", h.Name, count(h.Streak, "day")))
}

// Streak counts consecutive days in dates ending on the day of now.
func Streak(dates []string, now time.Time) int {
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d] = true
	}
	n := 0
	for day := now; seen[day.Format(dateLayout)]; day = day.AddDate(0, 0, -1) {
		n++
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Expenses.

// parseExpense reads "250 on lunch", "₹1,200 for rent" or a bare amount.
// ok is false when the text doesn't start with an amount.
func parseExpense(rest string) (amount, desc string, ok bool) {
	m := expenseRe.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return "", "", false
	}
	a, err := flow.ParseAmount(m[expenseRe.SubexpIndex("amount")])
	if err != nil {
		return "", "", false
	}
	return a, strings.TrimSpace(m[expenseRe.SubexpIndex("desc")]), true
}

func (e *Engine) addExpense(ctx context.Context, p intent.Params) []Reply {
	rest := strings.TrimSpace(p.Get("rest"))
	if rest == "" {
		return e.startEntry(ctx, flow.EntryExpense, nil)
	}
	amount, desc, ok := parseExpense(rest)
	if !ok {
		return say("❌ I couldn't find an amount in that. Try 'spent 250 on lunch'.")
	}
	if desc == "" {
		return e.startEntry(ctx, flow.EntryExpense, map[string]string{flow.FieldAmount: amount})
	}
	v, _ := strconv.ParseFloat(amount, 64)
	return e.saveExpense(ctx, model.Expense{Amount: v, Description: desc})
}

func (e *Engine) saveExpense(ctx context.Context, x model.Expense) []Reply {
	x.Meta = e.records.NewMeta()
	if _, err := store.Append(ctx, e.records, model.KindExpense, x); err != nil {
		return e.storageReply(err, model.KindExpense, true)
	}
	return say("💰 Expense added: " + expenseLine(x))
}

func (e *Engine) totalSpent(ctx context.Context) (float64, error) {
	items, err := store.Load[model.Expense](ctx, e.records, model.KindExpense)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, x := range items {
		total += x.Amount
	}
	return total, nil
}

func (e *Engine) expenseTotal(ctx context.Context, _ intent.Params) []Reply {
	n, err := e.records.Count(ctx, model.KindExpense)
	if err != nil {
		return e.storageReply(err, model.KindExpense, false)
	}
	total, err := e.totalSpent(ctx)
	if err != nil {
		return e.storageReply(err, model.KindExpense, false)
	}
	return say(fmt.Sprintf("💰 You've spent %s in total across %s.", humanize.Commaf(total), kindCount(n, model.KindExpense)))
}

// Mood.

func (e *Engine) logMood(ctx context.Context, p intent.Params) []Reply {
	m := model.Mood{
		Meta: e.records.NewMeta(),
		Mood: strings.ToLower(p.Get("mood")),
		Note: strings.TrimSpace(p.Get("note")),
	}
	if _, err := store.Append(ctx, e.records, model.KindMood, m); err != nil {
		return e.storageReply(err, model.KindMood, true)
	}
	return say(fmt.Sprintf("🙂 Logged your mood: %s. Thanks for sharing!", m.Mood))
}

// Goals.

func (e *Engine) addGoal(ctx context.Context, p intent.Params) []Reply {
	text := strings.TrimSpace(p.Get("text"))
	g := model.Goal{Meta: e.records.NewMeta(), Text: text, Status: model.GoalPending}
	n, err := store.Append(ctx, e.records, model.KindGoal, g)
	if err != nil {
		return e.storageReply(err, model.KindGoal, true)
	}
	return say(fmt.Sprintf("🎯 Goal %d set: %s", n, text))
}

func (e *Engine) completeGoal(ctx context.Context, p intent.Params) []Reply {
	n := index(p)
	g, err := store.UpdateAt(ctx, e.records, model.KindGoal, n, func(g *model.Goal) error {
		g.Status = model.GoalCompleted
		return nil
	})
	if err != nil {
		return e.indexReply(err, model.KindGoal, n)
	}
	return say(fmt.Sprintf("🏆 Goal %d achieved: %s. Well done!", n, g.Text))
}

// Contacts.

func (e *Engine) addContact(ctx context.Context, p intent.Params) []Reply {
	rest := strings.TrimSpace(p.Get("rest"))
	if rest == "" {
		return e.startEntry(ctx, flow.EntryContact, nil)
	}
	m := contactRe.FindStringSubmatch(rest)
	if m == nil || strings.TrimSpace(m[contactRe.SubexpIndex("name")]) == "" {
		return e.startEntry(ctx, flow.EntryContact, map[string]string{flow.FieldName: rest})
	}
	phone, err := flow.ParsePhone(m[contactRe.SubexpIndex("phone")])
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	return e.saveContact(ctx, m[contactRe.SubexpIndex("name")], phone)
}

func (e *Engine) saveContact(ctx context.Context, name, phone string) []Reply {
	c := model.Contact{
		Meta:  e.records.NewMeta(),
		Name:  titleCase.String(strings.TrimSpace(name)),
		Phone: phone,
	}
	if _, err := store.Append(ctx, e.records, model.KindContact, c); err != nil {
		return e.storageReply(err, model.KindContact, true)
	}
	return say(fmt.Sprintf("📇 Saved %s: %s", c.Name, c.Phone))
}

func (e *Engine) findContact(ctx context.Context, p intent.Params) []Reply {
	q := strings.TrimSpace(p.Get("q"))
	results, err := store.Search(ctx, e.records, model.KindContact, q, func(c model.Contact) string { return c.Name })
	if err != nil {
		return e.storageReply(err, model.KindContact, false)
	}
	if len(results) == 0 {
		return say(fmt.Sprintf("📇 I couldn't find a contact named %q.", q))
	}
	var lines []string
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("📇 %s: %s", r.Item.Name, r.Item.Phone))
	}
	return say(strings.Join(lines, "\n"))
}

// Plan, health and flashcards.

func (e *Engine) addPlan(ctx context.Context, p intent.Params) []Reply {
	item := model.PlanItem{Meta: e.records.NewMeta(), Text: strings.TrimSpace(p.Get("text")), At: strings.TrimSpace(p.Get("at"))}
	n, err := store.Append(ctx, e.records, model.KindPlan, item)
	if err != nil {
		return e.storageReply(err, model.KindPlan, true)
	}
	if item.At != "" {
		return say(fmt.Sprintf("🗓️ Added to today's plan (%d): %s at %s", n, item.Text, item.At))
	}
	return say(fmt.Sprintf("🗓️ Added to today's plan (%d): %s", n, item.Text))
}

func (e *Engine) logHealth(ctx context.Context, p intent.Params) []Reply {
	v, err := strconv.ParseFloat(p.Get("value"), 64)
	if err != nil {
		return say("❌ " + strconv.Quote(p.Get("value")) + " is not a number.")
	}
	h := model.HealthLog{
		Meta:   e.records.NewMeta(),
		Metric: strings.ToLower(strings.TrimSpace(p.Get("metric"))),
		Value:  v,
		Unit:   strings.ToLower(p.Get("unit")),
	}
	if _, err := store.Append(ctx, e.records, model.KindHealth, h); err != nil {
		return e.storageReply(err, model.KindHealth, true)
	}
	return say("❤️ Logged " + healthLine(h))
}

func (e *Engine) addFlashcard(ctx context.Context, p intent.Params) []Reply {
	f := model.Flashcard{Meta: e.records.NewMeta(), Front: strings.TrimSpace(p.Get("front")), Back: strings.TrimSpace(p.Get("back"))}
	n, err := store.Append(ctx, e.records, model.KindFlashcard, f)
	if err != nil {
		return e.storageReply(err, model.KindFlashcard, true)
	}
	return say(fmt.Sprintf("🃏 Flashcard %d added: %s = %s", n, f.Front, f.Back))
}

var spanishWords = [][2]string{
	{"hola", "hello"}, {"adiós", "goodbye"}, {"gracias", "thank you"}, {"por favor", "please"},
	{"agua", "water"}, {"casa", "house"}, {"perro", "dog"}, {"gato", "cat"},
	{"libro", "book"}, {"amigo", "friend"}, {"comida", "food"}, {"tiempo", "time"},
	{"escuela", "school"}, {"trabajo", "work"}, {"ciudad", "city"}, {"sol", "sun"},
	{"luna", "moon"}, {"feliz", "happy"}, {"grande", "big"}, {"pequeño", "small"},
}

// teachSpanish saves n words from the built-in list as flashcards.
func (e *Engine) teachSpanish(ctx context.Context, p intent.Params) []Reply {
	n := 5
	if v, err := strconv.Atoi(p.Get("n")); err == nil && v > 0 {
		n = v
	}
	if n > len(spanishWords) {
		n = len(spanishWords)
	}

	cards, err := store.Load[model.Flashcard](ctx, e.records, model.KindFlashcard)
	if err != nil {
		return e.storageReply(err, model.KindFlashcard, false)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🇪🇸 Here are %s in Spanish:", count(n, "word"))
	for i, j := range e.rng.Perm(len(spanishWords))[:n] {
		w := spanishWords[j]
		cards = append(cards, model.Flashcard{Meta: e.records.NewMeta(), Front: w[0], Back: w[1]})
		fmt.Fprintf(&b, "\n%d. %s = %s", i+1, w[0], w[1])
	}
	if err := store.Save(ctx, e.records, model.KindFlashcard, cards); err != nil {
		return e.storageReply(err, model.KindFlashcard, true)
	}
	b.WriteString("\nI saved them as flashcards. Say 'show flashcards' to review.")
	return say(b.String())
}

// History.

const historyShown = 20

func (e *Engine) showHistory(ctx context.Context, _ intent.Params) []Reply {
	msgs, err := e.Transcript(ctx)
	if err != nil {
		return e.storageReply(err, model.KindChat, false)
	}
	// Drop the line that asked for the history. Replies to commands queued
	// before it in the same line follow it and are kept.
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsUser {
			msgs = append(msgs[:i], msgs[i+1:]...)
			break
		}
	}
	if len(msgs) == 0 {
		return say("There's no chat history yet.")
	}
	if len(msgs) > historyShown {
		msgs = msgs[len(msgs)-historyShown:]
	}
	var b strings.Builder
	b.WriteString("📜 Recent messages:")
	for _, m := range msgs {
		who := "Ghost"
		if m.IsUser {
			who = "You"
		}
		fmt.Fprintf(&b, "\n%s: %s", who, m.Text)
	}
	return []Reply{{Text: b.String(), Speech: "Here's your recent chat history."}}
}

func (e *Engine) clearHistory(ctx context.Context) []Reply {
	if err := e.records.Clear(ctx, model.KindChat); err != nil {
		return e.storageReply(err, model.KindChat, true)
	}
	return say("🧹 Chat history cleared.")
}
