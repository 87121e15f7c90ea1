// Package model defines the record kinds ghost keeps and their item types.
package model

import "time"

// Kind names one tracked list of records.
type Kind string

const (
	KindTask      Kind = "task"
	KindNote      Kind = "note"
	KindHabit     Kind = "habit"
	KindExpense   Kind = "expense"
	KindMood      Kind = "mood"
	KindGoal      Kind = "goal"
	KindContact   Kind = "contact"
	KindPlan      Kind = "plan"
	KindHealth    Kind = "health"
	KindFlashcard Kind = "flashcard"
	KindChat      Kind = "chat"
)

// Kinds lists every record kind in display order.
var Kinds = []Kind{
	KindTask, KindNote, KindHabit, KindExpense, KindMood, KindGoal,
	KindContact, KindPlan, KindHealth, KindFlashcard, KindChat,
}

// ValidKinds are the allowed record kinds.
var ValidKinds = map[Kind]bool{
	KindTask:      true,
	KindNote:      true,
	KindHabit:     true,
	KindExpense:   true,
	KindMood:      true,
	KindGoal:      true,
	KindContact:   true,
	KindPlan:      true,
	KindHealth:    true,
	KindFlashcard: true,
	KindChat:      true,
}

// Plural returns the word used for a kind in replies ("tasks", "notes").
func (k Kind) Plural() string {
	switch k {
	case KindPlan:
		return "plan items"
	case KindHealth:
		return "health logs"
	case KindChat:
		return "messages"
	}
	return string(k) + "s"
}

// Meta is shared by every record item. ID is stable across deletions;
// the 1-based position in the list is what users see and type.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a to-do entry.
type Task struct {
	Meta
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Note is a free-text note.
type Note struct {
	Meta
	Text string `json:"text"`
}

// Habit tracks the days a habit was done.
type Habit struct {
	Meta
	Name   string   `json:"name"`
	Dates  []string `json:"dates,omitempty"` // YYYY-MM-DD, unique, ascending
	Streak int      `json:"streak"`
}

// Expense is one spending entry.
type Expense struct {
	Meta
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	PaymentMode string  `json:"payment_mode,omitempty"`
}

// Mood is a logged mood.
type Mood struct {
	Meta
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// Goal statuses.
const (
	GoalPending   = "pending"
	GoalCompleted = "completed"
)

// Goal is a tracked goal.
type Goal struct {
	Meta
	Text   string `json:"text"`
	Status string `json:"status"`
}

// Contact is a saved phone contact.
type Contact struct {
	Meta
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PlanItem is an entry in the day plan.
type PlanItem struct {
	Meta
	Text string `json:"text"`
	At   string `json:"at,omitempty"`
}

// HealthLog is one health measurement.
type HealthLog struct {
	Meta
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
}

// Flashcard is a front/back study card.
type Flashcard struct {
	Meta
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Message is one transcript line.
type Message struct {
	Meta
	Text   string `json:"text"`
	IsUser bool   `json:"is_user"`
}
