package ghost

import (
	"regexp"

	"github.com/rcliao/ghost/internal/calc"
	"github.com/rcliao/ghost/internal/intent"
)

// Rule names. Several rules may share a name when they dispatch to the same handler.
const (
	ruleStopSpeech     = "speech.stop"
	ruleClearData      = "data.clear"
	ruleClearChat      = "chat.clear"
	ruleQuiz           = "quiz.start"
	ruleRPS            = "rps.start"
	ruleMath           = "math"
	ruleBMI            = "bmi"
	ruleUnit           = "convert.unit"
	ruleCurrency       = "convert.currency"
	ruleReminderTimed  = "reminder.timed"
	ruleReminderAdd    = "reminder.add"
	ruleTimer          = "timer.set"
	ruleMeditation     = "meditation.start"
	rulePomodoroStart  = "pomodoro.start"
	rulePomodoroStop   = "pomodoro.stop"
	ruleRemindersShow  = "reminders.show"
	ruleRemindersClear = "reminders.clear"
	ruleTaskAdd        = "task.add"
	ruleTaskDone       = "task.done"
	ruleNoteAdd        = "note.add"
	ruleNoteSearch     = "note.search"
	ruleHabitAdd       = "habit.add"
	ruleHabitDone      = "habit.done"
	ruleExpenseAdd     = "expense.add"
	ruleExpenseTotal   = "expense.total"
	ruleMoodLog        = "mood.log"
	ruleGoalAdd        = "goal.add"
	ruleGoalDone       = "goal.done"
	ruleContactAdd     = "contact.add"
	ruleContactFind    = "contact.find"
	rulePlanAdd        = "plan.add"
	ruleHealthLog      = "health.log"
	ruleFlashcardAdd   = "flashcard.add"
	ruleTeachSpanish   = "flashcard.teach"
	ruleRecordsShow    = "records.show"
	ruleRecordsRemove  = "records.remove"
	ruleRecordsClear   = "records.clear"
	ruleHistoryShow    = "history.show"
	ruleQR             = "qr"
	ruleYouTube        = "youtube"
	ruleVoiceOn        = "voice.on"
	ruleVoiceOff       = "voice.off"
	ruleHelp           = "help"
	ruleJoke           = "joke"
	ruleHowAreYou      = "chat.how"
	ruleIdentity       = "chat.identity"
	ruleCreator        = "chat.creator"
	ruleTime           = "chat.time"
	ruleDate           = "chat.date"
	ruleGreeting       = "chat.greeting"
	ruleThanks         = "chat.thanks"
	ruleBye            = "chat.bye"
)

var stopSpeech = intent.Exact(ruleStopSpeech,
	"stop", "shut up", "quiet", "be quiet", "stop talking", "stop speaking", "silence")

const (
	kindWords = `tasks?|to-?dos?|to-?do list|notes?|saved notes|habits?|expenses?|moods?|mood history|mood log|` +
		`goals?|contacts?|plan|today's plan|plan items?|health(?: logs?)?|flashcards?`
	itemWords = `task|note|habit|expense|mood|goal|contact|plan item|plan|health log|flashcard`
	number    = `(?:number |no\.? |#)?(?P<n>\d+)`
	when      = `(?P<when>\d+(?:\.\d+)?\s*-?\s*[a-z]*)`
)

var (
	weightRe = regexp.MustCompile(`(?i)weight\D*?(\d+(?:\.\d+)?)`)
	heightRe = regexp.MustCompile(`(?i)height\D*?(\d+(?:\.\d+)?)`)
	timedRe  = regexp.MustCompile(`(?i)\s(?:in|after)\s+\d`)
)

// route binds a rule to its handler.
type route struct {
	rule intent.Rule
	run  handler
}

// buildRules assembles the intent table. Order is priority: the first
// matching rule wins, so narrower rules come before broader ones.
func (e *Engine) buildRules() {
	routes := []route{
		{stopSpeech, e.stopSpeaking},
		{intent.Exact(ruleClearData, "clear all data", "clear data", "delete all data", "reset everything"), e.startConfirmClear},
		{intent.Exact(ruleClearChat, "clear chat", "clear history", "clear chat history", "delete chat history"), e.startConfirmClearChat},

		// Flow starts.
		{intent.Exact(ruleQuiz, "start quiz", "start a quiz", "quiz", "quiz me", "play quiz", "take a quiz", "let's play a quiz"), e.startQuiz},
		{intent.Exact(ruleRPS, "play rock paper scissors", "rock paper scissors", "rock-paper-scissors", "rps", "play rps",
			"let's play rock paper scissors", "play a game", "let's play a game"), e.startRPS},
		{intent.Regexp(ruleReminderTimed, `^remind me (?:to )?(?P<text>.+?)\s+(?:in|after)\s+`+when+`[.!]*$`), e.remindIn},
		{intent.Regexp(ruleReminderTimed, `^remind me (?:in|after) `+when+`,? (?:to )?(?P<text>.+)$`), e.remindIn},
		{intent.Exact(ruleReminderAdd, "add reminder", "add a reminder", "set reminder", "set a reminder", "new reminder", "remind me"), e.addReminder},
		{intent.Regexp(ruleReminderAdd, `^remind me (?:to )?(?P<text>.+)$`).Where(notTimed), e.addReminder},
		{intent.Regexp(ruleTaskAdd, `^(?:add|new|create)(?: a)? (?:task|todo|to-do)\b\s*:?\s*(?P<text>.*)$`), e.addTask},
		{intent.Regexp(ruleContactAdd, `^(?:add|save|new)(?: a)? contact\b\s*:?\s*(?P<rest>.*)$`), e.addContact},
		{intent.Regexp(ruleExpenseAdd, `^(?:add|log|new|record)(?: an)? expense\b\s*:?\s*(?P<rest>.*)$`), e.addExpense},

		// Structured commands. BMI goes first: "calculate my bmi, weight
		// 60kg, height 160cm" is not arithmetic.
		{intent.Func(ruleBMI, func(l string) bool { return weightRe.MatchString(l) && heightRe.MatchString(l) }), e.bmi},
		{intent.Func(ruleMath, calc.IsExpression), e.math},
		{intent.Regexp(ruleMath, `^(?:what(?:'s| is)|how much is)\s+(?P<expr>.+?)\??$`).Where(mentionsArithmetic), e.math},
		{intent.Regexp(ruleMath, `^(?:calculate|solve|compute|evaluate)\s+(?P<expr>.+?)\??$`), e.math},
		{intent.Regexp(ruleUnit, `^(?:convert\s+|what(?:'s| is)\s+)?(?P<value>-?\d+(?:\.\d+)?)\s*(?P<from>°?[a-z]+)\s+(?:in|to|into)\s+(?P<to>°?[a-z]+)[?.!]*$`).Where(bothUnits), e.convertUnit},
		{intent.Regexp(ruleCurrency, `^(?:convert\s+|what(?:'s| is)\s+)?(?P<amount>\d+(?:\.\d+)?)\s*(?P<from>[a-z]{3})\s+(?:in|to|into)\s+(?P<to>[a-z]{3})[?.!]*$`), e.convertCurrency},
		{intent.Regexp(ruleTimer, `^set (?:a )?timer (?:for )?`+when+`[.!]*$`), e.setTimer},
		{intent.Regexp(ruleMeditation, `^start (?:a )?(?P<n>\d+(?:\.\d+)?)\s*-?\s*(?P<unit>[a-z]*?)\s*meditation[.!]*$`), e.meditate},
		{intent.Exact(rulePomodoroStart, "start pomodoro", "pomodoro", "start a pomodoro", "start focus", "focus mode", "start focus session"), e.startPomodoro},
		{intent.Exact(rulePomodoroStop, "stop pomodoro", "cancel pomodoro", "end pomodoro", "stop focus"), e.stopPomodoro},
		{intent.Exact(ruleRemindersShow, "show reminders", "my reminders", "list reminders", "pending reminders", "show timers"), e.showReminders},
		{intent.Exact(ruleRemindersClear, "clear reminders", "clear all reminders", "cancel reminders", "cancel all reminders", "delete all reminders"), e.clearReminders},

		// Records.
		{intent.Regexp(ruleTaskAdd, `^(?:add|todo)\s*:\s*(?P<text>.+)$`), e.addTask},
		{intent.Regexp(ruleTaskDone, `^(?:complete|finish|done|check off|mark)(?: task)? `+number+`(?: as done| done| complete)?[.!]*$`), e.completeTask},
		{intent.Regexp(ruleNoteSearch, `^(?:search|find) (?:my )?notes? (?:for |about )?(?P<q>.+)$`), e.searchNotes},
		{intent.Regexp(ruleNoteAdd, `^(?:note|save)\s*:\s*(?P<text>.+)$`), e.addNote},
		{intent.Regexp(ruleNoteAdd, `^(?:add|take|make|new)(?: a)? note\s*:?\s*(?P<text>.+)$`), e.addNote},
		{intent.Regexp(ruleHabitAdd, `^(?:add|track|new|start)(?: a)? habit\s*:?\s*(?P<name>.+)$`), e.addHabit},
		{intent.Regexp(ruleHabitDone, `^(?:mark|log|did|done|completed?) habit\s*:?\s*(?P<name>.+?)(?: as done| done| today)?[.!]*$`), e.habitDone},
		{intent.Regexp(ruleExpenseAdd, `^(?:i )?spent (?P<rest>.+)$`), e.addExpense},
		{intent.Exact(ruleExpenseTotal, "total expenses", "expense total", "expenses total", "how much did i spend", "how much have i spent", "show total expenses"), e.expenseTotal},
		{intent.Regexp(ruleMoodLog, `^(?:log mood|mood|i(?:'m| am) feeling|i feel|feeling)(?:\s*:\s*|\s+)(?P<mood>\pL+)(?:[\s,.-]+(?:because\s+)?(?P<note>.*))?$`), e.logMood},
		{intent.Regexp(ruleGoalAdd, `^(?:add|set|new)(?: a)? goal\s*:?\s*(?P<text>.+)$`), e.addGoal},
		{intent.Regexp(ruleGoalDone, `^(?:complete|achieve|achieved|finish|finished|mark) goal `+number+`(?: as done| done| complete)?[.!]*$`), e.completeGoal},
		{intent.Regexp(ruleContactFind, `^(?:find|search|look ?up) contacts? (?:for )?(?P<q>.+)$`), e.findContact},
		{intent.Regexp(ruleContactFind, `^what(?:'s| is) (?P<q>.+?)'s (?:phone )?number\??$`), e.findContact},
		{intent.Regexp(rulePlanAdd, `^(?:add to (?:my |today's )?plan\s*:?|plan\s*:)\s*(?P<text>.+?)(?:\s+at\s+(?P<at>\d{1,2}(?::\d{2})?\s*(?:am|pm)?))?$`), e.addPlan},
		{intent.Regexp(ruleHealthLog, `^(?:log|record|track) (?P<metric>[a-z][a-z ]*?)\s*:?\s*(?P<value>\d+(?:\.\d+)?)\s*(?P<unit>[a-z%/]*)[.!]*$`), e.logHealth},
		{intent.Regexp(ruleFlashcardAdd, `^(?:add |new )?flashcard\s*:?\s*(?P<front>.+?)\s*(?:=|->|\|)\s*(?P<back>.+)$`), e.addFlashcard},
		{intent.Regexp(ruleTeachSpanish, `^teach me (?:(?P<n>\d+) )?(?:new )?spanish words?[.!]*$`), e.teachSpanish},
		{intent.Regexp(ruleRecordsShow, `^(?:show|list|view|display|see)(?: me)?(?: all)?(?: my)? (?P<kind>`+kindWords+`)[.!?]*$`), e.showRecords},
		{intent.Regexp(ruleRecordsShow, `^(?:my|all) (?P<kind>`+kindWords+`)[.!?]*$`), e.showRecords},
		{intent.Regexp(ruleRecordsRemove, `^(?:remove|delete) (?P<kind>`+itemWords+`) `+number+`[.!]*$`), e.removeRecord},
		{intent.Regexp(ruleRecordsClear, `^(?:clear|delete|remove) (?:all )?(?:my )?(?P<kind>`+kindWords+`)[.!]*$`), e.clearRecords},
		{intent.Exact(ruleHistoryShow, "show history", "chat history", "show chat history"), e.showHistory},

		// Links and settings.
		{intent.Regexp(ruleQR, `^(?:generate|create|make|show)(?: me)?(?: a)? qr(?: code)?(?: for| of)?\s*:?\s*(?P<text>.+)$`), e.qr},
		{intent.Regexp(ruleYouTube, `^play (?P<q>.+?) on youtube[.!]*$`), e.youtube},
		{intent.Regexp(ruleYouTube, `^play (?:the |a |some )?(?:song|music)\s+(?P<q>.+)$`), e.youtube},
		{intent.Regexp(ruleYouTube, `^play (?P<q>.+?)\s+(?:song|music)[.!]*$`), e.youtube},
		{intent.Exact(ruleVoiceOn, "voice on", "enable voice", "turn on voice", "turn voice on", "unmute"), e.voiceOn},
		{intent.Exact(ruleVoiceOff, "voice off", "disable voice", "turn off voice", "turn voice off", "mute"), e.voiceOff},
		{intent.Contains(ruleHelp, "what can you do", "help", "features", "commands"), e.help},
		{intent.Words(ruleJoke, "joke", "jokes", "funny"), e.joke},

		// Conversation.
		{intent.Contains(ruleHowAreYou, "how are you", "how r u", "how's it going", "how are things"), e.howAreYou},
		{intent.Contains(ruleIdentity, "your name", "who are you", "what are you"), e.identity},
		{intent.Contains(ruleCreator, "who made you", "who created you", "your owner", "who built you", "your creator"), e.creator},
		{intent.Regexp(ruleTime, `\b(?:what(?:'s| is) the time|what time is it|current time|time now|tell me the time)\b`), e.tellTime},
		{intent.Regexp(ruleDate, `\b(?:what(?:'s| is) the date|today's date|what day is it|what(?:'s| is) today|current date|date today)\b`), e.tellDate},
		{intent.Words(ruleGreeting, "hi", "hello", "hey", "hlo", "namaste", "good morning", "good afternoon", "good evening"), e.greet},
		{intent.Words(ruleThanks, "thanks", "thank you", "thx"), e.thanks},
		{intent.Words(ruleBye, "bye", "goodbye", "see you", "good night"), e.bye},
	}

	e.handlers = make(map[string]handler, len(routes))
	rules := make([]intent.Rule, 0, len(routes))
	for _, r := range routes {
		rules = append(rules, r.rule)
		e.handlers[r.rule.Name] = r.run
	}
	e.table = intent.NewTable(rules...)

	// Checked while a flow is active so a second start is refused rather
	// than read as an answer.
	e.starts = intent.NewTable(
		intent.Exact(ruleQuiz, "start quiz", "start a quiz", "quiz me", "play quiz", "take a quiz"),
		intent.Exact(ruleRPS, "play rock paper scissors", "rock paper scissors", "play rps", "play a game"),
		intent.Exact(ruleTaskAdd, "add task", "add a task", "new task"),
		intent.Exact(ruleReminderAdd, "add reminder", "set reminder", "set a reminder", "new reminder"),
		intent.Exact(ruleContactAdd, "add contact", "add a contact", "new contact"),
		intent.Exact(ruleExpenseAdd, "add expense", "add an expense", "new expense", "log expense"),
	)
}

func notTimed(line string, _ intent.Params) bool {
	return !timedRe.MatchString(line)
}

func mentionsArithmetic(_ string, p intent.Params) bool {
	return calc.MentionsArithmetic(p.Get("expr"))
}

func bothUnits(_ string, p intent.Params) bool {
	return calc.IsUnit(p.Get("from")) && calc.IsUnit(p.Get("to"))
}
