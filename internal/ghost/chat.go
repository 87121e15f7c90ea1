package ghost

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/rcliao/ghost/internal/intent"
)

var fallbackReplies = []string{
	"I'm not sure I understand. Try 'help' to see what I can do.",
	"Hmm, I didn't get that. Could you rephrase?",
	"Sorry, I don't know how to help with that yet. Say 'help' for ideas.",
	"I'm still learning! Try asking me something else.",
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// stopSpeaking only acknowledges; Handle has already stopped the speaker.
func (e *Engine) stopSpeaking(context.Context, intent.Params) []Reply {
	return []Reply{{Text: "Okay, I'm stopping right away. 😶", Silent: true}}
}

func (e *Engine) greet(context.Context, intent.Params) []Reply {
	return say("Hi there! I'm Ghost. How can I help you today?")
}

func (e *Engine) howAreYou(context.Context, intent.Params) []Reply {
	return say("I'm doing great, thanks! How about you?")
}

func (e *Engine) identity(context.Context, intent.Params) []Reply {
	return say("I'm Ghost, your AI friend!")
}

func (e *Engine) creator(context.Context, intent.Params) []Reply {
	return say("I'm Ghost, made by Arpit Pandey!")
}

func (e *Engine) tellTime(context.Context, intent.Params) []Reply {
	return say("🕒 It's " + e.clock.Now().Format("3:04 PM") + ".")
}

func (e *Engine) tellDate(context.Context, intent.Params) []Reply {
	return say("📅 Today is " + e.clock.Now().Format("Monday, January 2, 2006") + ".")
}

func (e *Engine) thanks(context.Context, intent.Params) []Reply {
	return say("You're welcome! 😊")
}

func (e *Engine) bye(context.Context, intent.Params) []Reply {
	return say("Goodbye! 👋 Come back anytime.")
}
