package ghost

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/calc"
	"github.com/rcliao/ghost/internal/intent"
)

const (
	qrEndpoint      = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="
	youtubeEndpoint = "https://www.youtube.com/results?search_query="

	settingVoice = "voice"
)

func (e *Engine) math(_ context.Context, p intent.Params) []Reply {
	expr := p.Get("expr")
	if expr == "" {
		expr = p.Get("line")
	}
	v, err := calc.Eval(expr)
	switch {
	case errors.Is(err, calc.ErrInvalidChars):
		return say("❌ Invalid characters in math expression.")
	case errors.Is(err, calc.ErrNotFinite):
		return say("❌ Cannot calculate this expression.")
	case err != nil:
		e.log.Debug("math failed", zap.String("expr", expr), zap.Error(err))
		return say("❌ I couldn't solve this math problem.")
	}
	result := calc.FormatNumber(v)
	return []Reply{{
		Text:   fmt.Sprintf("🧮 Result: %s = %s", calc.Normalize(expr), result),
		Speech: "The answer is " + result,
	}}
}

func (e *Engine) bmi(_ context.Context, p intent.Params) []Reply {
	line := p.Get("line")
	w, _ := strconv.ParseFloat(weightRe.FindStringSubmatch(line)[1], 64)
	h, _ := strconv.ParseFloat(heightRe.FindStringSubmatch(line)[1], 64)
	v, err := calc.BMI(w, h)
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	return say(fmt.Sprintf("🧮 Your BMI is %.1f (%s).", v, calc.BMICategory(v)))
}

func round2(v float64) string {
	return calc.FormatNumber(math.Round(v*100) / 100)
}

func (e *Engine) convertUnit(_ context.Context, p intent.Params) []Reply {
	value, err := strconv.ParseFloat(p.Get("value"), 64)
	if err != nil {
		return say("❌ " + strconv.Quote(p.Get("value")) + " is not a number.")
	}
	v, unit, err := calc.ConvertUnit(value, p.Get("from"), p.Get("to"))
	if err != nil {
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	return say(fmt.Sprintf("📏 %s %s = %s %s", calc.FormatNumber(value), p.Get("from"), round2(v), unit))
}

func (e *Engine) convertCurrency(_ context.Context, p intent.Params) []Reply {
	amount, err := strconv.ParseFloat(p.Get("amount"), 64)
	if err != nil {
		return say("❌ " + strconv.Quote(p.Get("amount")) + " is not a number.")
	}
	from, to := strings.ToUpper(p.Get("from")), strings.ToUpper(p.Get("to"))
	v, err := calc.ConvertCurrency(amount, from, to)
	if err != nil {
		var pe *calc.UnsupportedPairError
		if errors.As(err, &pe) {
			return say(fmt.Sprintf("❌ Unsupported currency pair %s to %s.", pe.From, pe.To))
		}
		return say("❌ " + capitalize(err.Error()) + ".")
	}
	return say(fmt.Sprintf("💱 %s %s = %.2f %s", calc.FormatNumber(amount), from, v, to))
}

func (e *Engine) qr(_ context.Context, p intent.Params) []Reply {
	text := strings.TrimSpace(p.Get("text"))
	link := qrEndpoint + url.QueryEscape(text)
	return []Reply{{
		Text:   fmt.Sprintf("🔳 QR code for %q: %s", text, link),
		Speech: "Here's your QR code.",
	}}
}

func (e *Engine) youtube(_ context.Context, p intent.Params) []Reply {
	q := strings.TrimSpace(p.Get("q"))
	link := youtubeEndpoint + url.QueryEscape(q)
	if err := e.links.Open(link); err != nil {
		e.log.Warn("open link failed", zap.String("url", link), zap.Error(err))
		return say(fmt.Sprintf("🎵 I couldn't open YouTube. Here's the link: %s", link))
	}
	return say(fmt.Sprintf("🎵 Playing %q on YouTube...", q))
}

func (e *Engine) setVoice(ctx context.Context, on bool) []Reply {
	v, label := "off", "OFF"
	if on {
		v, label = "on", "ON"
	}
	if err := e.records.SetSetting(ctx, settingVoice, v); err != nil {
		return e.storageReply(err, "", true)
	}
	return say("🎙️ Voice output is now " + label)
}

func (e *Engine) voiceOn(ctx context.Context, _ intent.Params) []Reply { return e.setVoice(ctx, true) }
func (e *Engine) voiceOff(ctx context.Context, _ intent.Params) []Reply { return e.setVoice(ctx, false) }

const helpText = `Here's what I can do:
• Math: "2+2*3", "what is 25 x 17"
• BMI: "my weight 60kg, height 160cm"
• Convert: "10 km to miles", "100 usd to inr"
• Reminders: "remind me to stretch in 20 minutes", "set timer for 5 minutes", "show reminders"
• Focus: "start pomodoro", "start 5-minute meditation"
• Tasks: "add task: buy milk", "show tasks", "complete task 1", "remove task 2"
• Notes: "note: bread and butter", "search notes bread"
• Habits: "add habit: read", "done habit read"
• Expenses: "spent 250 on lunch", "total expenses"
• Mood, goals, contacts, plan, health logs and flashcards: "show <list>"
• Games: "start quiz", "play rock paper scissors"
• Fun: "tell me a joke", "play lofi on youtube", "qr code for hello"
• Voice: "voice on", "voice off", "stop"
Chain commands with "and" or "then". Numbers shift after a removal, so check the list first.`

func (e *Engine) help(context.Context, intent.Params) []Reply {
	return []Reply{{Text: helpText, Speech: "Here are the things I can help you with!"}}
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything! 😄",
	"Why did the scarecrow win an award? He was outstanding in his field! 🌾",
	"What do you call a fake noodle? An impasta! 🍝",
	"Why don't skeletons fight each other? They don't have the guts. 💀",
	"I told my computer I needed a break, and it said: no problem, I'll go to sleep. 💻",
	"Why was the math book sad? It had too many problems. 📘",
}

func (e *Engine) joke(context.Context, intent.Params) []Reply {
	return say(jokes[e.rng.Intn(len(jokes))])
}
