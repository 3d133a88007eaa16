// Package assistant implements the scripted table-side assistant.
//
// Every reply comes from an ordered rule table evaluated against the
// lower-cased message; the first rule that matches and produces a reply wins.
// There is no model inference.
package assistant

import (
	"strings"
	"time"
	"unicode/utf8"

	"tableside/internal/model"
)

// Emotion tags the tone of a reply for the client avatar.
type Emotion string

const (
	EmotionHappy         Emotion = "happy"
	EmotionThinking      Emotion = "thinking"
	EmotionExcited       Emotion = "excited"
	EmotionUnderstanding Emotion = "understanding"
)

const (
	typingDelay     = 1000 * time.Millisecond
	longTypingDelay = 1500 * time.Millisecond
	longMessage     = 50
)

// Source provides the items the assistant may suggest.
type Source interface {
	Available() []model.MenuItem
	Currency() string
}

// Reply is one assistant turn.
type Reply struct {
	Text          string           `json:"text"`
	HTML          string           `json:"html"`
	Emotion       Emotion          `json:"emotion"`
	Suggestions   []model.MenuItem `json:"suggestions,omitempty"`
	QuickReplies  []string         `json:"quickReplies,omitempty"`
	TypingDelayMs int64            `json:"typingDelayMs"`
}

// Assistant answers customer messages. It holds no per-table state;
// callers pass the table's Memory on every turn.
type Assistant struct {
	source   Source
	now      func() time.Time
	renderer *Renderer
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock overrides the time source used for time-of-day replies.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New creates an assistant suggesting items from source.
func New(source Source, opts ...Option) *Assistant {
	a := &Assistant{
		source:   source,
		now:      time.Now,
		renderer: NewRenderer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Greeting is the opening message shown when the assistant is opened.
func (a *Assistant) Greeting() Reply {
	var hello, hint string
	switch h := a.now().Hour(); {
	case h >= 5 && h < 12:
		hello, hint = "Sabah el khir !", "Un café ou un petit-déjeuner pour bien commencer ?"
	case h >= 12 && h < 15:
		hello, hint = "Bonjour !", "C'est l'heure du déjeuner, nos plats vous attendent."
	case h >= 15 && h < 18:
		hello, hint = "Bonsoir !", "Une pause sucrée ou une boisson chaude ?"
	default:
		hello, hint = "Bonsoir !", "Laissez-moi vous guider vers nos meilleurs plats."
	}

	text := hello + " Je suis votre assistant de table.\n\n" + hint + "\n\n" +
		"Je peux vous aider à :\n\n" +
		"- trouver un plat selon vos envies\n" +
		"- composer un menu pour votre budget\n" +
		"- respecter vos allergies et votre régime\n\n" +
		"Que puis-je faire pour vous ?"

	return a.finish(Reply{
		Text:         text,
		Emotion:      EmotionHappy,
		QuickReplies: []string{"Spécialités du chef", "J'ai un budget", "Végétarien", "Quelque chose de rapide"},
	}, 0)
}

// Respond answers one message and updates mem with what it learned.
func (a *Assistant) Respond(mem *Memory, message string) Reply {
	text := strings.ToLower(strings.TrimSpace(message))

	prefs := Extract(text)
	mem.Sentiment = DetectSentiment(text)
	mem.Interactions++
	mem.Merge(prefs)

	t := &turn{
		text:     text,
		context:  detectContext(text),
		prefs:    prefs,
		memory:   mem.Clone(),
		now:      a.now(),
		items:    a.source.Available(),
		currency: a.source.Currency(),
	}

	reply := fallback(t)
	for _, r := range rules {
		if !r.match(t) {
			continue
		}
		if out, ok := r.respond(t); ok {
			reply = out
			break
		}
	}

	return a.finish(reply, utf8.RuneCountInString(message))
}

func (a *Assistant) finish(r Reply, messageLen int) Reply {
	if r.Emotion == "" {
		r.Emotion = EmotionThinking
	}
	delay := typingDelay
	if messageLen > longMessage {
		delay = longTypingDelay
	}
	r.TypingDelayMs = delay.Milliseconds()
	r.HTML = a.renderer.Render(r.Text)
	return r
}
