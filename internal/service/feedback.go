package service

import (
	"fmt"
	"math/rand"
)

type Band string

const (
	BandExceeded  Band = "exceeded"
	BandDeficient Band = "deficient"
	BandOnTrack   Band = "on-track"
)

// Thresholds are ratios of consumed calories to the calorie target.
// Consumption below Deficient is deficient. Consumption at or above
// Exceeded is exceeded, or strictly above when StrictExceeded is set.
type Thresholds struct {
	Exceeded       float64
	Deficient      float64
	StrictExceeded bool
}

var (
	LiveThresholds    = Thresholds{Exceeded: 1.02, Deficient: 0.8}
	HistoryThresholds = Thresholds{Exceeded: 1.05, Deficient: 0.8, StrictExceeded: true}
)

func (t Thresholds) Classify(consumed, target int) Band {
	c, g := float64(consumed), float64(target)
	over := c >= g*t.Exceeded
	if t.StrictExceeded {
		over = c > g*t.Exceeded
	}
	switch {
	case over:
		return BandExceeded
	case c < g*t.Deficient:
		return BandDeficient
	default:
		return BandOnTrack
	}
}

// MessageSet holds the messages of each band. Exceeded messages take the
// excess calories as their single %d argument.
type MessageSet struct {
	Exceeded  []string
	Deficient []string
	OnTrack   []string
}

var LiveMessages = MessageSet{
	Exceeded: []string{
		"Oops, %d kcal over. You'll do better tomorrow.",
		"You went %d kcal past your goal, watch the surplus!",
		"%d kcal over the goal. Time for a glass of water.",
	},
	Deficient: []string{
		"You're running low on energy, eat something nutritious!",
		"You're in a deficit, you can still eat more.",
		"Don't forget your dinner.",
	},
	OnTrack: []string{
		"Excellent! You're hitting your goals.",
		"Keep it up, NutriBuddy.",
		"Perfect! You're almost at your goal.",
	},
}

var HistoryMessages = MessageSet{
	Exceeded: []string{
		"This day ended %d kcal in surplus. Review your choices and adjust next time.",
		"A slip of %d kcal, but NutriBuddy is here. The weekly average is what matters.",
		"%d kcal over: use this day to plan a better one.",
	},
	Deficient: []string{
		"Intake was low this day. Make sure your body gets the energy it needs.",
		"NutriBuddy reminds you: don't skip meals! Nutrition is constant fuel.",
		"Find where you could add more nutrition on days like this one.",
	},
	OnTrack: []string{
		"Right on target! Your consistency is inspiring.",
		"Excellent result. Your body thanks you for this day.",
		"Goal reached. Remember this day and repeat the process.",
	},
}

func (m MessageSet) forBand(b Band) []string {
	switch b {
	case BandExceeded:
		return m.Exceeded
	case BandDeficient:
		return m.Deficient
	default:
		return m.OnTrack
	}
}

// RandSource picks an index in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

type Message struct {
	Band   Band   `json:"band"`
	Text   string `json:"text"`
	Excess int    `json:"excess"`
}

type Feedback struct {
	Thresholds Thresholds
	Messages   MessageSet
	Rand       RandSource
}

func NewLiveFeedback(t Thresholds, r RandSource) *Feedback {
	return &Feedback{Thresholds: t, Messages: LiveMessages, Rand: r}
}

func NewHistoryFeedback(t Thresholds, r RandSource) *Feedback {
	return &Feedback{Thresholds: t, Messages: HistoryMessages, Rand: r}
}

func (f *Feedback) Evaluate(consumed, target int) Message {
	band := f.Thresholds.Classify(consumed, target)
	msg := Message{Band: band, Excess: absInt(consumed - target)}
	options := f.Messages.forBand(band)
	if len(options) == 0 {
		return msg
	}
	r := f.Rand
	if r == nil {
		r = globalRand{}
	}
	text := options[r.IntN(len(options))]
	if band == BandExceeded {
		text = fmt.Sprintf(text, msg.Excess)
	}
	msg.Text = text
	return msg
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
