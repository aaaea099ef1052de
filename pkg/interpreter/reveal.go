package interpreter

import (
	"time"

	"github.com/jwebster45206/scenario-player/pkg/textfilter"
)

// DefaultRevealInterval is the time per revealed character.
const DefaultRevealInterval = 100 * time.Millisecond

// Reveal advances a dialogue line one character per interval.
type Reveal struct {
	text     string
	total    int
	shown    int
	interval time.Duration
	elapsed  time.Duration
}

func newReveal(interval time.Duration) *Reveal {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	return &Reveal{interval: interval}
}

// Start begins revealing text from its first character.
func (r *Reveal) Start(text string) {
	r.text = text
	r.total = textfilter.Len(text)
	r.shown = 0
	r.elapsed = 0
}

// Tick reveals as many characters as dt covers.
func (r *Reveal) Tick(dt time.Duration) {
	if r.Done() {
		return
	}
	r.elapsed += dt
	for r.elapsed >= r.interval && r.shown < r.total {
		r.shown++
		r.elapsed -= r.interval
	}
	if r.Done() {
		r.elapsed = 0
	}
}

// Complete shows the whole line.
func (r *Reveal) Complete() {
	r.shown = r.total
	r.elapsed = 0
}

func (r *Reveal) Done() bool {
	return r.shown >= r.total
}

// Visible is the revealed prefix of the current line.
func (r *Reveal) Visible() string {
	if r.Done() {
		return r.text
	}
	return textfilter.Prefix(r.text, r.shown)
}

// Text is the whole current line.
func (r *Reveal) Text() string {
	return r.text
}

func (r *Reveal) Clear() {
	r.Start("")
}
