// Package interpreter drives a book one logical step at a time, turning nodes
// into presentation effects for the host.
//
// The host owns the clock and the input. It calls Activate to start a book,
// Advance on every proceed signal, Tick once per frame and Abort to leave.
// Every call returns the effects to realize, in order. Nothing blocks; a
// Wait command is a state polled by Tick.
package interpreter

import (
	"io"
	"log/slog"
	"time"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/effect"
	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/textfilter"
)

// Default layer names per category, used when a command gives none.
const (
	LayerCharacter = "Character"
	LayerBg        = "Bg"
	LayerEvent     = "Event"
	LayerSprite    = "Sprite"
)

var defaultLayers = map[effect.Category]string{
	effect.CategoryCharacter: LayerCharacter,
	effect.CategoryBg:        LayerBg,
	effect.CategoryEvent:     LayerEvent,
	effect.CategorySprite:    LayerSprite,
}

// Interpreter holds one session. It is not safe for concurrent use; the
// chapter config it reads is never mutated and may be shared.
type Interpreter struct {
	cfg    *book.Config
	logger *slog.Logger

	session *state.Session
	nodes   []book.Node
	stage   *Stage
	reveal  *Reveal

	charName      string        // speaker of the current line
	lineOffset    int           // index of the node that produced the current line
	fadeRemaining time.Duration // reveal is paused while a fade runs
	replaying     bool          // Restore is rebuilding the stage
}

// New creates an idle interpreter over cfg. A nil cfg behaves as an empty
// chapter; a nil logger discards diagnostics.
func New(cfg *book.Config, logger *slog.Logger) *Interpreter {
	if cfg == nil {
		empty := book.NewConfig()
		cfg = &empty
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		cfg:     cfg,
		logger:  logger,
		session: state.NewSession(),
		stage:   newStage(),
		reveal:  newReveal(DefaultRevealInterval),
	}
}

// WithRevealInterval sets the time per revealed character.
func (in *Interpreter) WithRevealInterval(d time.Duration) *Interpreter {
	in.reveal = newReveal(d)
	return in
}

// Activate starts bookID from its first node. The host calls Advance to show
// the first line.
func (in *Interpreter) Activate(bookID string, nodes []book.Node) {
	in.session.Activate(bookID)
	in.nodes = nodes
	in.clearPresentation()
	in.logger.Info("Scenario activated", "book", bookID, "nodes", len(nodes), "session_id", in.session.ID)
}

// Advance handles a proceed signal.
func (in *Interpreter) Advance() []effect.Effect {
	switch in.session.Status {
	case state.StatusIdle:
		return nil
	case state.StatusWaiting:
		if !in.session.Fast {
			return nil
		}
		in.session.WaitRemaining = 0
		in.session.Status = state.StatusRunning
	case state.StatusAwaitingInput:
		if !in.reveal.Done() {
			in.reveal.Complete()
			return nil
		}
		in.session.Status = state.StatusRunning
	}
	return in.run()
}

// Tick moves both clocks forward by dt: the reveal ticker and, while
// Waiting, the wait timer. When the wait ends the dispatch loop resumes.
func (in *Interpreter) Tick(dt time.Duration) []effect.Effect {
	if !in.session.IsActive() {
		return nil
	}

	switch {
	case in.fadeRemaining > 0:
		in.fadeRemaining -= dt
		if in.fadeRemaining < 0 {
			in.fadeRemaining = 0
		}
	case in.session.Fast:
		in.reveal.Complete()
	default:
		in.reveal.Tick(dt)
	}

	if in.session.Status == state.StatusWaiting && in.session.TickWait(dt) {
		in.session.Status = state.StatusRunning
		return in.run()
	}
	return nil
}

// SetFast toggles fast-forward. While set, waits release on the next tick
// and lines appear whole.
func (in *Interpreter) SetFast(fast bool) {
	in.session.Fast = fast
	if fast {
		in.reveal.Complete()
	}
}

// Abort ends the session from any state. Aborting an idle interpreter does
// nothing.
func (in *Interpreter) Abort() []effect.Effect {
	if !in.session.IsActive() {
		in.session.Reset()
		return nil
	}
	in.logger.Info("Scenario aborted", "book", in.session.Book, "offset", in.session.Offset)
	in.session.Reset()
	in.nodes = nil
	in.clearPresentation()
	return []effect.Effect{effect.ScenarioEnded{Aborted: true}}
}

// Restart runs the current book again from the top. The returned effects
// clear whatever the host is showing.
func (in *Interpreter) Restart() []effect.Effect {
	if !in.session.IsActive() {
		return nil
	}
	out := in.clearEffects()
	in.Activate(in.session.Book, in.nodes)
	return out
}

// Status is the current state machine position.
func (in *Interpreter) Status() state.Status {
	return in.session.Status
}

// Session returns a copy of the session state.
func (in *Interpreter) Session() state.Session {
	return in.session.Clone()
}

// Stage returns the interpreter's view of the scene.
func (in *Interpreter) Stage() *Stage {
	return in.stage
}

// Line returns the speaker and the revealed part of the current line.
func (in *Interpreter) Line() (charName, visible string) {
	return in.charName, in.reveal.Visible()
}

// FullLine returns the speaker and the whole current line.
func (in *Interpreter) FullLine() (charName, text string) {
	return in.charName, in.reveal.Text()
}

// RevealDone reports whether the current line is fully shown.
func (in *Interpreter) RevealDone() bool {
	return in.reveal.Done()
}

// Progress returns the cursor and the number of nodes in the book.
func (in *Interpreter) Progress() (offset, total int) {
	return in.session.Offset, len(in.nodes)
}

// run is the dispatch loop. It stops on a shown line, a wait or the end of
// the book.
func (in *Interpreter) run() []effect.Effect {
	var out []effect.Effect
	for {
		if in.session.Offset >= len(in.nodes) {
			return append(out, in.finish()...)
		}
		idx := in.session.Offset
		node := in.nodes[idx]
		in.session.Offset++
		if in.dispatch(idx, node, &out) {
			return out
		}
	}
}

func (in *Interpreter) finish() []effect.Effect {
	in.logger.Info("Scenario ended", "book", in.session.Book, "session_id", in.session.ID)
	in.session.Reset()
	in.nodes = nil
	in.clearPresentation()
	return []effect.Effect{effect.ScenarioEnded{}}
}

// clearEffects asks the host to drop everything the stage holds.
func (in *Interpreter) clearEffects() []effect.Effect {
	return []effect.Effect{
		effect.HideTexture{Matched: in.stage.Remove(effect.Filter{})},
		effect.StopSound{},
	}
}

func (in *Interpreter) clearPresentation() {
	in.stage.Clear()
	in.reveal.Clear()
	in.charName = ""
	in.lineOffset = 0
	in.fadeRemaining = 0
}

// lookupParam resolves <param=KEY>: runtime params first, then the chapter
// param table.
func (in *Interpreter) lookupParam(key string) (string, bool) {
	if v, ok := in.session.Param(key); ok {
		return v, true
	}
	if p, ok := in.cfg.Param[key]; ok {
		return p.Value, true
	}
	return "", false
}

// Snapshot captures the session for a save slot. While a line is on screen
// the saved cursor points at that line so a restore shows it again.
func (in *Interpreter) Snapshot(slot string) *state.Snapshot {
	snap := in.session.Snapshot(slot)
	if in.session.Status == state.StatusAwaitingInput {
		snap.Offset = in.lineOffset
	}
	snap.Preview = textfilter.StripTags(in.reveal.Text())
	return snap
}

// Restore activates snap's book and replays nodes before the saved cursor
// without presenting them. It returns the effects that rebuild the stage;
// the next Advance continues from the saved position.
func (in *Interpreter) Restore(nodes []book.Node, snap *state.Snapshot) []effect.Effect {
	in.Activate(snap.Book, nodes)

	target := min(max(snap.Offset, 0), len(nodes))
	in.replaying = true
	var discard []effect.Effect
	for in.session.Offset < target {
		idx := in.session.Offset
		in.session.Offset++
		in.dispatch(idx, nodes[idx], &discard)
		discard = discard[:0]
	}
	in.replaying = false

	in.session.Offset = target
	in.session.Status = state.StatusRunning
	in.session.WaitRemaining = 0
	in.session.Params = make(map[string]string, len(snap.Params))
	for k, v := range snap.Params {
		in.session.Params[k] = v
	}
	in.session.Fast = snap.Fast
	in.reveal.Clear()
	in.charName = ""
	in.fadeRemaining = 0

	in.logger.Info("Scenario restored", "book", snap.Book, "slot", snap.Slot, "offset", target)
	return in.stage.rebuild()
}
