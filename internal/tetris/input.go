package tetris

import (
	"strings"
	"time"

	"github.com/kamstrup/intmap"
)

// Intent is a discrete player request.
type Intent int

const (
	IntentLeft Intent = iota
	IntentRight
	IntentDown
	IntentRotateCW
	IntentRotateCCW
	IntentToggle

	intentCount
)

var intentNames = [intentCount]string{"left", "right", "down", "rotate-cw", "rotate-ccw", "toggle"}

func (i Intent) String() string {
	if i < 0 || i >= intentCount {
		return "unknown"
	}
	return intentNames[i]
}

// Intents is the set of intents held during one frame.
type Intents uint8

// NewIntents builds a set from the listed intents.
func NewIntents(intents ...Intent) Intents {
	var set Intents
	for _, i := range intents {
		set = set.With(i)
	}
	return set
}

// With returns the set plus i.
func (set Intents) With(i Intent) Intents {
	return set | 1<<uint(i)
}

// Has reports whether i is held.
func (set Intents) Has(i Intent) bool {
	return set&(1<<uint(i)) != 0
}

func (set Intents) String() string {
	names := make([]string, 0, intentCount)
	for i := Intent(0); i < intentCount; i++ {
		if set.Has(i) {
			names = append(names, i.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// InputSource yields the intents held for the next frame. A nil source is
// treated as one that never reports anything.
type InputSource interface {
	Poll() Intents
}

// repeater debounces held intents. An intent fires on its first frame and then
// at most once per interval while it stays held. Releasing it re-arms it.
type repeater struct {
	interval time.Duration
	last     *intmap.Map[Intent, time.Duration]
}

func newRepeater(interval time.Duration) *repeater {
	return &repeater{
		interval: interval,
		last:     intmap.New[Intent, time.Duration](int(intentCount)),
	}
}

// ready reports whether a held intent may fire at now.
func (r *repeater) ready(i Intent, now time.Duration) bool {
	last, ok := r.last.Get(i)
	return !ok || now-last > r.interval
}

func (r *repeater) fired(i Intent, now time.Duration) {
	r.last.Put(i, now)
}

func (r *repeater) release(i Intent) {
	r.last.Del(i)
}

func (r *repeater) reset() {
	r.last.Clear()
}

// handleInput applies one frame of held intents.
func (engine *Engine) handleInput(in Intents, now time.Duration) {
	if in.Has(IntentToggle) {
		if engine.input.ready(IntentToggle, now) {
			engine.input.fired(IntentToggle, now)
			switch engine.mode {
			case ModeOver, ModeDemo:
				engine.Reset(ModePlay)
				return
			case ModePlay:
				engine.SetMode(ModePause)
			case ModePause:
				engine.SetMode(ModePlay)
			}
		}
	} else {
		engine.input.release(IntentToggle)
	}

	if !engine.mode.AcceptsInput() {
		return
	}

	switch {
	case in.Has(IntentLeft):
		engine.repeatMove(IntentLeft, now, func() bool { return engine.shift(-1) })
		engine.input.release(IntentRight)
	case in.Has(IntentRight):
		engine.repeatMove(IntentRight, now, func() bool { return engine.shift(1) })
		engine.input.release(IntentLeft)
	default:
		engine.input.release(IntentLeft)
		engine.input.release(IntentRight)
	}

	if in.Has(IntentDown) {
		if engine.field.Fits(engine.piece.Moved(0, 1)) && engine.input.ready(IntentDown, now) {
			engine.input.fired(IntentDown, now)
			engine.drop(now)
		}
	} else {
		engine.input.release(IntentDown)
	}

	for _, rot := range [...]struct {
		intent Intent
		dir    int
	}{{IntentRotateCW, 1}, {IntentRotateCCW, -1}} {
		if !in.Has(rot.intent) {
			engine.input.release(rot.intent)
			continue
		}
		if engine.input.ready(rot.intent, now) {
			engine.rotate(rot.dir)
			engine.input.fired(rot.intent, now)
		}
	}
}

// repeatMove runs move when intent is ready. A blocked shift does not
// restart the repeat timer.
func (engine *Engine) repeatMove(i Intent, now time.Duration, move func() bool) {
	if !engine.input.ready(i, now) {
		return
	}
	if move() {
		engine.input.fired(i, now)
	}
}
