package tui

import (
	"runtime"
	"sync"
	"time"

	"github.com/gdamore/tcell"

	"github.com/tetrislab/tetris-cli/internal/tetris"
)

// holdFor is how long a key counts as held after its last press. Terminals
// report no key releases, so holding a key means its auto repeat keeps
// refreshing this window.
const holdFor = 150 * time.Millisecond

// eventStop stops the key pump
type eventStop struct {
	tcell.EventTime
}

// Keys turns terminal key presses into held intents. It is the Runner's
// input source.
type Keys struct {
	mu      sync.Mutex
	pressed map[tetris.Intent]time.Time
	now     func() time.Time
}

// Poll returns the intents pressed within the hold window.
func (keys *Keys) Poll() tetris.Intents {
	keys.mu.Lock()
	defer keys.mu.Unlock()

	now := keys.now()
	var in tetris.Intents
	for i, at := range keys.pressed {
		if now.Sub(at) < holdFor {
			in = in.With(i)
		}
	}
	return in
}

func (keys *Keys) press(i tetris.Intent) {
	keys.mu.Lock()
	keys.pressed[i] = keys.now()
	keys.mu.Unlock()
}

// intentFor maps a key to an intent.
func intentFor(eventKey *tcell.EventKey) (tetris.Intent, bool) {
	switch eventKey.Key() {
	case tcell.KeyLeft:
		return tetris.IntentLeft, true
	case tcell.KeyRight:
		return tetris.IntentRight, true
	case tcell.KeyDown:
		return tetris.IntentDown, true
	case tcell.KeyUp:
		return tetris.IntentRotateCW, true
	case tcell.KeyRune:
		switch eventKey.Rune() {
		case 'x':
			return tetris.IntentRotateCW, true
		case 'z':
			return tetris.IntentRotateCCW, true
		case 'p', ' ':
			return tetris.IntentToggle, true
		}
	}
	return 0, false
}

func isQuit(eventKey *tcell.EventKey) bool {
	switch eventKey.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return eventKey.Rune() == 'q'
	}
	return false
}

// Keys starts the event pump and returns the intents it collects. quit is
// called from the pump goroutine on q, Esc or Ctrl-C. The pump runs until
// Stop.
func (view *View) Keys(quit func()) *Keys {
	keys := &Keys{
		pressed: make(map[tetris.Intent]time.Time),
		now:     time.Now,
	}
	view.pump = make(chan struct{})
	go view.run(keys, quit)
	return keys
}

// run is the event pump
func (view *View) run(keys *Keys, quit func()) {
	view.logger.Println("View run start")
	defer close(view.pump)

loop:
	for {
		event := view.screen.PollEvent()
		switch eventType := event.(type) {
		case *tcell.EventKey:
			if eventType.Key() == tcell.KeyCtrlL {
				// Ctrl l (lower case L) to log stack trace
				buffer := make([]byte, 1<<16)
				length := runtime.Stack(buffer, true)
				view.logger.Println("Stack trace")
				view.logger.Println(string(buffer[:length]))
				continue
			}
			if isQuit(eventType) {
				if quit != nil {
					quit()
				}
				continue
			}
			if intent, ok := intentFor(eventType); ok {
				keys.press(intent)
			}
		case *eventStop:
			break loop
		case *tcell.EventResize:
			view.redraw()
		case nil:
			break loop
		default:
			view.logger.Printf("event type %T", eventType)
		}
	}

	view.logger.Println("View run end")
}
