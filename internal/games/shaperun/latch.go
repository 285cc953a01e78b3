package shaperun

import "github.com/vovakirdan/shaperun/internal/core"

// holdTicks bridges the gap between terminal key-repeat events.
const holdTicks = 8

// axisLatch turns discrete key presses into held movement on one axis.
// Terminals report a held key as a press followed by repeats with gaps,
// so each press keeps the axis moving for a few ticks.
type axisLatch struct {
	dir  float64
	left int
}

// press starts or refreshes movement in dir. Pressing the opposite
// direction replaces the current one.
func (l *axisLatch) press(dir float64) {
	l.dir = dir
	l.left = holdTicks
}

// next returns the movement for this tick and ages the latch.
func (l *axisLatch) next() float64 {
	if l.left <= 0 {
		return 0
	}
	l.left--
	return l.dir
}

func (l *axisLatch) reset() {
	l.dir, l.left = 0, 0
}

// movementLatch holds both steering axes.
type movementLatch struct {
	x, y axisLatch
}

// apply records this frame's steering presses and returns the movement.
func (m *movementLatch) apply(in core.InputFrame) (dx, dy float64) {
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		m.x.press(-1)
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		m.x.press(1)
	}
	switch {
	case in.Has(core.ActionUp) && !in.Has(core.ActionDown):
		m.y.press(1)
	case in.Has(core.ActionDown) && !in.Has(core.ActionUp):
		m.y.press(-1)
	}
	return m.x.next(), m.y.next()
}

func (m *movementLatch) reset() {
	m.x.reset()
	m.y.reset()
}
