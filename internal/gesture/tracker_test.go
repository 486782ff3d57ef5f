package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

func TestTrackerKeepsOneGesturePerTouch(t *testing.T) {
	bus := eventbus.NewStrict()
	finished := collectFinished(t, bus)
	tr := NewTracker(bus)

	a := domain.TouchID{Source: "pad", ID: 1}
	b := domain.TouchID{Source: "pad", ID: 2}

	require.NotNil(t, tr.Handle(touch(a, domain.TouchStart, 0, 0)))
	require.NotNil(t, tr.Handle(touch(b, domain.TouchStart, 10, 10)))
	assert.Len(t, tr.Active(), 2)

	tr.Handle(touch(a, domain.TouchMove, 5, 0))
	tr.Handle(touch(b, domain.TouchMove, 10, 15))
	g := tr.Handle(touch(a, domain.TouchEnd, 5, 5))
	require.NotNil(t, g)
	assert.True(t, g.Done())

	require.Len(t, *finished, 1)
	assert.Equal(t, a, (*finished)[0].Touch)
	active := tr.Active()
	require.Len(t, active, 1)
	assert.Equal(t, b, active[0].Touch())
}

func TestTrackerIgnoresUnknownTouches(t *testing.T) {
	tr := NewTracker(nil)
	assert.Nil(t, tr.Handle(touch(finger, domain.TouchMove, 1, 1)))
	assert.Nil(t, tr.Handle(touch(finger, domain.TouchEnd, 1, 1)))
}

func TestTrackerModeChoosesShape(t *testing.T) {
	tr := NewTracker(nil)
	_, isLasso := tr.Handle(touch(finger, domain.TouchStart, 0, 0)).(*Lasso)
	assert.True(t, isLasso)

	tr.SetMode(ModeRectangle)
	assert.Equal(t, "rectangle", tr.Mode().String())
	other := domain.TouchID{Source: "pad", ID: 9}
	_, isRect := tr.Handle(touch(other, domain.TouchStart, 0, 0)).(*Rectangle)
	assert.True(t, isRect)
}

func TestTrackerRestartReplacesGesture(t *testing.T) {
	tr := NewTracker(nil)
	first := tr.Handle(touch(finger, domain.TouchStart, 0, 0))
	second := tr.Handle(touch(finger, domain.TouchStart, 3, 3))

	assert.True(t, first.Done())
	assert.NotSame(t, first, second)
	assert.Len(t, tr.Active(), 1)
}

func TestTrackerCancel(t *testing.T) {
	bus := eventbus.NewStrict()
	finished := collectFinished(t, bus)
	tr := NewTracker(bus)

	tr.Handle(touch(finger, domain.TouchStart, 0, 0))
	tr.Handle(touch(domain.TouchID{Source: "mouse"}, domain.TouchStart, 0, 0))
	tr.Handle(touch(domain.TouchID{Source: "pad", ID: 2}, domain.TouchStart, 0, 0))

	tr.CancelSource("pad")
	require.Len(t, tr.Active(), 1)
	assert.Equal(t, "mouse", tr.Active()[0].Touch().Source)

	tr.Clear()
	assert.Empty(t, tr.Active())
	assert.Empty(t, *finished)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeRectangle, ParseMode("rectangle"))
	assert.Equal(t, ModeRectangle, ParseMode("rect"))
	assert.Equal(t, ModeLasso, ParseMode("lasso"))
	assert.Equal(t, ModeLasso, ParseMode(""))
}
