package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

func TestRectanglePolygonFromCenterAndSize(t *testing.T) {
	r := NewRectangle(domain.Point{}, domain.Point{})
	r.Update(pt(10, 10), pt(4, 6))

	assert.Equal(t, domain.Polygon{pt(8, 7), pt(12, 7), pt(12, 13), pt(8, 13), pt(8, 7)}, r.Polygon())
	assert.Equal(t, pt(8, 7), r.TopLeft())

	lo, hi := r.Bounds()
	assert.Equal(t, pt(8, 7), lo)
	assert.Equal(t, pt(12, 13), hi)
}

func TestRectangleGestureSpansFromAnchor(t *testing.T) {
	r := NewRectangleGesture(touch(finger, domain.TouchStart, 10, 2), nil)
	assert.True(t, r.Tap())

	r.HandleTouch(touch(finger, domain.TouchMove, 4, 8))
	assert.Equal(t, pt(7, 5), r.Center())
	assert.Equal(t, pt(6, 6), r.Size())
	assert.Equal(t, domain.Polygon{pt(4, 2), pt(10, 2), pt(10, 8), pt(4, 8), pt(4, 2)}, r.Polygon())
	assert.False(t, r.Tap())
}

func TestRectangleGestureFinishes(t *testing.T) {
	bus := eventbus.NewStrict()
	finished := collectFinished(t, bus)

	r := NewRectangleGesture(touch(finger, domain.TouchStart, 0, 0), bus)
	assert.False(t, r.HandleTouch(touch(domain.TouchID{Source: "mouse"}, domain.TouchEnd, 2, 2)))
	assert.True(t, r.HandleTouch(touch(finger, domain.TouchEnd, 2, 4)))

	require.Len(t, *finished, 1)
	assert.Equal(t, r.Polygon(), (*finished)[0].Polygon)
	assert.True(t, r.Done())
}

func TestRectangleContainsItsCenter(t *testing.T) {
	r := NewRectangle(pt(5, 5), pt(2, 2))
	assert.True(t, Contains(r.Polygon(), pt(5, 5)))
	assert.False(t, Contains(r.Polygon(), pt(7, 5)))
}

func TestRectangleClear(t *testing.T) {
	r := NewRectangle(pt(5, 5), pt(2, 2))
	r.Clear()
	assert.True(t, r.Done())
	assert.Equal(t, pt(5, 5), r.TopLeft())
}
