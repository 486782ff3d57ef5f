// Command touchpad-sim plays scripted gestures against a running touchviz
// touchpad server, for trying the canvas without a touch device.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"touchviz/internal/touchpad"
)

func main() {
	var addr, shape string
	var steps int
	var delay time.Duration
	var radius float64
	flag.StringVar(&addr, "addr", "127.0.0.1:8765", "touchviz touchpad address")
	flag.StringVar(&shape, "shape", "lasso", "Gesture to play: lasso or tap")
	flag.IntVar(&steps, "steps", 24, "Points along the lasso")
	flag.Float64Var(&radius, "radius", 0.25, "Lasso radius in pad units")
	flag.DurationVar(&delay, "delay", 20*time.Millisecond, "Pause between updates")
	flag.Parse()

	if err := run(addr, shape, steps, radius, delay); err != nil {
		fmt.Fprintf(os.Stderr, "touchpad-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, shape string, steps int, radius float64, delay time.Duration) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: touchpad.Path}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"messageType": touchpad.MsgPadDataRequest}); err != nil {
		return err
	}
	var info touchpad.PadData
	if err := conn.ReadJSON(&info); err != nil {
		return fmt.Errorf("read pad data: %w", err)
	}
	log.Printf("connected as %s, data keys %v, aspect %.2f", info.ClientID, info.DataKeys, info.Aspect)

	var points []touchpad.TouchPoint
	switch shape {
	case "lasso":
		points = circle(0.5, 0.5, radius, steps)
	case "tap":
		points = tap(0.5, 0.5)
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}

	for _, p := range points {
		msg := touchpad.TouchUpdate{MessageType: touchpad.MsgTouchUpdate, Touches: []touchpad.TouchPoint{p}}
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}
		time.Sleep(delay)
	}

	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// circle returns a closed lasso around (cx, cy) as start, moves and end
func circle(cx, cy, r float64, steps int) []touchpad.TouchPoint {
	if steps < 3 {
		steps = 3
	}
	points := make([]touchpad.TouchPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		phase := "move"
		switch i {
		case 0:
			phase = "start"
		case steps:
			phase = "end"
		}
		points = append(points, touchpad.TouchPoint{
			Phase: phase,
			X:     cx + r*math.Cos(angle),
			Y:     cy + r*math.Sin(angle),
		})
	}
	return points
}

func tap(x, y float64) []touchpad.TouchPoint {
	return []touchpad.TouchPoint{
		{Phase: "start", X: x, Y: y},
		{Phase: "end", X: x, Y: y},
	}
}
