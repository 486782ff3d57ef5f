package touchpad

// Message types exchanged with touchpad clients
const (
	MsgPadDataRequest = "TouchPadData-Request"
	MsgPadData        = "TouchPadData"
	MsgTouchUpdate    = "TouchUpdate"
)

// envelope is decoded first to find the message type
type envelope struct {
	MessageType string `json:"messageType"`
}

// PadData answers a TouchPadData-Request
type PadData struct {
	MessageType string   `json:"messageType"`
	ClientID    string   `json:"clientId"`
	DataKeys    []string `json:"dataKeys"`
	Aspect      float64  `json:"aspect"` // canvas width / height
}

// TouchUpdate carries the touches that changed since the last update.
// Coordinates are normalized to [0,1] over the pad surface.
type TouchUpdate struct {
	MessageType string       `json:"messageType"`
	Touches     []TouchPoint `json:"touches"`
}

// TouchPoint is one touch of a TouchUpdate
type TouchPoint struct {
	ID    int     `json:"id"`
	Phase string  `json:"phase"` // start, move or end
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// PadInfo is what the server tells clients about the canvas
type PadInfo struct {
	DataKeys []string
	Aspect   float64
}
