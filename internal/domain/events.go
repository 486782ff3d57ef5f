package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionAdded   EventType = "SelectionAdded"
	EventSelectionRemoved EventType = "SelectionRemoved"
	EventGestureFinished  EventType = "GestureFinished"
	EventTouch            EventType = "Touch"
	EventTouchpadJoined   EventType = "TouchpadJoined"
	EventTouchpadLeft     EventType = "TouchpadLeft"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TouchEvent is emitted for every start, move or end of a touch
type TouchEvent struct {
	Touch TouchID
	Phase TouchPhase
	Pos   Point
}

func (e TouchEvent) Type() EventType { return EventTouch }

// GestureFinishedEvent is emitted when a gesture shape is released
type GestureFinishedEvent struct {
	Touch   TouchID
	Polygon Polygon
	Tap     bool // released without leaving the start point
}

func (e GestureFinishedEvent) Type() EventType { return EventGestureFinished }

// TouchpadJoinedEvent is emitted when a touchpad client connects
type TouchpadJoinedEvent struct {
	ClientID string
}

func (e TouchpadJoinedEvent) Type() EventType { return EventTouchpadJoined }

// TouchpadLeftEvent is emitted when a touchpad client disconnects
type TouchpadLeftEvent struct {
	ClientID string
}

func (e TouchpadLeftEvent) Type() EventType { return EventTouchpadLeft }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	DataKeys []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
