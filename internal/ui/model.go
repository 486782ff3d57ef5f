package ui

import (
	"fmt"
	"log"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"touchviz/internal/config"
	"touchviz/internal/dataset"
	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
	"touchviz/internal/gesture"
	"touchviz/internal/selection"
	"touchviz/internal/ui/views"
)

// MouseSource is the touch source of the terminal pointer
const MouseSource = "mouse"

// Rows taken by the header, status and help lines
const chromeLines = 3

// tapRadius is how many cells away from a node a tap still hits it
const tapRadius = 1.5

// Model represents the UI state. It owns the selection holder, colour mapper and
// gesture tracker; every call into them happens on the Update goroutine.
type Model struct {
	cfg     *config.Config
	graph   *dataset.Graph
	bus     *eventbus.Dispatcher
	holder  *selection.Holder[string]
	colors  *selection.ColorMapper
	tracker *gesture.Tracker
	dataKey string

	callbacks *selection.Callbacks[string]
	onGesture *eventbus.Listener

	width    int
	height   int
	help     help.Model
	keys     keyMap
	renderer *views.Renderer

	erase       bool
	dragging    bool
	pads        map[string]bool
	status      string
	statusErr   bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	pager   Pager
}

// NewModel creates a new UI model. ids and colors are shared context objects
// owned by the caller; opts are passed to the selection holder.
func NewModel(cfg *config.Config, graph *dataset.Graph, ids *selection.IDAllocator,
	colors *selection.ColorMapper, bus *eventbus.Dispatcher, opts ...selection.Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if graph == nil {
		graph = dataset.Demo()
	}
	if colors == nil {
		colors = selection.NewColorMapper(cfg.PaletteColors())
	}
	if bus == nil {
		bus = eventbus.New()
	}
	if len(cfg.DataKeys) == 0 {
		cfg.DataKeys = config.DefaultConfig().DataKeys
	}

	holderOpts := append([]selection.Option{
		selection.WithMergeWindow(cfg.MergeWindowDuration()),
		selection.WithDispatcher(bus),
	}, opts...)

	m := &Model{
		cfg:      cfg,
		graph:    graph,
		bus:      bus,
		holder:   selection.NewHolder[string](ids, cfg.DataKeys, holderOpts...),
		colors:   colors,
		tracker:  gesture.NewTracker(bus),
		dataKey:  cfg.DataKeys[0],
		help:     help.New(),
		keys:     newKeyMap(),
		renderer: views.NewRenderer(views.NewStyles()),
		pads:     make(map[string]bool),
	}
	m.tracker.SetMode(gesture.ParseMode(cfg.UISettings.StartMode))

	m.callbacks = &selection.Callbacks[string]{
		OnAdded: func(id selection.SetID, _ []string) {
			m.colors.NextColor(id)
		},
		OnRemoved: func(id selection.SetID, _ []string) {
			// Colours follow the set, not its members
			if _, alive := m.holder.Set(id); !alive {
				m.colors.Remove(id)
			}
		},
	}
	m.holder.StartListening(m.callbacks)

	m.onGesture = eventbus.On("ui.gesture", func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.GestureFinishedEvent); ok {
			m.applyGesture(ev)
		}
	})
	if err := bus.Bind(eventbus.EventGestureFinished, m.onGesture); err != nil {
		log.Printf("UI: bind gesture listener: %v", err)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// SetPager replaces the pager used for help and reports
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Holder returns the selection holder of the canvas
func (m *Model) Holder() *selection.Holder[string] {
	return m.holder
}

// Close unbinds everything the model bound on its dispatcher
func (m *Model) Close() {
	m.holder.StopListening(m.callbacks)
	if err := m.bus.Unbind(eventbus.EventGestureFinished, m.onGesture); err != nil {
		log.Printf("UI: unbind gesture listener: %v", err)
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Error showing %s: %v", msg.title, msg.err)
			m.setError(fmt.Sprintf("Could not show %s: %v", msg.title, msg.err))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Mode):
		if m.tracker.Mode() == gesture.ModeLasso {
			m.tracker.SetMode(gesture.ModeRectangle)
		} else {
			m.tracker.SetMode(gesture.ModeLasso)
		}
		m.setStatus(fmt.Sprintf("Gesture mode: %s", m.tracker.Mode()))

	case key.Matches(msg, m.keys.Erase):
		m.erase = !m.erase
		if m.erase {
			m.setStatus("Erase mode on")
		} else {
			m.setStatus("Erase mode off")
		}

	case key.Matches(msg, m.keys.Cancel):
		m.tracker.Clear()
		m.dragging = false
		m.setStatus("Gestures cancelled")

	case key.Matches(msg, m.keys.Clear):
		removed := m.holder.RemoveAllSelectionSets()
		m.setStatus(fmt.Sprintf("Cleared %d set(s)", len(removed)))

	case key.Matches(msg, m.keys.Undo):
		m.removeNewestSet()

	case key.Matches(msg, m.keys.Report):
		return m, m.showInPager("selection report", m.Report())

	case key.Matches(msg, m.keys.Help):
		return m, m.showInPager("help", HelpContent())
	}
	return m, nil
}

func (m *Model) removeNewestSet() {
	ids := m.holder.IDs()
	if len(ids) == 0 {
		m.setStatus("No selection sets")
		return
	}
	newest := ids[len(ids)-1]
	elems, _ := m.holder.Set(newest)
	m.holder.RemoveSelectionFromSet(elems, newest)
	m.setStatus(fmt.Sprintf("Removed %s", newest))
}

// showInPager returns a command that shows content in the pager, pausing and resuming rendering
func (m *Model) showInPager(title, content string) tea.Cmd {
	if m.pager == nil {
		return nil
	}
	pager, program := m.pager, m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{title: title, err: err}
	}
}

// handleMouse turns left-button drags into touches of MouseSource
func (m *Model) handleMouse(msg tea.MouseMsg) {
	vp := m.viewport()
	col, row := msg.X, msg.Y-1
	touch := domain.TouchID{Source: MouseSource}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !vp.Contains(col, row) {
			return
		}
		m.dragging = true
		m.tracker.Handle(domain.TouchEvent{Touch: touch, Phase: domain.TouchStart, Pos: vp.ToWorld(col, row)})
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		m.tracker.Handle(domain.TouchEvent{Touch: touch, Phase: domain.TouchMove, Pos: vp.ToWorld(clampCell(col, row, vp))})
	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.tracker.Handle(domain.TouchEvent{Touch: touch, Phase: domain.TouchEnd, Pos: vp.ToWorld(clampCell(col, row, vp))})
	}
}

func clampCell(col, row int, vp views.Viewport) (int, int) {
	return clampInt(col, 0, vp.Width-1), clampInt(row, 0, vp.Height-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// handleEvent applies events marshalled in from other goroutines
func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case domain.TouchEvent:
		ev.Pos = m.viewport().FromUnit(ev.Pos)
		m.tracker.Handle(ev)
	case domain.TouchpadJoinedEvent:
		m.pads[ev.ClientID] = true
		m.setStatus(fmt.Sprintf("Touchpad %s connected", ev.ClientID))
	case domain.TouchpadLeftEvent:
		delete(m.pads, ev.ClientID)
		m.tracker.CancelSource(ev.ClientID)
		m.setStatus(fmt.Sprintf("Touchpad %s disconnected", ev.ClientID))
	default:
		log.Printf("UI: ignoring event %s", e.Type())
	}
}

// applyGesture turns a finished gesture into a selection change. Taps pick one
// node and may merge with the previous tap; drawn shapes always make a new set.
func (m *Model) applyGesture(ev domain.GestureFinishedEvent) {
	var elems []string
	if ev.Tap {
		if id, ok := m.nodeNear(center(ev.Polygon)); ok {
			elems = []string{id}
		}
	} else {
		elems = m.nodesInside(ev.Polygon)
	}
	if len(elems) == 0 {
		m.setStatus("Nothing under the gesture")
		return
	}

	if m.erase {
		m.eraseNodes(elems)
		return
	}

	id, ok := m.holder.NextID(m.dataKey)
	if !ok {
		m.setError(fmt.Sprintf("Unknown data key %q", m.dataKey))
		return
	}
	result, added := m.holder.AddNewSelectionSet(elems, id, !ev.Tap)
	m.setStatus(fmt.Sprintf("Added %d node(s) to %s", len(added), result))
}

func (m *Model) eraseNodes(elems []string) {
	removed := 0
	for _, id := range m.holder.SetsContaining(elems) {
		if diff := m.holder.RemoveSelectionFromSet(elems, id); len(diff) > 0 {
			removed++
		}
	}
	m.setStatus(fmt.Sprintf("Erased from %d set(s)", removed))
}

func (m *Model) nodesInside(poly domain.Polygon) []string {
	var ids []string
	for _, n := range m.graph.Nodes() {
		if gesture.Contains(poly, n.Pos) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// nodeNear returns the closest node within tapRadius cells of p
func (m *Model) nodeNear(p domain.Point) (string, bool) {
	cell := m.viewport().CellSize()
	best, bestDist := "", math.Inf(1)
	for _, n := range m.graph.Nodes() {
		// Measure in cells so the hit area matches what is on screen
		dx := (n.Pos.X - p.X) / cell.X
		dy := (n.Pos.Y - p.Y) / cell.Y
		if d := math.Hypot(dx, dy); d <= tapRadius && d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != ""
}

func center(poly domain.Polygon) domain.Point {
	if len(poly) == 0 {
		return domain.Point{}
	}
	lo, hi := gesture.Bounds(poly)
	return lo.Add(hi).Scale(0.5)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) canvasHeight() int {
	h := m.height - chromeLines
	if m.cfg.UISettings.ShowLegend {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) viewport() views.Viewport {
	lo, hi := m.graph.Bounds()
	width := m.width
	if width < 1 {
		width = 80
	}
	return views.NewViewport(width, m.canvasHeight(), lo, hi)
}

// Aspect returns the canvas aspect ratio for touchpads
func (m *Model) Aspect() float64 {
	return m.viewport().Aspect()
}
