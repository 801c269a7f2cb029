// Package feedview renders the one-card-at-a-time deal feed. Keys map
// directly to transitions; wheel and drag deltas are funnelled through the
// gesture coalescer.
package feedview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkariuki/dealdrop/internal/countdown"
	"github.com/jkariuki/dealdrop/internal/deal"
	"github.com/jkariuki/dealdrop/internal/feed"
	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
)

// CountdownTickMsg delivers one elapsed second to the focused card's
// countdown. Gen identifies the session that scheduled it; a tick whose
// generation no longer matches belonged to a card that has since unmounted
// and is dropped.
type CountdownTickMsg struct {
	Gen int
}

// FrameMsg drives the slide animation and pumps the coalescer clock.
type FrameMsg struct {
	At time.Time
}

const dragThresholdRows = 3

func frame() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return FrameMsg{At: t}
	})
}

func countdownTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{Gen: gen}
	})
}

func navigate(route msgs.Route, dealID string) tea.Cmd {
	return func() tea.Msg {
		return msgs.NavigateMsg{Route: route, DealID: dealID}
	}
}

// Model is the feed view. It owns the focus controller, the input
// coalescer, and exactly one countdown session for the rendered card.
type Model struct {
	deals      []deal.Deal
	controller *feed.Controller
	coalescer  *feed.Coalescer

	// session belongs to the focused card; gen invalidates ticks scheduled
	// by earlier sessions.
	session *countdown.Session
	gen     int

	imageIndex int
	signedIn   bool

	width  int
	height int

	styles Styles
	card   Card

	// Card slide physics. The target tracks the feed position; the spring
	// chases it between frames.
	spring   harmonica.Spring
	slidePos float64
	slideVel float64

	// Drag state for press/release swipe detection.
	dragging bool
	pressY   int

	now func() time.Time
}

// New creates the feed view over the given catalogue.
func New(deals []deal.Deal, gestureWindow, settlePeriod time.Duration) Model {
	styles := DefaultStyles()
	m := Model{
		styles:    styles,
		card:      Card{Styles: styles},
		coalescer: feed.NewCoalescer(gestureWindow, settlePeriod),
		spring:    harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
		now:       time.Now,
	}
	m.rebuild(deals, 0)
	return m
}

// Init starts the frame loop and the focused card's countdown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frame(), countdownTick(m.gen))
}

// SetSignedIn records whether claim and vote interactions are unlocked.
func (m *Model) SetSignedIn(signedIn bool) {
	m.signedIn = signedIn
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Position returns the current feed index, for the root model's footer.
func (m Model) Position() int { return m.controller.Position() }

// Current returns the focused deal.
func (m Model) Current() (deal.Deal, bool) { return m.controller.Current() }

// SetDeals swaps in a refreshed catalogue. Focus stays on the same deal
// when it survives the refresh; otherwise the position clamps to the new
// length. The refresh remounts the card, which invalidates the in-flight
// tick, so the returned command schedules the new session's first tick and
// must be run by the caller.
func (m *Model) SetDeals(deals []deal.Deal) tea.Cmd {
	keepID := ""
	if cur, ok := m.controller.Current(); ok {
		keepID = cur.ID
	}

	position := 0
	for i := range deals {
		if deals[i].ID == keepID {
			position = i
			break
		}
	}
	if position >= len(deals) {
		position = 0
	}

	m.rebuild(deals, position)
	if m.session == nil {
		return nil
	}
	return countdownTick(m.gen)
}

// rebuild replaces the controller and mounts a fresh card at position.
func (m *Model) rebuild(deals []deal.Deal, position int) {
	m.deals = deals
	m.controller = feed.NewController(m.deals)
	if position > 0 {
		if err := m.controller.GoTo(position); err != nil {
			logging.Warn("feed position clamped", "position", position, "error", err)
		}
	}
	m.mount()
	m.slidePos = float64(m.controller.Position())
	m.slideVel = 0
}

// mount starts a fresh card lifecycle for the focused deal: image index
// reset, new countdown session, new tick generation.
func (m *Model) mount() {
	m.imageIndex = 0
	m.gen++
	if cur, ok := m.controller.Current(); ok {
		m.session = countdown.NewSession(cur.TimeLeftSeconds)
	} else {
		m.session = nil
	}
}

// observe funnels one raw navigation event through the coalescer.
func (m *Model) observe(dir feed.Direction) tea.Cmd {
	fired := m.coalescer.Observe(dir, m.now())
	if fired == feed.DirNone {
		return nil
	}
	return m.transition(fired)
}

// transition applies a direction and remounts the card.
func (m *Model) transition(dir feed.Direction) tea.Cmd {
	m.controller.Move(dir)
	m.mount()
	if m.session == nil {
		return nil
	}
	return countdownTick(m.gen)
}

// Update handles input, frame and countdown messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		cmds := []tea.Cmd{frame()}
		if dir := m.coalescer.Tick(msg.At); dir != feed.DirNone {
			cmds = append(cmds, m.transition(dir))
		}
		m.slidePos, m.slideVel = m.spring.Update(m.slidePos, m.slideVel, float64(m.controller.Position()))
		return m, tea.Batch(cmds...)

	case CountdownTickMsg:
		if msg.Gen != m.gen || m.session == nil {
			// A tick from a card that has since unmounted.
			return m, nil
		}
		if expired := m.session.Tick(); expired {
			if cur, ok := m.controller.Current(); ok {
				logging.Debug("deal countdown expired", "deal", cur.ID)
			}
			return m, nil
		}
		return m, countdownTick(m.gen)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		// Key presses are already discrete; they bypass the coalescer.
		return m, m.transition(feed.DirNext)
	case "up", "k":
		return m, m.transition(feed.DirPrevious)

	case "left", "h":
		m.imageIndex--
		return m, nil
	case "right", "l":
		m.imageIndex++
		return m, nil

	case "enter":
		if cur, ok := m.controller.Current(); ok {
			return m, navigate(msgs.RouteDeal, cur.ID)
		}
		return m, nil

	case "c":
		// Claiming needs an account.
		cur, ok := m.controller.Current()
		if !ok || (m.session != nil && m.session.Expired()) {
			return m, nil
		}
		if !m.signedIn {
			return m, navigate(msgs.RouteAuth, "")
		}
		return m, navigate(msgs.RouteDeal, cur.ID)

	case "u":
		if len(m.deals) == 0 {
			return m, nil
		}
		if !m.signedIn {
			return m, navigate(msgs.RouteAuth, "")
		}
		// Optimistic bump; the root model persists the vote, and the next
		// refresh carries the stored count back.
		pos := m.controller.Position()
		m.deals[pos].Upvotes++
		id := m.deals[pos].ID
		return m, func() tea.Msg {
			return msgs.DealUpvoted{DealID: id}
		}

	case "v":
		if !m.signedIn {
			return m, navigate(msgs.RouteAuth, "")
		}
		return m, navigate(msgs.RouteVendor, "")
	}

	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m, m.observe(feed.DirNext)
	case tea.MouseButtonWheelUp:
		return m, m.observe(feed.DirPrevious)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.pressY = msg.Y
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			break
		}
		m.dragging = false
		delta := m.pressY - msg.Y
		// Dragging the card upward advances the feed, mirroring touch.
		if delta >= dragThresholdRows {
			return m, m.observe(feed.DirNext)
		}
		if delta <= -dragThresholdRows {
			return m, m.observe(feed.DirPrevious)
		}
	}

	return m, nil
}

// View renders the focused card with a position footer.
func (m Model) View() string {
	if m.width == 0 {
		return "Initialising..."
	}

	cur, ok := m.controller.Current()
	if !ok {
		return m.styles.Empty.Render("No deals right now. New drops land here as vendors post them.")
	}

	card := m.card.View(cur, m.imageIndex, m.session, m.width)

	footer := m.styles.Position.Render(
		fmt.Sprintf("deal %d/%d", m.controller.Position()+1, m.controller.Len()),
	) + "  " + m.styles.Help.Render("j/k scroll • ←/→ photos • enter details • c claim • v vendor • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, card, "", footer)
}
