// Package ui provides the Bubble Tea TUI for dealdrop.
package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/deal"
	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/ui/authview"
	"github.com/jkariuki/dealdrop/internal/ui/detailview"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
	"github.com/jkariuki/dealdrop/internal/ui/vendorview"
)

// App is the root Bubble Tea model. It routes between the feed, detail,
// auth and vendor views and owns nothing else: deals arrive via messages,
// store access goes through injected functions, and "who is signed in"
// is read from the injected session context, never ambient state.
type App struct {
	sessions   *auth.SessionContext
	lookupDeal func(id string) (deal.Deal, error)
	upvoteDeal func(id string) error

	route  msgs.Route
	feed   feedview.Model
	detail detailview.Model
	auth   authview.Model
	vendor vendorview.Model

	status    string
	statusErr bool

	width  int
	height int
	ready  bool
}

// NewApp wires the root model from its views.
func NewApp(
	feed feedview.Model,
	detail detailview.Model,
	authv authview.Model,
	vendorv vendorview.Model,
	sessions *auth.SessionContext,
	lookupDeal func(id string) (deal.Deal, error),
	upvoteDeal func(id string) error,
) App {
	return App{
		sessions:   sessions,
		lookupDeal: lookupDeal,
		upvoteDeal: upvoteDeal,
		route:      msgs.RouteFeed,
		feed:       feed,
		detail:     detail,
		auth:       authv,
		vendor:     vendorv,
	}
}

// Route returns the active route.
func (a App) Route() msgs.Route { return a.route }

// Init starts the feed's animation and countdown loops.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update dispatches messages to the active view. Feed clock messages reach
// the feed regardless of route so its card state stays live.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.feed.SetSize(msg.Width, msg.Height-2)
		a.detail.SetSize(msg.Width, msg.Height-2)
		a.auth.SetSize(msg.Width, msg.Height-2)
		a.vendor.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case msgs.NavigateMsg:
		return a.navigate(msg)

	case msgs.DealsLoaded:
		if msg.Err != nil {
			a.status = "Could not refresh deals: " + msg.Err.Error()
			a.statusErr = true
			return a, nil
		}
		// The refresh remounts the focused card; the returned command
		// restarts its countdown ticks.
		return a, a.feed.SetDeals(msg.Deals)

	case msgs.SessionChanged:
		a.feed.SetSignedIn(msg.Session != nil)
		if msg.Session == nil {
			a.status = "Signed out"
			a.statusErr = false
			if a.route == msgs.RouteVendor {
				a.route = msgs.RouteFeed
			}
		} else {
			a.status = "Signed in as " + msg.Session.Email
			a.statusErr = false
		}
		return a, nil

	case msgs.DealUpvoted:
		if err := a.upvoteDeal(msg.DealID); err != nil {
			logging.Error("upvote failed", "deal", msg.DealID, "error", err)
			a.status = "Could not record your vote"
			a.statusErr = true
		}
		return a, nil

	case msgs.CartAdded:
		a.status = fmt.Sprintf("Added %d to cart (%d total)", msg.Quantity, msg.Total)
		a.statusErr = false
		return a, nil

	case msgs.StatusMsg:
		a.status = msg.Text
		a.statusErr = msg.IsErr
		return a, nil

	case feedview.FrameMsg, feedview.CountdownTickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && a.route == msgs.RouteFeed {
			return a, tea.Quit
		}
		return a.updateActive(msg)
	}

	return a.updateActive(msg)
}

// navigate switches the active view, mounting it as needed.
func (a App) navigate(msg msgs.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Route {
	case msgs.RouteDeal:
		d, err := a.lookupDeal(msg.DealID)
		switch {
		case errors.Is(err, deal.ErrNotFound):
			// A refresh may have removed the deal between render and
			// keypress; that is a page, not a failure.
			a.detail.SetNotFound()
		case err != nil:
			logging.Error("deal lookup failed", "deal", msg.DealID, "error", err)
			a.status = err.Error()
			a.statusErr = true
			return a, nil
		default:
			a.detail.SetDeal(d)
		}
		a.route = msgs.RouteDeal
		return a, nil

	case msgs.RouteAuth:
		a.auth.Reset()
		a.route = msgs.RouteAuth
		return a, nil

	case msgs.RouteVendor, msgs.RouteCreateDeal:
		userID, _, ok := a.sessions.User()
		if !ok {
			a.auth.Reset()
			a.route = msgs.RouteAuth
			return a, nil
		}
		cmd := a.vendor.SetUser(userID)
		a.route = msgs.RouteVendor
		return a, cmd

	default:
		a.route = msgs.RouteFeed
		return a, nil
	}
}

// updateActive forwards a message to the view that owns the screen.
func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case msgs.RouteDeal:
		a.detail, cmd = a.detail.Update(msg)
	case msgs.RouteAuth:
		a.auth, cmd = a.auth.Update(msg)
	case msgs.RouteVendor:
		a.vendor, cmd = a.vendor.Update(msg)
	default:
		a.feed, cmd = a.feed.Update(msg)
	}
	return a, cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View renders the header, the active view and the status line.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	who := "guest"
	if _, email, ok := a.sessions.User(); ok {
		who = email
	}
	header := headerStyle.Render("DealDrop") + "  " + userStyle.Render(who)

	var body string
	switch a.route {
	case msgs.RouteDeal:
		body = a.detail.View()
	case msgs.RouteAuth:
		body = a.auth.View()
	case msgs.RouteVendor:
		body = a.vendor.View()
	default:
		body = a.feed.View()
	}

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(a.status)
		} else {
			status = statusStyle.Render(a.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}
