package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/cart"
	"github.com/jkariuki/dealdrop/internal/store"
	"github.com/jkariuki/dealdrop/internal/ui/authview"
	"github.com/jkariuki/dealdrop/internal/ui/detailview"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
	"github.com/jkariuki/dealdrop/internal/ui/vendorview"
	"github.com/jkariuki/dealdrop/internal/vendor"
)

func testApp(t *testing.T) (App, *store.Store, *auth.LocalProvider) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.SeedIfEmpty(time.Now()); err != nil {
		t.Fatal(err)
	}

	deals, err := st.ListDeals()
	if err != nil {
		t.Fatal(err)
	}

	provider := auth.NewLocalProvider(st, "test-secret", 100)
	sessions := auth.NewSessionContext(provider)
	sessions.Subscribe()
	t.Cleanup(sessions.Dispose)
	tally := &cart.Tally{}

	app := NewApp(
		feedview.New(deals, 0, 0),
		detailview.New(tally),
		authview.New(provider),
		vendorview.New(vendor.NewService(st)),
		sessions,
		st.GetDeal,
		st.UpvoteDeal,
	)

	sized, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(App), st, provider
}

// signIn opens a real provider session, which the app's session context
// observes, and delivers the change message the program loop would send.
func signIn(t *testing.T, app App, provider *auth.LocalProvider, email string) App {
	t.Helper()
	sess, err := provider.SignUp(email, "password123", nil)
	if err != nil {
		t.Fatal(err)
	}
	next, _ := app.Update(msgs.SessionChanged{Session: &sess})
	return next.(App)
}

func TestStartsOnFeed(t *testing.T) {
	app, _, _ := testApp(t)

	if app.Route() != msgs.RouteFeed {
		t.Fatalf("route = %v, want feed", app.Route())
	}
	if !strings.Contains(app.View(), "DealDrop") {
		t.Fatal("header missing")
	}
}

func TestEnterOpensDealDetail(t *testing.T) {
	app, _, _ := testApp(t)

	next, _ := app.Update(msgs.NavigateMsg{Route: msgs.RouteDeal, DealID: "1"})
	app = next.(App)

	if app.Route() != msgs.RouteDeal {
		t.Fatalf("route = %v, want deal", app.Route())
	}
	cur, _ := app.feed.Current()
	if !strings.Contains(app.View(), cur.Title[:10]) {
		t.Fatal("detail view does not show the deal")
	}
}

func TestMissingDealRendersNotFound(t *testing.T) {
	app, _, _ := testApp(t)

	next, _ := app.Update(msgs.NavigateMsg{Route: msgs.RouteDeal, DealID: "no-such-deal"})
	app = next.(App)

	if app.Route() != msgs.RouteDeal {
		t.Fatal("lookup miss should still open the detail route")
	}
	if !strings.Contains(app.View(), "Deal not found") {
		t.Fatal("not-found page missing")
	}
}

func TestVendorRouteGatedOnSession(t *testing.T) {
	app, _, provider := testApp(t)

	next, _ := app.Update(msgs.NavigateMsg{Route: msgs.RouteVendor})
	app = next.(App)
	if app.Route() != msgs.RouteAuth {
		t.Fatalf("signed-out vendor visit routed to %v, want auth", app.Route())
	}

	app = signIn(t, app, provider, "jane@example.com")

	next, cmd := app.Update(msgs.NavigateMsg{Route: msgs.RouteVendor})
	app = next.(App)
	if app.Route() != msgs.RouteVendor {
		t.Fatalf("signed-in vendor visit routed to %v", app.Route())
	}
	if cmd == nil {
		t.Fatal("vendor mount should load the profile")
	}
}

func TestHeaderIdentityFromSessionContext(t *testing.T) {
	app, _, provider := testApp(t)

	if !strings.Contains(app.View(), "guest") {
		t.Fatal("signed-out header should show guest")
	}

	app = signIn(t, app, provider, "jane@example.com")
	if !strings.Contains(app.View(), "jane@example.com") {
		t.Fatal("header does not show the session user")
	}
}

func TestSignOutLeavesVendorView(t *testing.T) {
	app, _, provider := testApp(t)

	app = signIn(t, app, provider, "jane@example.com")
	next, _ := app.Update(msgs.NavigateMsg{Route: msgs.RouteVendor})
	app = next.(App)

	if err := provider.SignOut(); err != nil {
		t.Fatal(err)
	}
	next, _ = app.Update(msgs.SessionChanged{Session: nil})
	app = next.(App)
	if app.Route() != msgs.RouteFeed {
		t.Fatalf("sign-out left route at %v, want feed", app.Route())
	}
	if !strings.Contains(app.View(), "guest") {
		t.Fatal("header should fall back to guest")
	}
}

func TestRefreshErrorSurfacesInStatus(t *testing.T) {
	app, st, _ := testApp(t)

	next, _ := app.Update(msgs.DealsLoaded{Err: errors.New("disk unplugged")})
	app = next.(App)
	if !strings.Contains(app.View(), "Could not refresh deals") {
		t.Fatal("refresh error not surfaced")
	}

	// A good refresh keeps the feed usable.
	deals, err := st.ListDeals()
	if err != nil {
		t.Fatal(err)
	}
	next, _ = app.Update(msgs.DealsLoaded{Deals: deals})
	app = next.(App)
	if _, ok := app.feed.Current(); !ok {
		t.Fatal("feed lost its catalogue")
	}
}

func TestRefreshReschedulesCountdown(t *testing.T) {
	app, st, _ := testApp(t)

	deals, err := st.ListDeals()
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := app.Update(msgs.DealsLoaded{Deals: deals})
	if cmd == nil {
		t.Fatal("refresh did not restart the focused card's countdown")
	}
}

func TestUpvotePersistsThroughStore(t *testing.T) {
	app, st, _ := testApp(t)

	before, err := st.GetDeal("1")
	if err != nil {
		t.Fatal(err)
	}
	app.Update(msgs.DealUpvoted{DealID: "1"})

	after, err := st.GetDeal("1")
	if err != nil {
		t.Fatal(err)
	}
	if after.Upvotes != before.Upvotes+1 {
		t.Fatalf("upvotes = %d after vote, want %d", after.Upvotes, before.Upvotes+1)
	}
}

func TestUpvoteMissSurfacesInStatus(t *testing.T) {
	app, _, _ := testApp(t)

	next, _ := app.Update(msgs.DealUpvoted{DealID: "no-such-deal"})
	app = next.(App)
	if !strings.Contains(app.View(), "Could not record your vote") {
		t.Fatal("failed vote not surfaced")
	}
}

func TestCartStatusLine(t *testing.T) {
	app, _, _ := testApp(t)

	next, _ := app.Update(msgs.CartAdded{Quantity: 2, Total: 5})
	app = next.(App)
	if !strings.Contains(app.View(), "Added 2 to cart (5 total)") {
		t.Fatal("cart status missing")
	}
}

func TestQuitKeys(t *testing.T) {
	app, _, _ := testApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q on the feed should quit")
	}
}
