// Package detailview renders a single deal's full page: tabbed copy,
// quantity selection, the claim meter and collection terms.
package detailview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jkariuki/dealdrop/internal/cart"
	"github.com/jkariuki/dealdrop/internal/deal"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
)

type tab int

const (
	tabDescription tab = iota
	tabTerms
)

// Model is the deal detail view. A lookup miss renders the not-found state
// instead of failing; the deal might have been removed by a refresh between
// the feed render and the enter keypress.
type Model struct {
	d        deal.Deal
	notFound bool

	quantity int
	tab      tab

	tally *cart.Tally
	meter progress.Model

	styles feedview.Styles
	width  int
}

// New creates a detail view backed by the shared cart tally.
func New(tally *cart.Tally) Model {
	meter := progress.New(progress.WithDefaultGradient())
	meter.Width = 30
	return Model{
		tally:    tally,
		meter:    meter,
		styles:   feedview.DefaultStyles(),
		quantity: 1,
	}
}

// SetDeal mounts the view for d, resetting per-deal state.
func (m *Model) SetDeal(d deal.Deal) {
	m.d = d
	m.notFound = false
	m.quantity = 1
	m.tab = tabDescription
}

// SetNotFound mounts the not-found state, shown when the requested deal no
// longer exists.
func (m *Model) SetNotFound() {
	m.notFound = true
	m.d = deal.Deal{}
	m.quantity = 1
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	if w := width - 20; w > 10 && w < 60 {
		m.meter.Width = w
	}
}

// Deal returns the mounted deal.
func (m Model) Deal() deal.Deal { return m.d }

// Quantity returns the current selection.
func (m Model) Quantity() int { return m.quantity }

func back() tea.Msg {
	return msgs.NavigateMsg{Route: msgs.RouteFeed}
}

// Update handles quantity, tab and cart input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, back

		case "+", "=", "up", "k":
			if m.notFound {
				return m, nil
			}
			// A sold-out deal pins the selection at one.
			limit := m.d.Inventory
			if limit < 1 {
				limit = 1
			}
			if m.quantity < limit {
				m.quantity++
			}
			return m, nil

		case "-", "down", "j":
			if m.quantity > 1 {
				m.quantity--
			}
			return m, nil

		case "tab":
			if m.tab == tabDescription {
				m.tab = tabTerms
			} else {
				m.tab = tabDescription
			}
			return m, nil

		case "a", "enter":
			if m.notFound {
				return m, back
			}
			m.tally.Add(m.quantity)
			added := m.quantity
			total := m.tally.Items()
			return m, func() tea.Msg {
				return msgs.CartAdded{Quantity: added, Total: total}
			}
		}
	}

	return m, nil
}

// View renders the detail page.
func (m Model) View() string {
	if m.width == 0 {
		return "Initialising..."
	}
	if m.notFound {
		return m.styles.Empty.Render(
			"Deal not found.\n\nIt may have been claimed out or removed.\nPress esc to go back to the feed.")
	}

	inner := m.width - 8
	if inner < 24 {
		inner = 24
	}
	band := deal.DiscountBand(m.d.DiscountPercentage)

	var b strings.Builder

	title := m.styles.Title.Render(runewidth.Truncate(m.d.Title, inner, "…"))
	if m.d.VerifiedBadge() {
		title += " " + m.styles.PillCheck.Render("✓ Verified")
	}
	b.WriteString(title)
	b.WriteString("\n")
	if msg := m.d.HighlightMessage(); msg != "" {
		b.WriteString(m.styles.Highlight.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Price block.
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		m.styles.PriceByBand[band].Render(deal.FormatPrice(m.d.DiscountPrice)),
		m.styles.OriginalPrice.Render(deal.FormatPrice(m.d.OriginalPrice)),
		m.styles.PriceByBand[band].Render(fmt.Sprintf("%d%% OFF", m.d.DiscountPercentage))))

	// Tabs.
	descTab := "Description"
	termsTab := "Terms"
	if m.tab == tabDescription {
		descTab = m.styles.Title.Render(descTab)
		termsTab = m.styles.Location.Render(termsTab)
	} else {
		descTab = m.styles.Location.Render(descTab)
		termsTab = m.styles.Title.Render(termsTab)
	}
	b.WriteString(descTab + "  " + termsTab + "\n")

	body := m.d.Description
	if m.tab == tabTerms {
		body = m.d.Terms
		if body == "" {
			body = "No special terms. Standard collection rules apply."
		}
	}
	b.WriteString(m.styles.Description.Render(runewidth.Truncate(body, inner*3, "…")))
	b.WriteString("\n\n")

	// Claim meter: how much of the drop is gone.
	pool := m.d.Claimed + m.d.Inventory
	if pool > 0 {
		ratio := float64(m.d.Claimed) / float64(pool)
		b.WriteString(m.styles.Location.Render(
			fmt.Sprintf("%d claimed • %d left", m.d.Claimed, m.d.Inventory)))
		b.WriteString("\n")
		b.WriteString(m.meter.ViewAs(ratio))
		b.WriteString("\n\n")
	}

	// Quantity and running total.
	total := float64(m.quantity) * m.d.DiscountPrice
	b.WriteString(fmt.Sprintf("Quantity: %s   Total: %s\n\n",
		m.styles.Title.Render(fmt.Sprintf("− %d +", m.quantity)),
		m.styles.PriceByBand[band].Render(deal.FormatPrice(total))))

	// Collection terms.
	if m.d.CollectionLocation != "" {
		b.WriteString(m.styles.Location.Render("📍 " + m.d.CollectionLocation))
		b.WriteString("\n")
	}
	hours := int(m.d.CollectionTimeLimit().Hours())
	b.WriteString(m.styles.Location.Render(
		fmt.Sprintf("Collect within %d hours of claiming", hours)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Help.Render("+/- quantity • tab terms • a add to cart • esc back"))

	page := m.styles.CardBorder.Width(inner + 2).Render(b.String())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, page)
}
