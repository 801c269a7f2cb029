package feedview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jkariuki/dealdrop/internal/countdown"
	"github.com/jkariuki/dealdrop/internal/deal"
)

// Card renders one deal as the full-screen feed card. Pure: everything it
// shows comes from its arguments, so tests can render without a program.
type Card struct {
	Styles Styles
}

// formatCountdown renders seconds as h:mm:ss, dropping the hour when zero.
func formatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// View renders the card for d at the given image index and countdown state.
func (c Card) View(d deal.Deal, imageIndex int, session *countdown.Session, width int) string {
	if width < 30 {
		width = 30
	}
	inner := width - 6 // border + padding

	band := deal.DiscountBand(d.DiscountPercentage)
	expired := session != nil && session.Expired()

	var b strings.Builder

	// Countdown, the loudest element on the card.
	if session != nil {
		if expired {
			b.WriteString(c.Styles.CountdownOut.Render("⏱ 00:00  DEAL EXPIRED"))
		} else {
			b.WriteString(c.Styles.Countdown.Render("⏱ " + formatCountdown(session.Remaining())))
		}
		b.WriteString("\n\n")
	}

	// Image slot. One reference at a time; left/right cycles.
	img := d.ImageAt(imageIndex)
	slot := fmt.Sprintf("‹ %s ›", runewidth.Truncate(img, inner-8, "…"))
	if len(d.Images) > 1 {
		idx := ((imageIndex % len(d.Images)) + len(d.Images)) % len(d.Images)
		slot += c.Styles.Position.Render(fmt.Sprintf("  %d/%d", idx+1, len(d.Images)))
	}
	b.WriteString(c.Styles.Description.Render(slot))
	b.WriteString("\n\n")

	// Title with the derived verification badge.
	title := runewidth.Truncate(d.Title, inner-2, "…")
	line := c.Styles.Title.Render(title)
	if d.VerifiedBadge() {
		line += " " + c.Styles.PillCheck.Render("✓ Verified")
	}
	b.WriteString(line)
	b.WriteString("\n")

	if msg := d.HighlightMessage(); msg != "" {
		b.WriteString(c.Styles.Highlight.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(c.Styles.Description.Render(runewidth.Truncate(d.Description, inner, "…")))
	b.WriteString("\n\n")

	// Social proof row.
	proof := fmt.Sprintf("👀 %d watching   🛒 %d claimed   ▲ %d  ▼ %d",
		d.Watching, d.Claimed, d.Upvotes, d.Downvotes)
	b.WriteString(c.Styles.Location.Render(proof))
	b.WriteString("\n\n")

	// Price block: discounted price and percentage share the band color.
	price := c.Styles.PriceByBand[band].Render(deal.FormatPrice(d.DiscountPrice))
	was := c.Styles.OriginalPrice.Render(deal.FormatPrice(d.OriginalPrice))
	pct := c.Styles.PriceByBand[band].Render(fmt.Sprintf("%d%% OFF", d.DiscountPercentage))
	b.WriteString(fmt.Sprintf("%s  %s  %s", price, was, pct))
	b.WriteString("\n\n")

	if d.CollectionLocation != "" {
		b.WriteString(c.Styles.Location.Render("📍 " + d.CollectionLocation))
		b.WriteString("\n\n")
	}

	// Claim button, band-colored while live, grey once expired.
	if expired {
		b.WriteString(c.Styles.ButtonExpired.Render("Deal Expired"))
	} else {
		b.WriteString(c.Styles.ButtonByBand[band].Render("Claim this Deal"))
	}

	card := c.Styles.CardBorder.Width(inner + 2).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
