// Package vendorview is the vendor side of the app: the become-a-vendor
// application and the deal submission form.
package vendorview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/jkariuki/dealdrop/internal/deal"
	"github.com/jkariuki/dealdrop/internal/store"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
	"github.com/jkariuki/dealdrop/internal/vendor"
)

// mode is the view's current screen.
type mode int

const (
	modeApply mode = iota
	modeDashboard
	modeCreate
)

// Internal messages carrying service results back onto the event loop.
type (
	profileMsg struct {
		v   store.Vendor
		err error
	}
	appliedMsg struct {
		v   store.Vendor
		err error
	}
	submittedMsg struct {
		d   deal.Deal
		err error
	}
	dealsMsg struct {
		deals []deal.Deal
		err   error
	}
)

var applyLabels = []string{"Business name", "Email", "Phone", "Location"}

var createLabels = []string{
	"Title",
	"Description",
	"Original price (Ksh)",
	"Discount price (Ksh)",
	"Discount %",
	"Inventory",
	"Category",
	"Expiry (days, food only)",
	"Time left (minutes)",
	"Collection location",
	"Terms",
}

const (
	createTitle = iota
	createDescription
	createOriginal
	createDiscount
	createPercent
	createInventory
	createCategory
	createExpiry
	createTimeLeft
	createLocation
	createTerms
)

// Model drives vendor onboarding and deal submission for the signed-in
// user. The service is called off the event loop; validator errors come
// back field by field.
type Model struct {
	service *vendor.Service
	now     func() time.Time

	userID  string
	profile store.Vendor
	mine    []deal.Deal

	mode    mode
	inputs  []textinput.Model
	focused int
	damaged bool

	formErrs []string
	notice   string
	busy     bool

	styles feedview.Styles
	width  int
}

// New creates the vendor view.
func New(service *vendor.Service) Model {
	return Model{
		service: service,
		now:     time.Now,
		styles:  feedview.DefaultStyles(),
	}
}

// SetUser mounts the view for the signed-in user and loads their profile.
func (m *Model) SetUser(userID string) tea.Cmd {
	m.userID = userID
	m.notice = ""
	m.formErrs = nil
	m.busy = true
	service := m.service
	return func() tea.Msg {
		v, err := service.VendorFor(userID)
		return profileMsg{v: v, err: err}
	}
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
}

// Dashboard reports whether the vendor dashboard is the active screen.
func (m Model) Dashboard() bool { return m.mode == modeDashboard }

func (m *Model) mountApply() {
	m.mode = modeApply
	m.inputs = buildInputs(applyLabels)
	m.focused = 0
	m.inputs[0].Focus()
	m.formErrs = nil
}

func (m *Model) mountCreate() {
	m.mode = modeCreate
	m.inputs = buildInputs(createLabels)
	m.inputs[createTimeLeft].SetValue("60")
	m.inputs[createCategory].SetValue(string(deal.CategoryElectronics))
	m.damaged = false
	m.focused = 0
	m.inputs[0].Focus()
	m.formErrs = nil
}

func buildInputs(labels []string) []textinput.Model {
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 160
		inputs[i] = in
	}
	return inputs
}

func (m *Model) focus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	n := len(m.inputs)
	m.focused = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focused {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// fieldErrors flattens validator errors into display lines.
func fieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			lines = append(lines, fe.Field()+" is required")
		case "email":
			lines = append(lines, "Enter a valid email address")
		case "min":
			lines = append(lines, fe.Field()+" is too short")
		case "ltefield":
			lines = append(lines, "Discount price must not exceed the original price")
		case "gt":
			lines = append(lines, fe.Field()+" must be positive")
		default:
			lines = append(lines, fe.Field()+" is invalid")
		}
	}
	return lines
}

func (m Model) submitApplication() tea.Cmd {
	app := vendor.Application{
		BusinessName: strings.TrimSpace(m.inputs[0].Value()),
		Email:        strings.TrimSpace(m.inputs[1].Value()),
		Phone:        strings.TrimSpace(m.inputs[2].Value()),
		Location:     strings.TrimSpace(m.inputs[3].Value()),
	}
	service, userID := m.service, m.userID
	return func() tea.Msg {
		v, err := service.Apply(userID, app)
		return appliedMsg{v: v, err: err}
	}
}

// parseDeal builds a submission from the create form. Numeric fields are
// parsed here; anything unparseable is a form error before the service
// sees the deal.
func (m Model) parseDeal() (deal.Deal, []string) {
	var errs []string
	num := func(idx int) float64 {
		v := strings.TrimSpace(m.inputs[idx].Value())
		if v == "" {
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, createLabels[idx]+" must be a number")
		}
		return f
	}
	whole := func(idx int) int {
		v := strings.TrimSpace(m.inputs[idx].Value())
		if v == "" {
			return 0
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, createLabels[idx]+" must be a whole number")
		}
		return n
	}

	d := deal.Deal{
		Title:              strings.TrimSpace(m.inputs[createTitle].Value()),
		Description:        strings.TrimSpace(m.inputs[createDescription].Value()),
		OriginalPrice:      num(createOriginal),
		DiscountPrice:      num(createDiscount),
		DiscountPercentage: whole(createPercent),
		Inventory:          whole(createInventory),
		Category:           deal.Category(strings.TrimSpace(m.inputs[createCategory].Value())),
		TimeLeftSeconds:    whole(createTimeLeft) * 60,
		CollectionLocation: strings.TrimSpace(m.inputs[createLocation].Value()),
		Terms:              strings.TrimSpace(m.inputs[createTerms].Value()),
		IsDamaged:          m.damaged,
	}
	if days := whole(createExpiry); days > 0 {
		d.ExpiryDate = m.now().Add(time.Duration(days) * 24 * time.Hour)
	}
	return d, errs
}

func (m Model) submitDeal() tea.Cmd {
	d, errs := m.parseDeal()
	if len(errs) > 0 {
		return func() tea.Msg { return submittedMsg{err: errors.New(strings.Join(errs, "; "))} }
	}
	service, vendorID, now := m.service, m.profile.ID, m.now()
	return func() tea.Msg {
		saved, err := service.SubmitDeal(vendorID, d, now)
		return submittedMsg{d: saved, err: err}
	}
}

func (m Model) loadDeals() tea.Cmd {
	service, vendorID := m.service, m.profile.ID
	return func() tea.Msg {
		deals, err := service.Deals(vendorID)
		return dealsMsg{deals: deals, err: err}
	}
}

func back() tea.Msg {
	return msgs.NavigateMsg{Route: msgs.RouteFeed}
}

// Update handles service results and form input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case profileMsg:
		m.busy = false
		if errors.Is(msg.err, store.ErrUserNotFound) {
			m.mountApply()
			return m, nil
		}
		if msg.err != nil {
			m.formErrs = []string{msg.err.Error()}
			return m, nil
		}
		m.profile = msg.v
		m.mode = modeDashboard
		return m, m.loadDeals()

	case appliedMsg:
		m.busy = false
		if msg.err != nil {
			m.formErrs = fieldErrors(msg.err)
			return m, nil
		}
		m.profile = msg.v
		m.mode = modeDashboard
		m.notice = "Application accepted. Welcome aboard."
		return m, m.loadDeals()

	case submittedMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, vendor.ErrNotEligible) {
				m.formErrs = []string{msg.err.Error()}
			} else {
				m.formErrs = fieldErrors(msg.err)
			}
			return m, nil
		}
		m.mode = modeDashboard
		m.notice = fmt.Sprintf("%q is live at the end of the feed.", msg.d.Title)
		return m, m.loadDeals()

	case dealsMsg:
		if msg.err == nil {
			m.mine = msg.deals
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.mode != modeDashboard && len(m.inputs) == 0 {
		// Profile load failed before a form was mounted.
		if msg.String() == "esc" {
			return m, back
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if m.mode == modeCreate {
			m.mode = modeDashboard
			m.formErrs = nil
			return m, nil
		}
		return m, back
	}

	if m.mode == modeDashboard {
		switch msg.String() {
		case "n":
			m.mountCreate()
		case "q":
			return m, back
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.focus(m.focused + 1)
		return m, nil
	case "shift+tab", "up":
		m.focus(m.focused - 1)
		return m, nil
	case "ctrl+d":
		if m.mode == modeCreate {
			m.damaged = !m.damaged
		}
		return m, nil
	case "enter":
		if m.focused < len(m.inputs)-1 {
			m.focus(m.focused + 1)
			return m, nil
		}
		m.busy = true
		m.formErrs = nil
		if m.mode == modeApply {
			return m, m.submitApplication()
		}
		return m, m.submitDeal()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initialising..."
	}

	var b strings.Builder
	switch m.mode {
	case modeDashboard:
		b.WriteString(m.styles.Title.Render(m.profile.BusinessName))
		b.WriteString("\n")
		b.WriteString(m.styles.Location.Render(m.profile.Location))
		b.WriteString("\n\n")
		if m.notice != "" {
			b.WriteString(m.styles.Highlight.Render(m.notice))
			b.WriteString("\n\n")
		}
		if len(m.mine) == 0 {
			b.WriteString(m.styles.Description.Render("No deals posted yet."))
			b.WriteString("\n")
		} else {
			for _, d := range m.mine {
				// The stored flag shows here; the feed badge is derived.
				flag := ""
				if d.Verified {
					flag = "  " + m.styles.PillCheck.Render("verified")
				}
				b.WriteString(fmt.Sprintf("%s  %s  %s%s\n",
					m.styles.Title.Render(d.Title),
					m.styles.PriceByBand[deal.DiscountBand(d.DiscountPercentage)].Render(
						fmt.Sprintf("%d%%", d.DiscountPercentage)),
					m.styles.Location.Render(fmt.Sprintf("%d claimed", d.Claimed)),
					flag))
			}
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("n new deal • esc back"))

	case modeApply, modeCreate:
		title := "Become a vendor"
		if m.mode == modeCreate {
			title = "Post a deal"
		}
		b.WriteString(m.styles.Title.Render(title))
		b.WriteString("\n\n")
		for i := range m.inputs {
			b.WriteString(m.styles.Location.Render(labelFor(m.mode, i) + ":"))
			b.WriteString(" ")
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		if m.mode == modeCreate {
			mark := "[ ]"
			if m.damaged {
				mark = "[x]"
			}
			b.WriteString(m.styles.Location.Render(mark + " damaged / refurbished (ctrl+d)"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.busy {
			b.WriteString(m.styles.Location.Render("Working..."))
			b.WriteString("\n")
		}
		for _, e := range m.formErrs {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(e))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter next/submit • tab move • esc back"))
	}

	page := m.styles.CardBorder.Render(b.String())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, page)
}

func labelFor(mode mode, i int) string {
	if mode == modeApply {
		return applyLabels[i]
	}
	return createLabels[i]
}
