// Package authview is the sign-in, sign-up and password-reset form.
package authview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
)

const minPasswordLen = 8

// colorError is the form error color.
var colorError = lipgloss.Color("203")

// Mode selects which form is shown.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
	ModeReset
)

func (m Mode) String() string {
	switch m {
	case ModeSignUp:
		return "Create account"
	case ModeReset:
		return "Reset password"
	default:
		return "Sign in"
	}
}

// resultMsg carries the provider's answer back onto the event loop.
type resultMsg struct {
	session auth.Session
	err     error
	reset   bool
}

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
)

// Model is the auth form. Provider errors are shown verbatim and never
// retried; the user decides what to do next.
type Model struct {
	provider auth.Provider
	mode     Mode

	inputs  []textinput.Model
	focused int

	formErr string
	notice  string
	busy    bool

	styles feedview.Styles
	width  int
}

// New creates the form in sign-in mode.
func New(provider auth.Provider) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return Model{
		provider: provider,
		inputs:   []textinput.Model{email, password, confirm},
		styles:   feedview.DefaultStyles(),
	}
}

// Reset clears the form for a fresh visit.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = fieldEmail
	m.inputs[fieldEmail].Focus()
	m.mode = ModeSignIn
	m.formErr = ""
	m.notice = ""
	m.busy = false
}

// Mode returns the active form mode.
func (m Model) Mode() Mode { return m.mode }

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
}

// fieldCount returns how many inputs the current mode uses.
func (m Model) fieldCount() int {
	switch m.mode {
	case ModeSignUp:
		return 3
	case ModeReset:
		return 1
	default:
		return 2
	}
}

func (m *Model) focus(i int) {
	count := m.fieldCount()
	m.focused = ((i % count) + count) % count
	for j := range m.inputs {
		if j == m.focused {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.formErr = ""
	m.notice = ""
	m.focus(fieldEmail)
}

// validate runs the local checks before any provider round trip.
func (m Model) validate() string {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	if email == "" || !strings.Contains(email, "@") {
		return "Enter a valid email address"
	}
	if m.mode == ModeReset {
		return ""
	}
	password := m.inputs[fieldPassword].Value()
	if len(password) < minPasswordLen {
		return fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
	}
	if m.mode == ModeSignUp && password != m.inputs[fieldConfirm].Value() {
		return "Passwords do not match"
	}
	return ""
}

// submit calls the provider off the event loop.
func (m Model) submit() tea.Cmd {
	mode := m.mode
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	provider := m.provider

	return func() tea.Msg {
		switch mode {
		case ModeSignUp:
			session, err := provider.SignUp(email, password, nil)
			return resultMsg{session: session, err: err}
		case ModeReset:
			err := provider.ResetPassword(email)
			return resultMsg{err: err, reset: true}
		default:
			session, err := provider.SignIn(email, password)
			return resultMsg{session: session, err: err}
		}
	}
}

// Update handles form input and provider results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			// Surfaced verbatim; sign-in failures stay deliberately vague.
			m.formErr = msg.err.Error()
			return m, nil
		}
		if msg.reset {
			m.setMode(ModeSignIn)
			m.notice = "If that account exists, a reset link is on its way."
			return m, nil
		}
		logging.Info("signed in", "user", msg.session.UserID)
		return m, func() tea.Msg {
			return msgs.NavigateMsg{Route: msgs.RouteFeed}
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg {
				return msgs.NavigateMsg{Route: msgs.RouteFeed}
			}

		case "tab", "down":
			m.focus(m.focused + 1)
			return m, nil
		case "shift+tab", "up":
			m.focus(m.focused - 1)
			return m, nil

		case "ctrl+s":
			if m.mode == ModeSignIn {
				m.setMode(ModeSignUp)
			} else {
				m.setMode(ModeSignIn)
			}
			return m, nil
		case "ctrl+r":
			m.setMode(ModeReset)
			return m, nil
		case "ctrl+g":
			// OAuth is offered but the local provider declines it.
			_, err := m.provider.SignInWithOAuth("google")
			if err != nil {
				m.formErr = err.Error()
			}
			return m, nil

		case "enter":
			if m.focused < m.fieldCount()-1 {
				m.focus(m.focused + 1)
				return m, nil
			}
			if errText := m.validate(); errText != "" {
				m.formErr = errText
				return m, nil
			}
			m.formErr = ""
			m.busy = true
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View renders the form for the active mode.
func (m Model) View() string {
	if m.width == 0 {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.mode.String()))
	b.WriteString("\n\n")

	for i := 0; i < m.fieldCount(); i++ {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.styles.Location.Render("Working..."))
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render(m.formErr))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Highlight.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(
		"enter submit • ctrl+s sign in/up • ctrl+r reset • ctrl+g google • esc back"))

	form := m.styles.CardBorder.Render(b.String())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, form)
}
