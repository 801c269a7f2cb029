package authview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/store"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
)

func testForm(t *testing.T) (Model, auth.Provider) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	provider := auth.NewLocalProvider(st, "test-secret", 100)
	m := New(provider)
	m.SetSize(80, 24)
	return m, provider
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// submitForm drives enter past the remaining fields and runs the provider
// command, feeding its result back into the model.
func submitForm(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = m.Update(enter())
		if cmd != nil {
			break
		}
	}
	if cmd == nil {
		return m, nil
	}
	result := cmd()
	return m.Update(result)
}

func TestShortPasswordNeverReachesProvider(t *testing.T) {
	m, _ := testForm(t)
	m.inputs[fieldEmail].SetValue("jane@example.com")
	m.inputs[fieldPassword].SetValue("short")

	m, _ = m.Update(enter()) // advance to password
	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Fatal("invalid form submitted to the provider")
	}
	if !strings.Contains(m.View(), "at least 8 characters") {
		t.Fatal("password length error not shown")
	}
}

func TestSignUpMismatchShown(t *testing.T) {
	m, _ := testForm(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}) // to sign-up
	m.inputs[fieldEmail].SetValue("jane@example.com")
	m.inputs[fieldPassword].SetValue("password-one")
	m.inputs[fieldConfirm].SetValue("password-two")

	m, _ = m.Update(enter())
	m, _ = m.Update(enter())
	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Fatal("mismatched form submitted to the provider")
	}
	if !strings.Contains(m.View(), "do not match") {
		t.Fatal("mismatch error not shown")
	}
}

func TestSignUpRoundTripNavigatesToFeed(t *testing.T) {
	m, provider := testForm(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.inputs[fieldEmail].SetValue("jane@example.com")
	m.inputs[fieldPassword].SetValue("long-enough-password")
	m.inputs[fieldConfirm].SetValue("long-enough-password")

	m, cmd := submitForm(t, m)
	if cmd == nil {
		t.Fatal("successful sign-up produced no navigation")
	}
	nav, ok := cmd().(msgs.NavigateMsg)
	if !ok || nav.Route != msgs.RouteFeed {
		t.Fatalf("routed to %v, want feed", nav.Route)
	}
	if _, signedIn := provider.Session(); !signedIn {
		t.Fatal("provider has no session after sign-up")
	}
}

func TestProviderErrorSurfacedVerbatim(t *testing.T) {
	m, _ := testForm(t)
	m.inputs[fieldEmail].SetValue("nobody@example.com")
	m.inputs[fieldPassword].SetValue("long-enough-password")

	m, cmd := submitForm(t, m)
	if cmd != nil {
		t.Fatal("failed sign-in still navigated")
	}
	if !strings.Contains(m.View(), auth.ErrInvalidCredentials.Error()) {
		t.Fatal("provider error not shown verbatim")
	}
}

func TestOAuthUnavailableShown(t *testing.T) {
	m, _ := testForm(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if !strings.Contains(m.View(), auth.ErrOAuthUnavailable.Error()) {
		t.Fatal("oauth error not shown")
	}
}

func TestResetFlowReturnsToSignIn(t *testing.T) {
	m, _ := testForm(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Mode() != ModeReset {
		t.Fatalf("mode = %v, want reset", m.Mode())
	}
	m.inputs[fieldEmail].SetValue("jane@example.com")

	m, _ = submitForm(t, m)
	if m.Mode() != ModeSignIn {
		t.Fatalf("mode = %v after reset, want sign-in", m.Mode())
	}
	if !strings.Contains(m.View(), "reset link") {
		t.Fatal("reset notice not shown")
	}
}

func TestEscapeLeavesWithoutSession(t *testing.T) {
	m, provider := testForm(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	nav, ok := cmd().(msgs.NavigateMsg)
	if !ok || nav.Route != msgs.RouteFeed {
		t.Fatal("esc should return to the feed")
	}
	if _, signedIn := provider.Session(); signedIn {
		t.Fatal("no session should exist")
	}
}
