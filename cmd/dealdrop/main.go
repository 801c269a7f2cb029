package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/cart"
	"github.com/jkariuki/dealdrop/internal/config"
	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/refresh"
	"github.com/jkariuki/dealdrop/internal/store"
	"github.com/jkariuki/dealdrop/internal/ui"
	"github.com/jkariuki/dealdrop/internal/ui/authview"
	"github.com/jkariuki/dealdrop/internal/ui/detailview"
	"github.com/jkariuki/dealdrop/internal/ui/feedview"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
	"github.com/jkariuki/dealdrop/internal/ui/vendorview"
	"github.com/jkariuki/dealdrop/internal/vendor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dealdrop:", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides for development; missing file is fine.
	_ = godotenv.Load()

	if err := logging.Init(); err != nil {
		return err
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.SessionSecret == "" {
		// Tokens signed with an ephemeral secret die with the process;
		// set DEALDROP_SESSION_SECRET to keep sessions across restarts.
		cfg.Auth.SessionSecret = fmt.Sprintf("ephemeral-%d", time.Now().UnixNano())
		logging.Warn("no session secret configured, sessions will not survive restart")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, ".dealdrop")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.Open(filepath.Join(dataDir, "dealdrop.db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	if err := st.SeedIfEmpty(time.Now()); err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}

	deals, err := st.ListDeals()
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}

	provider := auth.NewLocalProvider(st, cfg.Auth.SessionSecret, cfg.Auth.SignInPerMinute)
	if token := strings.TrimSpace(os.Getenv("DEALDROP_SESSION_TOKEN")); token != "" {
		if err := provider.Restore(token); err != nil {
			logging.Warn("stored session token rejected", "error", err)
		}
	}
	sessionCtx := auth.NewSessionContext(provider)
	sessionCtx.Subscribe()
	defer sessionCtx.Dispose()

	tally := &cart.Tally{}

	app := ui.NewApp(
		feedview.New(deals,
			time.Duration(cfg.UI.GestureWindowMs)*time.Millisecond,
			time.Duration(cfg.UI.SettlePeriodMs)*time.Millisecond),
		detailview.New(tally),
		authview.New(provider),
		vendorview.New(vendor.NewService(st)),
		sessionCtx,
		st.GetDeal,
		st.UpvoteDeal,
	)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Session changes reach the UI as messages, same as everything else.
	unsubscribe := provider.OnSessionChange(func(s *auth.Session) {
		program.Send(msgs.SessionChanged{Session: s})
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coordinator := refresh.NewCoordinator(st, time.Duration(cfg.Catalogue.RefreshMinutes)*time.Minute)
	coordinator.Start(ctx, program)

	if session, ok := provider.Session(); ok {
		program.Send(msgs.SessionChanged{Session: &session})
	}

	_, err = program.Run()
	cancel()
	coordinator.Wait()
	return err
}
