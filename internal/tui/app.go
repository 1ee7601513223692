package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/service"
)

type page struct {
	model tea.Model
	kind  RouteKind
}

// RootModel is a TUI router:
// 1) keeps the active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) applies the route guard to every frame
// 5) starts/stops the token refresh job on auth transitions
// 6) delegates all other messages to the active page
type RootModel struct {
	ctx      context.Context
	services *service.ClientServices

	pages   map[string]page
	current string

	state           service.AuthState
	refreshInterval time.Duration
	refreshRunning  bool

	// returnTo remembers the page a visitor was sent to login from, so a
	// successful sign-in lands them back where they were heading.
	returnTo string

	quitByUser bool
}

// NewRootModel registers all pages and opens startPage. The guard decides on
// the first frame whether startPage is actually rendered.
func NewRootModel(ctx context.Context, services *service.ClientServices, pages map[string]page, startPage string, refreshInterval time.Duration) RootModel {
	return RootModel{
		ctx:             ctx,
		services:        services,
		pages:           pages,
		current:         startPage,
		state:           services.AuthService.State(),
		refreshInterval: refreshInterval,
	}
}

func (r RootModel) Init() tea.Cmd {
	if p, ok := r.pages[r.current]; ok {
		return p.model.Init()
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			r.quitByUser = true
			return r, tea.Quit
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		if _, exists := r.pages[nav.Page]; !exists {
			return r, nil
		}
		r.current = nav.Page
		return r.applyGuard(r.pages[r.current].model.Init())
	}

	var cmd tea.Cmd
	if p, ok := r.pages[r.current]; ok {
		p.model, cmd = p.model.Update(msg)
		r.pages[r.current] = p
	}

	return r.applyGuard(cmd)
}

// applyGuard re-reads the auth state, redirects when the current page no
// longer matches it, and keeps the refresh job aligned with authentication.
func (r RootModel) applyGuard(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	r.state = r.services.AuthService.State()
	r = r.syncRefreshJob()

	switch Decide(r.pages[r.current].kind, r.state) {
	case RedirectLogin:
		if r.current != "login" {
			r.returnTo = r.current
			r.current = "login"
			return r, tea.Batch(cmd, r.pages["login"].model.Init())
		}
	case RedirectHome:
		target := "dashboard"
		// One-shot: a loop is impossible because the next redirect starts
		// from an empty returnTo.
		if _, ok := r.pages[r.returnTo]; ok {
			target = r.returnTo
		}
		r.returnTo = ""
		if r.current != target {
			r.current = target
			return r, tea.Batch(cmd, r.pages[target].model.Init())
		}
	}

	return r, cmd
}

// syncRefreshJob starts the 5-minute silent refresh while a session is
// active and stops it once the session ends.
func (r RootModel) syncRefreshJob() RootModel {
	if r.state.IsAuthenticated && !r.refreshRunning {
		r.services.RefreshJob.Start(r.ctx, r.refreshInterval)
		r.refreshRunning = true
	}
	if !r.state.IsAuthenticated && r.refreshRunning {
		r.services.RefreshJob.Stop()
		r.refreshRunning = false
	}
	return r
}

func (r RootModel) View() string {
	p, ok := r.pages[r.current]
	if !ok {
		return appStyle.Render(renderPage("TRADEDESK", "", ""))
	}

	switch Decide(p.kind, r.state) {
	case Loading:
		return appStyle.Render(renderPage("TRADEDESK", "Loading session...", ""))
	case Suspended:
		return appStyle.Render(suspendedStyle.Render(
			"Account suspended\n\nYour account has been deactivated.\nContact an administrator to restore access."))
	default:
		return p.model.View()
	}
}
