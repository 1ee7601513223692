package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

// DashboardModel is the landing page for a signed-in account. It shows the
// profile and session details and offers session actions: manual token
// refresh, copying the bearer token for API use, and logout.
type DashboardModel struct {
	ctx      context.Context
	services *service.ClientServices

	status     string
	refreshing bool
}

func NewDashboardModel(ctx context.Context, services *service.ClientServices) *DashboardModel {
	return &DashboardModel{
		ctx:      ctx,
		services: services,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements [tea.Model]. Hotkeys:
//   - c: copies the current bearer token to the clipboard.
//   - r: forces a token refresh immediately.
//   - u: opens the user administration screen (admins only; the guard
//     bounces everyone else back here).
//   - l: signs out.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = "Refresh failed: " + msg.err.Error()
		} else {
			m.status = "Token refreshed"
		}
		return m, m.cmdClearStatusLater()

	case copiedMsg:
		m.status = "Token copied to clipboard"
		return m, m.cmdClearStatusLater()

	case logoutDoneMsg:
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return m, m.cmdCopyToken()
		case "r":
			if m.refreshing {
				return m, nil
			}
			m.refreshing = true
			return m, m.cmdRefresh()
		case "u":
			return m, func() tea.Msg { return NavigateTo{Page: "users"} }
		case "l":
			return m, m.cmdLogout()
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	state := m.services.AuthService.State()

	var b strings.Builder
	if state.User != nil {
		user := state.User
		b.WriteString("Name     │ " + user.FullName() + "\n")
		b.WriteString("Email    │ " + user.Email + "\n")
		b.WriteString("Role     │ " + string(user.Role) + "\n")
		if user.LastLoginAt != nil {
			b.WriteString("Last in  │ " + user.LastLoginAt.Format(time.RFC822) + "\n")
		}
		b.WriteString("Verified │ " + yesNo(user.EmailVerified) + "\n")
	}

	b.WriteString("Token    │ " + fitText(m.services.API.Token(), 44) + "\n")

	if m.refreshing {
		b.WriteString("\n[Refreshing token...]\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	hotKeys := "c: copy token │ r: refresh │ l: sign out"
	if state.User != nil && state.User.Role == models.RoleAdmin {
		hotKeys += " │ u: manage users"
	}

	return appStyle.Render(renderPage("TRADEDESK", strings.TrimRight(b.String(), "\n"), hotKeys))
}

func (m *DashboardModel) cmdCopyToken() tea.Cmd {
	token := m.services.API.Token()

	return func() tea.Msg {
		if err := clipboard.WriteAll(token); err != nil {
			return clearStatusMsg{}
		}
		return copiedMsg{}
	}
}

func (m *DashboardModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		return refreshDoneMsg{err: auth.RefreshToken(ctx)}
	}
}

func (m *DashboardModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		_ = auth.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m *DashboardModel) cmdClearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
