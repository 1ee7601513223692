package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/adapter"
	"github.com/tradedesk/tradedesk/models"
)

// UsersModel is the admin screen for account management. It lists every
// account and lets an administrator toggle the selected account's role
// between user and admin.
type UsersModel struct {
	ctx context.Context
	api adapter.AuthAPI

	users    []models.User
	cursor   int
	loading  bool
	updating bool
	errMsg   string
}

func NewUsersModel(ctx context.Context, api adapter.AuthAPI) *UsersModel {
	return &UsersModel{
		ctx: ctx,
		api: api,
	}
}

// Init implements [tea.Model]. Reloads the account list every time the page
// is opened.
func (m *UsersModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdLoadUsers()
}

func (m *UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg, _ = describeAPIError(msg.err)
			return m, nil
		}
		m.users = msg.users
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		return m, nil

	case roleUpdatedMsg:
		m.updating = false
		if msg.err != nil {
			m.errMsg, _ = describeAPIError(msg.err)
			return m, nil
		}
		for i := range m.users {
			if m.users[i].ID == msg.user.ID {
				m.users[i] = msg.user
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: "dashboard"} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.users)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.updating || m.cursor >= len(m.users) {
				return m, nil
			}
			m.updating = true
			m.errMsg = ""
			return m, m.cmdToggleRole(m.users[m.cursor])
		}
	}

	return m, nil
}

func (m *UsersModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading accounts...\n")
	} else {
		b.WriteString("    Email                           │ Role  │ Active\n")
		b.WriteString("────────────────────────────────────┼───────┼───────\n")
		for i, user := range m.users {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-34s │ %-5s │ %s\n",
				marker, fitText(user.Email, 34), user.Role, yesNo(user.IsActive)))
		}
	}

	if m.updating {
		b.WriteString("\n[Updating role...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return appStyle.Render(renderPage(
		"USER MANAGEMENT",
		strings.TrimRight(b.String(), "\n"),
		"↑/↓: select │ enter: toggle role │ esc: back",
	))
}

func (m *UsersModel) cmdLoadUsers() tea.Cmd {
	ctx := m.ctx
	api := m.api

	return func() tea.Msg {
		users, err := api.ListUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m *UsersModel) cmdToggleRole(user models.User) tea.Cmd {
	ctx := m.ctx
	api := m.api

	role := models.RoleAdmin
	if user.Role == models.RoleAdmin {
		role = models.RoleUser
	}

	return func() tea.Msg {
		updated, err := api.UpdateUserRole(ctx, user.ID, role)
		return roleUpdatedMsg{user: updated, err: err}
	}
}
