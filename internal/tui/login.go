// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/adapter"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

// LoginModel is the Bubble Tea model for the sign-in screen. It renders email
// and password inputs plus a remember-me toggle, and dispatches an async
// login command on form submission. Success is observed by [RootModel]
// through the auth state, which redirects to the dashboard.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	rememberMe bool
	submitting bool
	errMsg     string
	errField   string
}

// NewLoginModel creates a [LoginModel] with pre-configured email and password
// inputs. The email field receives focus immediately; the password field uses
// masked echo.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{emailInput, passwordInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the
// active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [loginResultMsg]: clears submitting state; on error, populates errMsg
//     and the highlighted field.
//   - tab / shift+tab: moves focus between inputs.
//   - ctrl+r: toggles remember-me.
//   - ctrl+n: navigates to the registration screen.
//   - enter: validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg, m.errField = describeAPIError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "ctrl+r":
			m.rememberMe = !m.rememberMe
			return m, nil
		case "ctrl+n":
			m.errMsg, m.errField = "", ""
			m.auth.ClearError()
			return m, func() tea.Msg { return NavigateTo{Page: "register"} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if email == "" || pass == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg, m.errField = "", ""
			m.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the login form as a two-column table
// with email and password inputs, the remember-me toggle, a submission
// indicator, and an optional error message.
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Email    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Remember │ [")
	if m.rememberMe {
		b.WriteString("x")
	} else {
		b.WriteString(" ")
	}
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		if m.errField != "" {
			b.WriteString(" (" + m.errField + ")")
		}
		b.WriteString("\n")
	}

	return appStyle.Render(renderPage(
		"SIGN IN",
		strings.TrimRight(b.String(), "\n"),
		"enter: submit │ tab: next field │ ctrl+r: remember me │ ctrl+n: register",
	))
}

func (m *LoginModel) cmdLogin(email, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	remember := m.rememberMe

	return func() tea.Msg {
		err := auth.Login(ctx, models.LoginRequest{
			Email:      email,
			Password:   pass,
			RememberMe: remember,
		})
		return loginResultMsg{err: err}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// describeAPIError extracts the human-readable message and, when the API
// tagged one, the offending field name.
func describeAPIError(err error) (message, field string) {
	var fieldErr *adapter.APIFieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message, fieldErr.Field
	}
	if errors.Is(err, adapter.ErrUnauthorized) {
		return "Invalid email or password", ""
	}
	return err.Error(), ""
}
