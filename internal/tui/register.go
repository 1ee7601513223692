package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

const (
	regFieldFirstName = iota
	regFieldLastName
	regFieldEmail
	regFieldPassword
	regFieldConfirm
	regFieldCount
)

// RegisterModel is the Bubble Tea model for the account creation screen. The
// full validation (email shape, password strength, confirmation match) is
// done server-side; field-tagged failures are highlighted next to the form.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	errField   string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	labels := [regFieldCount]string{"first name", "last name", "email", "password", "confirm password"}

	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = labels[i]
		inputs[i].CharLimit = 254
		inputs[i].Width = 40
	}
	inputs[regFieldPassword].EchoMode = textinput.EchoPassword
	inputs[regFieldPassword].EchoCharacter = '*'
	inputs[regFieldConfirm].EchoMode = textinput.EchoPassword
	inputs[regFieldConfirm].EchoCharacter = '*'
	inputs[regFieldFirstName].Focus()

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: inputs,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(registerResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg, m.errField = describeAPIError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.errMsg, m.errField = "", ""
			m.auth.ClearError()
			return m, func() tea.Msg { return NavigateTo{Page: "login"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			req := models.RegisterRequest{
				FirstName:       strings.TrimSpace(m.inputs[regFieldFirstName].Value()),
				LastName:        strings.TrimSpace(m.inputs[regFieldLastName].Value()),
				Email:           strings.TrimSpace(m.inputs[regFieldEmail].Value()),
				Password:        m.inputs[regFieldPassword].Value(),
				ConfirmPassword: m.inputs[regFieldConfirm].Value(),
			}

			m.errMsg, m.errField = "", ""
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	labels := [regFieldCount]string{"First    ", "Last     ", "Email    ", "Password ", "Confirm  "}

	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	for i, input := range m.inputs {
		b.WriteString(labels[i])
		b.WriteString("│ [")
		b.WriteString(input.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
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
		"CREATE ACCOUNT",
		strings.TrimRight(b.String(), "\n"),
		"enter: submit │ tab: next field │ esc: back to sign in",
	))
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return registerResultMsg{err: auth.Register(ctx, req)}
	}
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
