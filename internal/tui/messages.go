package tui

import (
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

// NavigateTo switches the root router to another page.
type NavigateTo struct {
	Page string
}

// authStateMsg carries a fresh auth state snapshot into the update loop.
type authStateMsg struct {
	state service.AuthState
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	err error
}

type logoutDoneMsg struct{}

type refreshDoneMsg struct {
	err error
}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

type roleUpdatedMsg struct {
	user models.User
	err  error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
