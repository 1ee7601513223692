package tui

import (
	"testing"

	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/models"
)

func TestDecide(t *testing.T) {
	activeUser := &models.User{ID: "u1", Role: models.RoleUser, IsActive: true}
	activeAdmin := &models.User{ID: "a1", Role: models.RoleAdmin, IsActive: true}
	suspendedUser := &models.User{ID: "u1", Role: models.RoleUser, IsActive: false}
	suspendedAdmin := &models.User{ID: "a1", Role: models.RoleAdmin, IsActive: false}

	guest := service.AuthState{}
	loading := service.AuthState{IsLoading: true}
	signedIn := service.AuthState{User: activeUser, IsAuthenticated: true}
	signedInAdmin := service.AuthState{User: activeAdmin, IsAuthenticated: true}
	suspended := service.AuthState{User: suspendedUser, IsAuthenticated: true}

	tests := []struct {
		name  string
		kind  RouteKind
		state service.AuthState
		want  GuardDecision
	}{
		{"loading wins on protected route", RequireAuth, loading, Loading},
		{"loading wins on guest route", GuestOnly, loading, Loading},
		{"loading wins over suspended", RequireAuth, service.AuthState{User: suspendedUser, IsAuthenticated: true, IsLoading: true}, Loading},

		{"guest allowed on guest route", GuestOnly, guest, Allow},
		{"signed-in redirected off guest route", GuestOnly, signedIn, RedirectHome},

		{"guest redirected off protected route", RequireAuth, guest, RedirectLogin},
		{"signed-in allowed on protected route", RequireAuth, signedIn, Allow},

		{"guest redirected off admin route", RequireAdmin, guest, RedirectLogin},
		{"non-admin redirected off admin route", RequireAdmin, signedIn, RedirectHome},
		{"admin allowed on admin route", RequireAdmin, signedInAdmin, Allow},

		{"suspended on protected route", RequireAuth, suspended, Suspended},
		{"suspended on guest route", GuestOnly, suspended, Suspended},
		{"suspended admin on admin route", RequireAdmin, service.AuthState{User: suspendedAdmin, IsAuthenticated: true}, Suspended},

		{"stale user without auth flag is a guest", RequireAuth, service.AuthState{User: activeUser}, RedirectLogin},
		{"authenticated without user on admin route", RequireAdmin, service.AuthState{IsAuthenticated: true}, RedirectHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.kind, tt.state); got != tt.want {
				t.Errorf("Decide(%v, %+v) = %v, want %v", tt.kind, tt.state, got, tt.want)
			}
		})
	}
}
