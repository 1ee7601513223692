package service

import "github.com/tradedesk/tradedesk/models"

// AuthState is the dashboard's ephemeral authentication state. It changes
// only through Reduce, so every consumer observes the same transitions.
type AuthState struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// AuthEventKind enumerates the events that can transition AuthState.
type AuthEventKind int

const (
	LoginStart AuthEventKind = iota
	LoginSuccess
	LoginError
	RegisterStart
	RegisterSuccess
	RegisterError
	Logout
	TokenRefresh
	ClearError
	SetLoading
)

func (k AuthEventKind) String() string {
	switch k {
	case LoginStart:
		return "LOGIN_START"
	case LoginSuccess:
		return "LOGIN_SUCCESS"
	case LoginError:
		return "LOGIN_ERROR"
	case RegisterStart:
		return "REGISTER_START"
	case RegisterSuccess:
		return "REGISTER_SUCCESS"
	case RegisterError:
		return "REGISTER_ERROR"
	case Logout:
		return "LOGOUT"
	case TokenRefresh:
		return "TOKEN_REFRESH"
	case ClearError:
		return "CLEAR_ERROR"
	case SetLoading:
		return "SET_LOADING"
	default:
		return "UNKNOWN"
	}
}

// AuthEvent is one state transition request. User is read on *_SUCCESS,
// Message on *_ERROR, Loading on SET_LOADING; the other fields are ignored.
type AuthEvent struct {
	Kind    AuthEventKind
	User    *models.User
	Message string
	Loading bool
}

// Reduce applies one event to a state and returns the next state. It is a
// pure function: the input state is never mutated, and unknown event kinds
// return the state unchanged.
func Reduce(state AuthState, event AuthEvent) AuthState {
	switch event.Kind {
	case LoginStart, RegisterStart:
		state.IsLoading = true
		state.Error = ""
	case LoginSuccess, RegisterSuccess:
		state.User = event.User
		state.IsAuthenticated = true
		state.IsLoading = false
		state.Error = ""
	case LoginError, RegisterError:
		state.User = nil
		state.IsAuthenticated = false
		state.IsLoading = false
		state.Error = event.Message
	case Logout:
		state = AuthState{}
	case TokenRefresh:
		// The refreshed user is carried by a separate SUCCESS-shaped update;
		// the refresh event itself only clears the loading flag.
		state.IsLoading = false
	case ClearError:
		state.Error = ""
	case SetLoading:
		state.IsLoading = event.Loading
	}

	return state
}
