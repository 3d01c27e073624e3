package entity

import "time"

// SessionStatus is the display state of a search session.
type SessionStatus string

const (
	SessionIdle    SessionStatus = "idle"
	SessionLoading SessionStatus = "loading"
	SessionLoaded  SessionStatus = "loaded"
	SessionError   SessionStatus = "error"
)

// SessionState is the last applied outcome of a session's searches.
// Generation counts the searches started in the session; only the newest one may change the state.
type SessionState struct {
	SessionID  string           `json:"sessionId"`
	Status     SessionStatus    `json:"status"`
	Generation uint64           `json:"generation"`
	Address    string           `json:"address,omitempty"`
	Report     *PortfolioReport `json:"report,omitempty"`
	Error      string           `json:"error,omitempty"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
