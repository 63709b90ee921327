package models

// LoginRequest represents the credentials posted to auth/login/
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse represents the upstream reply to a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SessionResponse describes the current session for the JSON API
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user,omitempty"`
	Error         string `json:"error,omitempty"`
}

// SelectionRequest represents the request body for changing the viewed user
type SelectionRequest struct {
	UserName string `json:"user_name" form:"user" binding:"required"`
}

// FetchStatus is the lifecycle of one remote fetch
type FetchStatus string

const (
	StatusIdle      FetchStatus = "idle"
	StatusLoading   FetchStatus = "loading"
	StatusSucceeded FetchStatus = "succeeded"
	StatusFailed    FetchStatus = "failed"
)

// StatusResponse reports per-fetch statuses after a refresh
type StatusResponse struct {
	Investments      FetchStatus `json:"investments"`
	InvestmentsError string      `json:"investments_error,omitempty"`
	Funds            FetchStatus `json:"funds"`
	FundsError       string      `json:"funds_error,omitempty"`
	SelectedUser     string      `json:"selected_user"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
